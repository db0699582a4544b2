package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotia-io/procure/pkg/procure"
)

// registerResourceRoutes mounts the uniform CRUD surface for one service.
// Fixed segments (search, export, stats, bulk-*) are registered before the
// :id routes so gin does not shadow them.
func registerResourceRoutes[T any, C any, U any](group *gin.RouterGroup, service procure.ResourceService[T, C, U]) {
	group.GET("", handleList(service))
	group.GET("/search", handleSearch(service))
	group.GET("/export", handleExport(service))
	group.POST("/bulk-delete", handleBulkDelete(service))
	group.POST("/bulk-update", handleBulkUpdate(service))
	group.POST("", handleCreate(service))
	group.GET("/:id", handleGet(service))
	group.PATCH("/:id", handleUpdate(service))
	group.DELETE("/:id", handleDelete(service))
}

// registerDirectoryRoutes adds the stats endpoint the directory services
// share on top of the uniform surface.
func registerDirectoryRoutes[T any, C any, U any](
	group *gin.RouterGroup,
	service procure.ResourceService[T, C, U],
	stats func(context.Context) (*procure.DirectoryStats, error),
) {
	group.GET("/stats", func(c *gin.Context) {
		result, err := stats(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, *result)
	})

	registerResourceRoutes(group, service)
}

func handleList[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, err := parseQuery(c)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)

			return
		}

		page, err := service.List(c.Request.Context(), query)
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, *page)
	}
}

func handleGet[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := service.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, *record)
	}
}

func handleCreate[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request C

		err := c.ShouldBindJSON(&request)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)

			return
		}

		record, err := service.Create(c.Request.Context(), &request)
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusCreated, *record)
	}
}

func handleUpdate[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request U

		err := c.ShouldBindJSON(&request)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)

			return
		}

		record, err := service.Update(c.Request.Context(), c.Param("id"), &request)
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, *record)
	}
}

func handleDelete[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := service.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respondMessage(c, http.StatusOK, "deleted")
	}
}

func handleBulkDelete[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			IDs []string `json:"ids"`
		}

		err := c.ShouldBindJSON(&body)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)

			return
		}

		result, err := service.BulkDelete(c.Request.Context(), body.IDs)
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, *result)
	}
}

func handleBulkUpdate[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Updates []procure.BulkUpdateItem[U] `json:"updates"`
		}

		err := c.ShouldBindJSON(&body)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)

			return
		}

		result, err := service.BulkUpdate(c.Request.Context(), body.Updates)
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, *result)
	}
}

func handleSearch[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := service.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, results)
	}
}

func handleExport[T any, C any, U any](service procure.ResourceService[T, C, U]) gin.HandlerFunc {
	return func(c *gin.Context) {
		query, err := parseQuery(c)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)

			return
		}

		format := procure.ExportFormat(c.DefaultQuery("format", string(procure.ExportJSON)))
		delete(query.Filters, "format")

		uri, err := service.Export(c.Request.Context(), format, query)
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, uri)
	}
}
