package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotia-io/procure/pkg/procure"
)

// registerRFQRoutes mounts the uniform surface plus the nested line item
// endpoints.
func (s *Server) registerRFQRoutes(group *gin.RouterGroup) {
	group.GET("/stats", func(c *gin.Context) {
		stats, err := s.rfqs.Stats(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)

			return
		}

		respond(c, http.StatusOK, *stats)
	})

	registerResourceRoutes[procure.RFQRecord, procure.RFQCreateRequest, procure.RFQUpdateRequest](group, s.rfqs)

	group.POST("/:id/line-items", s.handleCreateLineItem)
	group.POST("/:id/line-items/bulk-update", s.handleBulkUpdateLineItems)
	group.POST("/:id/line-items/bulk-delete", s.handleBulkDeleteLineItems)
	group.PATCH("/:id/line-items/:itemId", s.handleUpdateLineItem)
	group.PATCH("/:id/line-items/:itemId/status", s.handleUpdateLineItemStatus)
	group.DELETE("/:id/line-items/:itemId", s.handleDeleteLineItem)
}

func (s *Server) handleCreateLineItem(c *gin.Context) {
	var request procure.LineItemCreateRequest

	err := c.ShouldBindJSON(&request)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)

		return
	}

	record, err := s.rfqs.CreateLineItem(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respond(c, http.StatusCreated, *record)
}

func (s *Server) handleUpdateLineItem(c *gin.Context) {
	var request procure.LineItemUpdateRequest

	err := c.ShouldBindJSON(&request)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)

		return
	}

	record, err := s.rfqs.UpdateLineItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), &request)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respond(c, http.StatusOK, *record)
}

func (s *Server) handleUpdateLineItemStatus(c *gin.Context) {
	var body struct {
		Status procure.LineItemStatus `json:"status"`
	}

	err := c.ShouldBindJSON(&body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)

		return
	}

	record, err := s.rfqs.UpdateLineItemStatus(c.Request.Context(), c.Param("id"), c.Param("itemId"), body.Status)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respond(c, http.StatusOK, *record)
}

func (s *Server) handleDeleteLineItem(c *gin.Context) {
	record, err := s.rfqs.DeleteLineItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respond(c, http.StatusOK, *record)
}

func (s *Server) handleBulkUpdateLineItems(c *gin.Context) {
	var body struct {
		Updates []procure.BulkUpdateItem[procure.LineItemUpdateRequest] `json:"updates"`
	}

	err := c.ShouldBindJSON(&body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)

		return
	}

	record, err := s.rfqs.BulkUpdateLineItems(c.Request.Context(), c.Param("id"), body.Updates)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respond(c, http.StatusOK, *record)
}

func (s *Server) handleBulkDeleteLineItems(c *gin.Context) {
	var body struct {
		IDs []string `json:"ids"`
	}

	err := c.ShouldBindJSON(&body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)

		return
	}

	record, err := s.rfqs.BulkDeleteLineItems(c.Request.Context(), c.Param("id"), body.IDs)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respond(c, http.StatusOK, *record)
}
