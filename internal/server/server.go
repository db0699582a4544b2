// Package server ships the mock procurement REST API as a real process:
// the same envelope wire protocol the hosted backend will speak, served
// from the in-memory store. The dashboard (or the API-mode client) can be
// pointed at it during development.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quotia-io/procure/internal/mock"
	"github.com/quotia-io/procure/pkg/procure"
)

// Config carries the server's listen and auth settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// APIPrefix is the route prefix. Defaults to "/api".
	APIPrefix string

	// AuthSecret signs JWTs. Empty disables authentication entirely.
	AuthSecret string

	// Users maps usernames to bcrypt password hashes for /auth/login.
	Users map[string]string

	// TokenTTL bounds issued tokens. Defaults to 12h.
	TokenTTL time.Duration

	// AllowOrigins configures CORS. Empty allows all origins.
	AllowOrigins []string

	// Latency is the artificial delay applied by the backing services.
	Latency time.Duration

	// Logger is optional.
	Logger procure.Logger
}

// Server is the mock API server.
type Server struct {
	config Config
	engine *gin.Engine
	logger procure.Logger

	suppliers     procure.SuppliersService
	manufacturers procure.ManufacturersService
	rfqs          procure.RFQsService
}

// New creates a server over a freshly seeded store.
func New(config Config) *Server {
	return NewWithStore(config, mock.NewStore())
}

// NewWithStore creates a server over an existing store, so tests can seed
// their own data.
func NewWithStore(config Config, store *mock.Store) *Server {
	if config.APIPrefix == "" {
		config.APIPrefix = "/api"
	}

	if config.TokenTTL <= 0 {
		config.TokenTTL = 12 * time.Hour
	}

	logger := config.Logger
	if logger == nil {
		logger = procure.NewNoopLogger()
	}

	server := &Server{
		config:        config,
		logger:        logger,
		suppliers:     mock.NewSuppliersService(store, config.Latency),
		manufacturers: mock.NewManufacturersService(store, config.Latency),
		rfqs:          mock.NewRFQsService(store, config.Latency),
	}

	server.engine = server.buildEngine()

	return server
}

func (s *Server) buildEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(s.accessLog())

	corsConfig := cors.DefaultConfig()
	if len(s.config.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = s.config.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}

	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-Time")
	engine.Use(cors.New(corsConfig))

	api := engine.Group(s.config.APIPrefix)

	if s.config.AuthSecret != "" {
		api.POST("/auth/login", s.handleLogin)
		api.Use(s.requireAuth())
	}

	registerDirectoryRoutes[procure.Supplier, procure.SupplierCreateRequest, procure.SupplierUpdateRequest](
		api.Group("/suppliers"), s.suppliers, s.suppliers.Stats)
	registerDirectoryRoutes[procure.Manufacturer, procure.ManufacturerCreateRequest, procure.ManufacturerUpdateRequest](
		api.Group("/manufacturers"), s.manufacturers, s.manufacturers.Stats)
	s.registerRFQRoutes(api.Group("/rfqs"))

	return engine
}

// Handler exposes the engine for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("mock API listening", map[string]interface{}{"addr": s.config.Addr})

		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Debug("request handled", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
