// Package http exposes the local HTTP command surface the desktop shell
// talks to. The server binds to loopback only; it is not a public API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/example/crane-asset-manager/internal/application"
	"github.com/example/crane-asset-manager/internal/persistence/sqlite"
)

// Server wires the services into a gin router and owns the http.Server
// lifecycle.
type Server struct {
	httpServer *http.Server
}

// Services groups the application services the handlers depend on.
type Services struct {
	Auth        *application.AuthService
	Assets      *application.AssetService
	Inspections *application.InspectionService
	Maintenance *application.MaintenanceService
	Store       *sqlite.Store
}

// NewServer builds the router and prepares a server listening on addr.
func NewServer(addr string, services Services) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerAuthRoutes(router, services.Auth)
	registerSchemaRoutes(router, services.Store)

	authed := router.Group("/", sessionAuth(services.Auth))
	registerAssetRoutes(authed, services.Assets)
	registerInspectionRoutes(authed, services.Inspections)
	registerMaintenanceRoutes(authed, services.Maintenance)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves requests until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	logrus.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logrus.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(started),
		}).Debug("Request handled")
	}
}
