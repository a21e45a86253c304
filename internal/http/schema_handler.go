package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/crane-asset-manager/internal/persistence/sqlite"
)

// Schema routes are unauthenticated: the desktop shell polls them during
// startup before any user has logged in.
func registerSchemaRoutes(router *gin.Engine, store *sqlite.Store) {
	router.GET("/schema/status", func(c *gin.Context) {
		status, err := store.Status(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	router.GET("/schema/progress", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Progress())
	})
}
