package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/crane-asset-manager/internal/application"
	"github.com/example/crane-asset-manager/internal/persistence"
)

type completeMaintenanceRequest struct {
	Cost *float64 `json:"cost"`
}

func registerMaintenanceRoutes(group *gin.RouterGroup, maintenance *application.MaintenanceService) {
	group.POST("/maintenance", func(c *gin.Context) {
		var record persistence.MaintenanceRecord
		if err := c.ShouldBindJSON(&record); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}

		created, err := maintenance.ScheduleMaintenance(c.Request.Context(), record)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	group.GET("/maintenance/:id", func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		record, err := maintenance.GetRecord(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	})

	group.POST("/maintenance/:id/complete", func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req completeMaintenanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}

		completed, err := maintenance.CompleteMaintenance(c.Request.Context(), id, req.Cost)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, completed)
	})

	group.GET("/assets/:id/maintenance", func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		records, err := maintenance.History(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	})
}
