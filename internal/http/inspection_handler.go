package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/crane-asset-manager/internal/application"
	"github.com/example/crane-asset-manager/internal/persistence"
)

type completeInspectionRequest struct {
	OverallCondition string  `json:"overall_condition" binding:"required"`
	Notes            *string `json:"notes"`
}

func registerInspectionRoutes(group *gin.RouterGroup, inspections *application.InspectionService) {
	group.GET("/inspections", func(c *gin.Context) {
		var filter persistence.InspectionFilter
		if v := c.Query("asset_id"); v != "" {
			assetID, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				respondError(c, fmt.Errorf("%w: invalid asset_id", application.ErrInvalidInput))
				return
			}
			filter.AssetID = &assetID
		}
		if v := c.Query("status"); v != "" {
			filter.Status = &v
		}

		list, err := inspections.ListInspections(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	group.POST("/inspections", func(c *gin.Context) {
		var inspection persistence.Inspection
		if err := c.ShouldBindJSON(&inspection); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}
		if user, ok := currentUser(c); ok && inspection.InspectorID == 0 {
			inspection.InspectorID = user.ID
		}

		created, err := inspections.ScheduleInspection(c.Request.Context(), inspection)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	group.GET("/inspections/:id", func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		inspection, err := inspections.GetInspection(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, inspection)
	})

	group.POST("/inspections/:id/complete", func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req completeInspectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}

		completed, err := inspections.CompleteInspection(c.Request.Context(), id, req.OverallCondition, req.Notes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, completed)
	})

	group.GET("/inspections/:id/media", func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		media, err := inspections.ListMedia(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, media)
	})

	group.POST("/inspections/:id/media", func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var file persistence.MediaFile
		if err := c.ShouldBindJSON(&file); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}
		file.InspectionID = &id

		created, err := inspections.AttachMedia(c.Request.Context(), file)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})
}
