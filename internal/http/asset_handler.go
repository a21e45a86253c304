package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/crane-asset-manager/internal/application"
	"github.com/example/crane-asset-manager/internal/persistence"
)

func registerAssetRoutes(group *gin.RouterGroup, assets *application.AssetService) {
	manage := requireRole(persistence.RoleSupervisor, persistence.RoleAdministrator, persistence.RoleSuperAdmin)

	group.GET("/locations", func(c *gin.Context) {
		locations, err := assets.ListLocations(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, locations)
	})

	group.POST("/locations", manage, func(c *gin.Context) {
		var location persistence.Location
		if err := c.ShouldBindJSON(&location); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}
		if user, ok := currentUser(c); ok {
			location.CreatedBy = user.ID
		}

		created, err := assets.CreateLocation(c.Request.Context(), location)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	group.DELETE("/locations/:id", manage, func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := assets.DeleteLocation(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	group.GET("/assets", func(c *gin.Context) {
		var filter persistence.AssetFilter
		if v := c.Query("location_id"); v != "" {
			locationID, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				respondError(c, fmt.Errorf("%w: invalid location_id", application.ErrInvalidInput))
				return
			}
			filter.LocationID = &locationID
		}
		if v := c.Query("status"); v != "" {
			filter.Status = &v
		}

		list, err := assets.ListAssets(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	group.POST("/assets", manage, func(c *gin.Context) {
		var asset persistence.Asset
		if err := c.ShouldBindJSON(&asset); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}
		if user, ok := currentUser(c); ok {
			asset.CreatedBy = user.ID
		}

		created, err := assets.CreateAsset(c.Request.Context(), asset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	group.GET("/assets/:id", func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		asset, err := assets.GetAsset(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, asset)
	})

	group.PUT("/assets/:id", manage, func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var asset persistence.Asset
		if err := c.ShouldBindJSON(&asset); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}
		asset.ID = id

		updated, err := assets.UpdateAsset(c.Request.Context(), asset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	group.DELETE("/assets/:id", manage, func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := assets.DeleteAsset(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", application.ErrInvalidInput)
	}
	return id, nil
}
