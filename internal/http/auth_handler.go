package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/crane-asset-manager/internal/application"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

func registerAuthRoutes(router *gin.Engine, auth *application.AuthService) {
	router.POST("/auth/login", func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", application.ErrInvalidInput, err))
			return
		}

		session, user, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, loginResponse{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
			UserID:    user.ID,
			Username:  user.Username,
			Role:      user.Role,
		})
	})

	router.POST("/auth/logout", func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if err := auth.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
