package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/crane-asset-manager/internal/application"
	"github.com/example/crane-asset-manager/internal/persistence"
)

const userContextKey = "authenticated_user"

// sessionAuth resolves the bearer token to a user and aborts with 401 when
// the session is missing or invalid.
func sessionAuth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// requireRole aborts with 403 unless the authenticated user holds one of
// the given roles.
func requireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (persistence.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return persistence.User{}, false
	}
	user, ok := value.(persistence.User)
	return user, ok
}

func bearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
