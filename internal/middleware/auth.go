package middleware

import (
	"net/http"
	"strings"

	"groshop-be/internal/metrics"
	"groshop-be/internal/user"
	"groshop-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func extractAccessToken(c *gin.Context) string {
	// Cookie first, Authorization header as fallback.
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// RequireAuth rejects requests without a valid token and attaches the
// verified identity to the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.RequestsServed.Inc()

		tokenStr := extractAccessToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), userID, claims.Email, claims.IsAdmin)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsAdminFromContext(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized as an admin"})
			return
		}
		c.Next()
	}
}
