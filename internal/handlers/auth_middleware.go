package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexus-hub/engagement-service/internal/config"
	"github.com/nexus-hub/engagement-service/internal/utils"
)

const (
	contextUserIDKey    = "user_id"
	contextUserEmailKey = "user_email"
)

// JWTAuthMiddleware validates bearer tokens on protected routes.
type JWTAuthMiddleware struct {
	jwt config.JWTConfig
}

func NewJWTAuthMiddleware(jwt config.JWTConfig) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{jwt: jwt}
}

// AuthMiddleware extracts and verifies the Authorization header and stores the
// authenticated identity in the request context.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Authorization header required",
			})
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Invalid authorization header format",
			})
			return
		}

		claims, err := utils.ParseToken(tokenString, m.jwt.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Invalid or expired token",
			})
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserEmailKey, claims.Email)
		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user id set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	v, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
