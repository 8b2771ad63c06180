package middleware

import (
	"strings"

	"creatormatch/internal/auth"
	"creatormatch/internal/logger"
	"creatormatch/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Bearer token and places the user identity in
// both the gin context (for handlers) and the request context (for logs).
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Authorization header must be 'Bearer {token}'")
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "token rejected", "error", err.Error(), "ip", c.ClientIP())
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleMiddleware gates a route group on the role claim. Must run after
// AuthMiddleware.
func RoleMiddleware(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("userRole")
		if roleStr, ok := role.(string); !ok || roleStr != required {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Insufficient permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	apperrors.HandleError(c, apperrors.NewUnauthorizedError(message))
	c.Abort()
}
