package middleware

import (
	"net/http"
	"strings"

	"ak-attendance/internal/shared/apperror"
	"ak-attendance/internal/shared/contextutil"
	"ak-attendance/internal/shared/response"
	"ak-attendance/internal/shared/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts the session either as a Bearer header (API
// clients) or the HttpOnly cookie (server-rendered pages).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			if cookie, err := c.Cookie("session"); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Missing session token", nil)
			c.Abort()
			return
		}

		claims, err := token.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid or expired session", nil)
			c.Abort()
			return
		}

		c.Set("role", claims.Role)
		c.Set("employee_id", claims.EmployeeID)

		ctx := contextutil.WithRole(c.Request.Context(), claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleMiddleware gates a route to one role. Only two roles exist here
// (admin, employee), so a simple equality check is enough.
func RoleMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
