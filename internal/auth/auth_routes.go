package auth

import (
	"ak-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	{
		// Brute-force 4 digit PIN itu cuma 10 ribu kombinasi, wajib di-rate-limit
		authGroup.POST("/login", middleware.RateLimitByIP(), h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.PATCH("/admin-pin",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware("admin"),
			h.UpdateAdminPin,
		)
	}
}
