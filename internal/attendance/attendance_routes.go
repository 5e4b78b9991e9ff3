package attendance

import (
	"ak-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	grid := r.Group("/attendance")
	grid.Use(middleware.AuthMiddleware())
	{
		grid.GET("/monthly", h.GetMonthly)
		grid.POST("/toggle", middleware.RoleMiddleware("admin"), h.Toggle)
		grid.POST("/advance", middleware.RoleMiddleware("admin"), h.LogAdvance)
		grid.POST("/monthly-advance", middleware.RoleMiddleware("admin"), h.LogMonthlyAdvance)
		grid.POST("/batch", middleware.RoleMiddleware("admin"), h.SaveBatch)
	}
}
