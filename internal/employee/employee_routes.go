package employee

import (
	"ak-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", h.GetAll)
		employees.POST("", middleware.RoleMiddleware("admin"), h.Create)
		employees.PATCH("/:id", middleware.RoleMiddleware("admin"), h.Update)
		employees.DELETE("/:id", middleware.RoleMiddleware("admin"), h.Delete)
	}
}
