package expense

import (
	"ak-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	expenses := r.Group("/expenses")
	expenses.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("admin"))
	{
		expenses.POST("", h.Add)
		expenses.GET("/client/:clientId", h.GetByClient)
		expenses.DELETE("/:id", h.Delete)

		expenses.GET("/presets", h.GetPresets)
		expenses.POST("/presets", h.CreatePreset)
		expenses.DELETE("/presets/:id", h.DeletePreset)
	}
}
