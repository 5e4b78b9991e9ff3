package report

import (
	"ak-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("admin"))
	{
		reports.GET("/monthly", h.MonthlySummary)
	}
}
