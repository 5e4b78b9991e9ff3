package grid

import (
	"ak-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	g := r.Group("/grid")
	g.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("admin"))
	{
		g.POST("/attendance", h.RecordAttendance)
		g.POST("/advance", h.RecordAdvance)
		g.POST("/monthly-advance", h.RecordMonthlyAdvance)
		g.GET("/pending", h.GetPending)
		g.POST("/commit", h.Commit)
		g.POST("/discard", h.Discard)
	}
}
