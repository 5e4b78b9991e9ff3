package project

import (
	"ak-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("/clients", h.GetClients)
		projects.GET("/monthly", h.GetMonthlyData)

		admin := projects.Group("")
		admin.Use(middleware.RoleMiddleware("admin"))
		{
			admin.POST("/clients", h.AddClient)
			admin.PATCH("/clients/:id", h.UpdateClient)
			admin.DELETE("/clients/:id", h.DeleteClient)

			admin.POST("/assignments", h.AssignWork)
			admin.POST("/assignments/remove", h.UnassignWork)
			admin.POST("/workforce", h.UpdateWorkforce)

			admin.POST("/money", h.LogMoney)
			admin.POST("/entries/delete", h.DeleteEntry)
		}
	}
}
