package app

import (
	"ak-attendance/internal/attendance"
	"ak-attendance/internal/auth"
	"ak-attendance/internal/employee"
	"ak-attendance/internal/expense"
	"ak-attendance/internal/grid"
	"ak-attendance/internal/messaging/kafka"
	"ak-attendance/internal/middleware"
	"ak-attendance/internal/project"
	"ak-attendance/internal/report"
	"ak-attendance/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	settingsRepo settings.Repository,
) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID(), middleware.RequestLogger())

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewService(sqlDB, employeeRepo)
	attendanceService := attendance.NewServiceWithOutbox(gormDB, attendanceRepo, outboxRepo, rdb)
	expenseService := expense.NewService(expenseRepo, projectRepo)
	projectService := project.NewService(gormDB, projectRepo, expenseRepo, employeeRepo, outboxRepo)
	authService := auth.NewService(settingsRepo, employeeRepo)
	reportService := report.NewService(attendanceRepo, employeeRepo)

	// Draft buffer: semua edit grid ditampung dulu, commit lewat SaveBatch
	gridManager := grid.NewManager(attendanceService.SaveBatch, grid.DefaultIdleTimeout)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	gridHandler := grid.NewHandler(gridManager)
	projectHandler := project.NewHandler(projectService)
	expenseHandler := expense.NewHandler(expenseService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
		grid.RegisterRoutes(api, gridHandler)
		project.RegisterRoutes(api, projectHandler)
		expense.RegisterRoutes(api, expenseHandler)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
