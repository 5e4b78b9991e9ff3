package app

import (
	"context"
	"os"

	"ak-attendance/internal/settings"
	"ak-attendance/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established ✅")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		// Cache itu opsional: tanpa Redis grid tetap jalan, cuma lebih lambat
		logger.Warn("redis unavailable, running without cache ⚠️", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("redis connection established ✅")
	}

	// 2. First-boot seeding
	settingsRepo := settings.NewRepository(gormDB)
	if err := settings.SeedAdminPin(context.Background(), settingsRepo); err != nil {
		return err
	}

	// 3. Register Modules & Routes
	return registerModules(router, gormDB, redisClient, settingsRepo)
}
