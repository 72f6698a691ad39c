package app

import (
	"os"

	"leavedesk/internal/middleware"
	"leavedesk/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module's
// routes on the given engine.
func BuildApp(router *gin.Engine) error {
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
	zap.L().Info("database connection established")

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	registerModules(router, db, gormDB, rdb)

	return nil
}
