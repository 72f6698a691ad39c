package app

import (
	"database/sql"

	"leavedesk/internal/auth"
	"leavedesk/internal/document"
	"leavedesk/internal/employee"
	"leavedesk/internal/leave"
	"leavedesk/internal/leavebalance"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/notification"
	"leavedesk/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	reportRepo := report.NewRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	documentService := document.NewService(documentRepo, leaveRepo)
	employeeService := employee.NewService(db, employeeRepo)
	leaveService := leave.NewService(db, leaveRepo, leaveBalanceRepo, outboxRepo)
	leaveBalanceService := leavebalance.NewService(db, leaveBalanceRepo, employeeRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo, rdb)
	notificationService := notification.NewService(notificationRepo, employeeRepo)
	reportService := report.NewService(reportRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	documentHandler := document.NewHandler(documentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	notificationHandler := notification.NewHandler(notificationService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		document.RegisterRoutes(api, documentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler)
		leavetype.RegisterRoutes(api, leaveTypeHandler)
		notification.RegisterRoutes(api, notificationHandler)
		report.RegisterRoutes(api, reportHandler)
	}
}
