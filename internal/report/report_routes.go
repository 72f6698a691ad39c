package report

import (
	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/leave-usage", middleware.RequirePermission(authz.PermReportsView), handler.LeaveUsage)
	}
}
