package leavebalance

import (
	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", middleware.RequirePermission(authz.PermLeaveBalancesView), handler.GetMine)
		balances.GET("/:employeeId", middleware.RequirePermission(authz.PermLeaveBalancesView), handler.GetForEmployee)
		balances.PUT("", middleware.RequirePermission(authz.PermLeaveBalancesUpdate), handler.Adjust)
	}
}
