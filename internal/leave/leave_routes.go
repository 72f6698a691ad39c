package leave

import (
	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RequirePermission(authz.PermLeavesView), handler.GetAll)
		leaves.GET("/:id", middleware.RequirePermission(authz.PermLeavesView), handler.GetByID)
		leaves.POST("", middleware.RequirePermission(authz.PermLeavesCreate), middleware.Idempotency(rdb), handler.Create)
		leaves.PUT("/:id", middleware.RequirePermission(authz.PermLeavesCreate), handler.Update)
		leaves.POST("/:id/approve", middleware.RequirePermission(authz.PermLeavesApprove), handler.Approve)
		leaves.POST("/:id/reject", middleware.RequirePermission(authz.PermLeavesApprove), handler.Reject)
		leaves.POST("/:id/cancel", middleware.RequirePermission(authz.PermLeavesCreate), handler.Cancel)
		leaves.DELETE("/:id", middleware.RequireAnyPermission(authz.PermLeavesCreate, authz.PermLeavesDelete), handler.Delete)
	}
}
