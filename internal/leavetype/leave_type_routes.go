package leavetype

import (
	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.RequirePermission(authz.PermLeaveTypesView), handler.GetAll)
		types.GET("/:id", middleware.RequirePermission(authz.PermLeaveTypesView), handler.GetByID)
		types.POST("", middleware.RequirePermission(authz.PermLeaveTypesCreate), handler.Create)
		types.PUT("/:id", middleware.RequirePermission(authz.PermLeaveTypesUpdate), handler.Update)
		types.DELETE("/:id", middleware.RequirePermission(authz.PermLeaveTypesDelete), handler.Delete)
	}
}
