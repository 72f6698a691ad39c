package employee

import (
	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RequirePermission(authz.PermUsersView), handler.GetAll)
		employees.GET("/:id", middleware.RequirePermission(authz.PermUsersView), handler.GetById)
		employees.POST("", middleware.RequirePermission(authz.PermUsersCreate), handler.Create)
		employees.PUT("/:id", middleware.RequirePermission(authz.PermUsersUpdate), handler.Update)
		employees.DELETE("/:id", middleware.RequirePermission(authz.PermUsersDelete), handler.Delete)
	}
}
