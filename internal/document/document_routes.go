package document

import (
	"leavedesk/internal/authz"
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	documents := r.Group("/leaves/:id/documents")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.GET("", middleware.RequirePermission(authz.PermLeavesView), handler.ListForLeave)
		documents.POST("", middleware.RequirePermission(authz.PermLeavesCreate), handler.Attach)
		documents.DELETE("/:documentId", middleware.RequirePermission(authz.PermLeavesCreate), handler.Delete)
	}
}
