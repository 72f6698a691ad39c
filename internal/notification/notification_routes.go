package notification

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Every authenticated employee reads their own feed, so there is no
// permission gate beyond authentication.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handler.ListMine)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.POST("/:id/read", handler.MarkRead)
	}
}
