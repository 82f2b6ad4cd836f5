package routes

import (
	"gigflow/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes registers the websocket notification stream.
func RegisterNotificationRoutes(
	rg *gin.RouterGroup,
	notificationHandler handlers.NotificationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	notifications := rg.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.GET("/ws", notificationHandler.Stream)
	}
}
