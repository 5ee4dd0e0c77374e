package handlers

import (
	"github.com/driveshare/driveshare-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler upgrades the connection and attaches it to the hub
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		userType := c.GetString("userType")
		services.HandleWebSocket(hub, c.Writer, c.Request, userID, userType)
	}
}
