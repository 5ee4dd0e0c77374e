package handlers

import (
	"github.com/driveshare/driveshare-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// GetUserPresence reports whether a user has an open notification socket
// on any instance, so the counterparty UI can show online status
func GetUserPresence() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		online, err := services.IsUserOnline(c.Request.Context(), userID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to check presence"})
			return
		}

		c.JSON(200, gin.H{
			"userId": userID,
			"online": online,
		})
	}
}
