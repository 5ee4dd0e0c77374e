package handlers

import (
	"github.com/driveshare/driveshare-backend/internal/rental"
	"github.com/gin-gonic/gin"
)

// StartTrip records the start odometer reading for an approved booking
func StartTrip(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input struct {
			StartOdometerValue *float64 `json:"startOdometerValue" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		bid, err := svc.GetBid(c.Request.Context(), bookingID)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		if bid.OwnerID != userID && bid.BidderID != userID {
			c.JSON(403, gin.H{"error": "Unauthorized to start this trip"})
			return
		}

		booking, err := svc.StartTrip(c.Request.Context(), bookingID, *input.StartOdometerValue)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		c.JSON(200, booking)
	}
}

// EndTrip records the end odometer reading and settles the booking
func EndTrip(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input struct {
			EndOdometerValue *float64 `json:"endOdometerValue" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		bid, err := svc.GetBid(c.Request.Context(), bookingID)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		if bid.OwnerID != userID && bid.BidderID != userID {
			c.JSON(403, gin.H{"error": "Unauthorized to end this trip"})
			return
		}

		booking, settlement, err := svc.EndTrip(c.Request.Context(), bookingID, *input.EndOdometerValue)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"booking":    booking,
			"amount":     settlement.Total,
			"settlement": settlement,
		})
	}
}

// SubmitReview attaches the renter's one-time review to an ended booking
func SubmitReview(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input struct {
			Rating  float64 `json:"rating" binding:"required"`
			Comment string  `json:"comment,omitempty"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		bid, err := svc.GetBid(c.Request.Context(), bookingID)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		if bid.BidderID != userID {
			c.JSON(403, gin.H{"error": "Only the renter can review this trip"})
			return
		}

		review, err := svc.SubmitReview(c.Request.Context(), bookingID, userID, input.Rating, input.Comment)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		c.JSON(201, review)
	}
}
