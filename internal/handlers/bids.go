package handlers

import (
	"errors"
	"strconv"

	"github.com/driveshare/driveshare-backend/internal/models"
	"github.com/driveshare/driveshare-backend/internal/rental"
	"github.com/driveshare/driveshare-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// respondEngineError maps the engine's error taxonomy onto HTTP codes.
func respondEngineError(c *gin.Context, err error) {
	var validation *rental.ValidationError
	var notFound *rental.NotFoundError
	var conflict *rental.ConflictError
	var invalidState *rental.InvalidStateError

	switch {
	case errors.As(err, &validation):
		c.JSON(400, gin.H{"error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(404, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(409, gin.H{"error": conflict.Error()})
	case errors.As(err, &invalidState):
		c.JSON(409, gin.H{"error": invalidState.Error()})
	default:
		c.JSON(500, gin.H{"error": "Internal server error"})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// PlaceBid handles bid submission by renters
func PlaceBid(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		bidderID := c.GetUint("userId")

		var input struct {
			VehicleID uint    `json:"vehicleId" binding:"required"`
			Amount    float64 `json:"amount" binding:"required"`
			StartDate string  `json:"startDate" binding:"required"`
			EndDate   string  `json:"endDate" binding:"required"`
			AddOnIDs  []uint  `json:"addOnIds"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		bid, err := svc.PlaceBid(c.Request.Context(), rental.PlaceBidInput{
			VehicleID: input.VehicleID,
			BidderID:  bidderID,
			Amount:    input.Amount,
			StartDate: utils.ParseDate(input.StartDate),
			EndDate:   utils.ParseDate(input.EndDate),
			AddOnIDs:  input.AddOnIDs,
		})
		if err != nil {
			respondEngineError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"bidId":  bid.ID,
			"status": bid.Status,
		})
	}
}

// ApproveBid handles bid approval by the vehicle owner. Every overlapping
// pending bid on the vehicle is rejected in the same transaction.
func ApproveBid(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bidID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		bid, err := svc.GetBid(c.Request.Context(), bidID)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		if bid.OwnerID != userID {
			c.JSON(403, gin.H{"error": "Only the vehicle owner can approve this bid"})
			return
		}

		booking, err := svc.ApproveBid(c.Request.Context(), bidID)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		c.JSON(200, booking)
	}
}

// RejectBid handles bid rejection by the vehicle owner
func RejectBid(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bidID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		bid, err := svc.GetBid(c.Request.Context(), bidID)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		if bid.OwnerID != userID {
			c.JSON(403, gin.H{"error": "Only the vehicle owner can reject this bid"})
			return
		}

		if _, err := svc.RejectBid(c.Request.Context(), bidID); err != nil {
			respondEngineError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Bid rejected"})
	}
}

// GetOverlappingBids shows the owner which pending bids an approval would
// cascade-reject
func GetOverlappingBids(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		bidID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		bid, err := svc.GetBid(c.Request.Context(), bidID)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		if bid.OwnerID != userID {
			c.JSON(403, gin.H{"error": "Only the vehicle owner can view overlapping bids"})
			return
		}

		overlaps, err := svc.OverlappingBids(c.Request.Context(), bidID)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		c.JSON(200, gin.H{"bids": overlaps})
	}
}

func bidFilterFromQuery(c *gin.Context) rental.BidFilter {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	return rental.BidFilter{
		Status:     models.BidStatus(c.Query("status")),
		TripStatus: models.TripStatus(c.Query("tripStatus")),
		From:       utils.ParseDate(c.Query("from")),
		To:         utils.ParseDate(c.Query("to")),
		Search:     c.Query("search"),
		SortBy:     c.Query("sortBy"),
		SortDesc:   c.DefaultQuery("order", "desc") == "desc",
		Page:       page,
		Limit:      limit,
	}
}

// GetOwnerBids retrieves the paginated bid dashboard for an owner
func GetOwnerBids(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := bidFilterFromQuery(c)
		f.OwnerID = c.GetUint("userId")

		page, err := svc.ListBids(c.Request.Context(), f)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		c.JSON(200, page)
	}
}

// GetRenterBids retrieves the paginated bid dashboard for a renter
func GetRenterBids(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := bidFilterFromQuery(c)
		f.BidderID = c.GetUint("userId")

		page, err := svc.ListBids(c.Request.Context(), f)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		c.JSON(200, page)
	}
}
