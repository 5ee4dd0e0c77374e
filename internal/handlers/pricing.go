package handlers

import (
	"strconv"

	"github.com/driveshare/driveshare-backend/internal/rental"
	"github.com/driveshare/driveshare-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// CalculatePrice is the speculative price preview the booking form polls
// while the renter fills it in. It never fails: malformed input yields an
// amount of 0.
func CalculatePrice() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := utils.ParseDate(c.Query("startDate"))
		end := utils.ParseDate(c.Query("endDate"))
		rate, err := strconv.ParseFloat(c.Query("dailyRate"), 64)
		if err != nil {
			rate = 0
		}

		amount := utils.CalculateRentalAmount(start, end, rate)

		c.JSON(200, gin.H{
			"amount": amount,
			"days":   utils.RentalDays(start, end),
		})
	}
}

// EstimateSettlement previews the full settlement, including add-ons,
// overage fine, platform fee and tax, through the same function that trip
// finalization uses, so the quote always matches the eventual charge.
func EstimateSettlement(cfg rental.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			StartDate          string    `json:"startDate" binding:"required"`
			EndDate            string    `json:"endDate" binding:"required"`
			DailyRate          float64   `json:"dailyRate" binding:"required"`
			StartOdometerValue float64   `json:"startOdometerValue"`
			EndOdometerValue   float64   `json:"endOdometerValue"`
			AddOnPrices        []float64 `json:"addOnPrices"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		rentalAmount := utils.CalculateRentalAmount(
			utils.ParseDate(input.StartDate),
			utils.ParseDate(input.EndDate),
			input.DailyRate,
		)
		fine := utils.CalculateOverageFine(input.StartOdometerValue, input.EndOdometerValue)
		settlement := utils.CalculateSettlement(rentalAmount, fine, input.AddOnPrices,
			cfg.PlatformFeePercent, cfg.TaxPercent)

		c.JSON(200, settlement)
	}
}
