package handlers

import (
	"github.com/driveshare/driveshare-backend/internal/models"
	"github.com/driveshare/driveshare-backend/internal/rental"
	"github.com/driveshare/driveshare-backend/internal/services"
	"github.com/driveshare/driveshare-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateVehicle handles a new listing submission. Listings start pending
// and accept bids only once an admin approves them.
func CreateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint("userId")
		if c.GetString("userType") != string(models.UserTypeOwner) {
			c.JSON(403, gin.H{"error": "Only owners can list vehicles"})
			return
		}

		var input struct {
			Name  string  `json:"name" binding:"required"`
			Plate string  `json:"plate" binding:"required"`
			Price float64 `json:"price" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.Price < utils.MinBidAmount || input.Price > utils.MaxBidAmount {
			c.JSON(400, gin.H{"error": "Price is outside platform bounds"})
			return
		}

		vehicle := models.Vehicle{
			OwnerID: ownerID,
			Name:    input.Name,
			Plate:   input.Plate,
			Price:   input.Price,
			Status:  models.VehicleStatusPending,
		}
		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create vehicle"})
			return
		}

		c.JSON(201, vehicle)
	}
}

// UpdateVehiclePrice lets the owner change the daily rate at will, bounded
// by the platform min/max
func UpdateVehiclePrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint("userId")
		vehicleID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input struct {
			Price float64 `json:"price" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.Price < utils.MinBidAmount || input.Price > utils.MaxBidAmount {
			c.JSON(400, gin.H{"error": "Price is outside platform bounds"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}
		if vehicle.OwnerID != ownerID {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		vehicle.Price = input.Price
		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update price"})
			return
		}

		c.JSON(200, vehicle)
	}
}

// ReviewVehicleListing handles admin approval/rejection of a listing
func ReviewVehicleListing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userType") != string(models.UserTypeAdmin) {
			c.JSON(403, gin.H{"error": "Only admins can review listings"})
			return
		}
		vehicleID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input struct {
			Status string `json:"status" binding:"required,oneof=approved rejected"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		vehicle.Status = models.VehicleStatus(input.Status)
		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update vehicle status"})
			return
		}

		c.JSON(200, vehicle)
	}
}

// UploadVehiclePhoto stores a listing photo in S3 (or the local fallback)
func UploadVehiclePhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint("userId")
		vehicleID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}
		if vehicle.OwnerID != ownerID {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"error": "Photo file required"})
			return
		}

		url, err := services.UploadImage(file, "vehicles")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to store photo"})
			return
		}

		vehicle.PhotoURL = url
		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save photo URL"})
			return
		}

		c.JSON(200, gin.H{"photoUrl": url})
	}
}

// CreateAddOn adds an extra to the owner's catalog
func CreateAddOn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint("userId")
		if c.GetString("userType") != string(models.UserTypeOwner) {
			c.JSON(403, gin.H{"error": "Only owners can create add-ons"})
			return
		}

		var input struct {
			Name  string  `json:"name" binding:"required"`
			Price float64 `json:"price" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.Price < 0 {
			c.JSON(400, gin.H{"error": "Add-on price must be non-negative"})
			return
		}

		addOn := models.AddOn{
			OwnerID: ownerID,
			Name:    input.Name,
			Price:   input.Price,
		}
		if err := db.Create(&addOn).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create add-on"})
			return
		}

		c.JSON(201, addOn)
	}
}

// GetVehicleAddOns lists the add-on catalog for a vehicle's owner
func GetVehicleAddOns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		var addOns []models.AddOn
		if err := db.Where("owner_id = ?", vehicle.OwnerID).Find(&addOns).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch add-ons"})
			return
		}

		c.JSON(200, gin.H{"addOns": addOns})
	}
}

// GetBlockedDates returns the vehicle's unavailable calendar days for
// date-picker disabling
func GetBlockedDates(svc *rental.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		days, err := svc.BlockedDates(c.Request.Context(), vehicleID)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		dates := make([]string, 0, len(days))
		for _, d := range days {
			dates = append(dates, d.Format(utils.DateLayout))
		}

		c.JSON(200, gin.H{"blockedDates": dates})
	}
}
