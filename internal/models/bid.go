package models

import (
	"time"

	"gorm.io/gorm"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusApproved BidStatus = "approved"
	BidStatusRejected BidStatus = "rejected"
)

type TripStatus string

// Trip states of an approved booking. Empty until the bid is approved.
const (
	TripStatusApproved TripStatus = "approved"
	TripStatusStarted  TripStatus = "started"
	TripStatusEnded    TripStatus = "ended"
	TripStatusReviewed TripStatus = "reviewed"
)

// OdometerUnset marks an odometer reading that has not been recorded yet.
const OdometerUnset = -1

// Bid is a renter's proposal for a vehicle over an inclusive date range.
// Once approved it doubles as the booking: TripStatus and the odometer
// fields drive the physical trip, and FinalAmount holds the settlement.
// OwnerID is denormalized from the vehicle for dashboard queries.
type Bid struct {
	gorm.Model
	VehicleID     uint       `json:"vehicleId" gorm:"not null;index"`
	Vehicle       *Vehicle   `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	BidderID      uint       `json:"bidderId" gorm:"not null;index"`
	Bidder        *User      `json:"bidder,omitempty" gorm:"foreignKey:BidderID"`
	OwnerID       uint       `json:"ownerId" gorm:"not null;index"`
	Amount        float64    `json:"amount" gorm:"not null"` // proposed daily rate
	StartDate     time.Time  `json:"startDate" gorm:"not null"`
	EndDate       time.Time  `json:"endDate" gorm:"not null"`
	Status        BidStatus  `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	TripStatus    TripStatus `json:"tripStatus,omitempty" gorm:"type:varchar(16);index"`
	StartOdometer float64    `json:"startOdometerValue" gorm:"not null;default:-1"`
	EndOdometer   float64    `json:"endOdometerValue" gorm:"not null;default:-1"`
	FinalAmount   float64    `json:"finalAmount" gorm:"not null;default:0"`
	AddOns        []AddOn    `json:"addOns" gorm:"many2many:bid_add_ons"`
}

// TableName specifies the table name
func (Bid) TableName() string {
	return "bids"
}

// IsTerminal reports whether the bid has reached a final decision.
func (b *Bid) IsTerminal() bool {
	return b.Status == BidStatusApproved || b.Status == BidStatusRejected
}
