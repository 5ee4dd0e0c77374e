package models

import (
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusPending  VehicleStatus = "pending"
	VehicleStatusApproved VehicleStatus = "approved"
	VehicleStatusRejected VehicleStatus = "rejected"
)

// Vehicle is an owner's listing. Only approved vehicles accept bids.
// The owner may update Price at will within the platform bounds;
// soft delete (gorm DeletedAt) is used when an owner is blocked.
type Vehicle struct {
	gorm.Model
	OwnerID  uint          `json:"ownerId" gorm:"not null;index"`
	Owner    *User         `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name     string        `json:"name" gorm:"not null"`
	Plate    string        `json:"plate" gorm:"not null"`
	Price    float64       `json:"price" gorm:"not null"` // daily rate
	Status   VehicleStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	PhotoURL string        `json:"photoUrl,omitempty"`
}

// TableName specifies the table name
func (Vehicle) TableName() string {
	return "vehicles"
}

// AddOn is an optional extra (child seat, GPS, insurance tier) offered by
// a seller. Bids may select any subset of the owning seller's catalog.
type AddOn struct {
	gorm.Model
	OwnerID uint    `json:"ownerId" gorm:"not null;index"`
	Name    string  `json:"name" gorm:"not null"`
	Price   float64 `json:"price" gorm:"not null"`
}

// TableName specifies the table name
func (AddOn) TableName() string {
	return "add_ons"
}
