package models

import (
	"gorm.io/gorm"
)

// Review is the renter's one-time rating of a finished trip. Creating it
// moves the booking's trip status to reviewed.
type Review struct {
	gorm.Model
	BidID      uint    `json:"bidId" gorm:"not null;unique"`
	ReviewerID uint    `json:"reviewerId" gorm:"not null"`
	Rating     float64 `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string  `json:"comment,omitempty"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}
