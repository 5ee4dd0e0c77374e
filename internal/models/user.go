package models

import (
    "gorm.io/gorm"
)

type UserType string

const (
    UserTypeRenter UserType = "renter"
    UserTypeOwner  UserType = "owner"
    UserTypeAdmin  UserType = "admin"
)

// User is a marketplace participant. Accounts are provisioned by the
// external identity service; this table only mirrors what the engine
// needs for ownership checks and dashboard display.
type User struct {
    gorm.Model
    Username    string `gorm:"column:username;unique;not null" json:"username"`
    Email       string `gorm:"column:email;unique;not null" json:"email"`
    PhoneNumber string `gorm:"column:phone_number" json:"phoneNumber"`
    UserType    string `gorm:"column:user_type;not null" json:"userType"`
    IsBlocked   bool   `gorm:"column:is_blocked;not null;default:false" json:"isBlocked"`
}

// TableName specifies the table name
func (User) TableName() string {
    return "users"
}
