package database

import (
	"github.com/driveshare/driveshare-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.AddOn{},
		&models.Bid{},
		&models.Review{},
	)
	if err != nil {
		return err
	}

	// Status columns predate the typed enums; re-assert the check
	// constraints so bad rows cannot sneak in through raw SQL.
	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_user_type_check`)
		if err := db.Exec(`ALTER TABLE users ADD CONSTRAINT users_user_type_check CHECK (user_type IN ('renter', 'owner', 'admin'))`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Vehicle{}) {
		db.Exec(`ALTER TABLE vehicles DROP CONSTRAINT IF EXISTS vehicles_status_check`)
		if err := db.Exec(`ALTER TABLE vehicles ADD CONSTRAINT vehicles_status_check CHECK (status IN ('pending', 'approved', 'rejected'))`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Bid{}) {
		db.Exec(`ALTER TABLE bids DROP CONSTRAINT IF EXISTS bids_status_check`)
		if err := db.Exec(`ALTER TABLE bids ADD CONSTRAINT bids_status_check CHECK (status IN ('pending', 'approved', 'rejected'))`).Error; err != nil {
			return err
		}

		db.Exec(`ALTER TABLE bids DROP CONSTRAINT IF EXISTS bids_trip_status_check`)
		if err := db.Exec(`ALTER TABLE bids ADD CONSTRAINT bids_trip_status_check CHECK (trip_status IN ('', 'approved', 'started', 'ended', 'reviewed'))`).Error; err != nil {
			return err
		}

		// Odometer readings may only move forward once recorded
		db.Exec(`ALTER TABLE bids DROP CONSTRAINT IF EXISTS bids_odometer_check`)
		if err := db.Exec(`ALTER TABLE bids ADD CONSTRAINT bids_odometer_check CHECK (end_odometer = -1 OR end_odometer >= start_odometer)`).Error; err != nil {
			return err
		}
	}

	return nil
}
