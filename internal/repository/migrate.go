package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table the
// repositories manage. The row models are the single schema source.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&eventModel{},
		&bookingModel{},
		&paymentOrderModel{},
	)
}
