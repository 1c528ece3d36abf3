package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for all tables this service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&enquiryModel{},
		&offerModel{},
		&destinationModel{},
		&adminUserModel{},
	)
}
