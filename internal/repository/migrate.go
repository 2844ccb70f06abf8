package repository

import (
	"moffatbay/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the application uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Customer{},
		&domain.RoomType{},
		&domain.Room{},
		&reservationModel{},
	)
}
