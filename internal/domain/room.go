package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

// RoomType is immutable reference data, seeded once.
type RoomType struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:25;uniqueIndex" validate:"required"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:decimal(7,2)" validate:"required"`
	Beds          int             `json:"beds" validate:"required,gt=0"`
	MaxGuests     int             `json:"max_guests" validate:"required,gt=0"`
	Description   string          `json:"description,omitempty" gorm:"type:text"`
}

func (RoomType) TableName() string { return "room_types" }

type Room struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	RoomNumber       string     `json:"room_number" gorm:"size:20;uniqueIndex" validate:"required"`
	RoomTypeID       int64      `json:"room_type_id"`
	Status           RoomStatus `json:"status" gorm:"size:12;default:Available"`
	MaintenanceUntil *time.Time `json:"maintenance_until,omitempty" gorm:"type:date"`
	UpdatedAt        time.Time  `json:"updated_at"`

	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
}

func (Room) TableName() string { return "rooms" }
