package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationHold      ReservationStatus = "Hold"
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationCancelled ReservationStatus = "Cancelled"
)

// Reservation is the central mutable entity. PublicID is assigned once at
// creation and never changes; the guest contact fields are snapshots taken
// at booking time and may diverge from the customer profile.
type Reservation struct {
	ID             int64             `json:"id"`
	PublicID       string            `json:"public_id"`
	CustomerID     *int64            `json:"customer_id,omitempty"`
	GuestFirstName string            `json:"guest_first_name"`
	GuestLastName  string            `json:"guest_last_name"`
	GuestPhone     string            `json:"guest_phone"`
	GuestEmail     string            `json:"guest_email"`
	CreatedTime    time.Time         `json:"created_time"`
	ExpirationTime *time.Time        `json:"expiration_time,omitempty"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Status         ReservationStatus `json:"status"`
	StartDate      time.Time         `json:"start_date"`
	EndDate        time.Time         `json:"end_date"`
	RoomTypeID     *int64            `json:"room_type_id,omitempty"`
	RoomID         *int64            `json:"room_id,omitempty"`
	TotalCost      decimal.Decimal   `json:"total_cost"`
	Guests         int               `json:"guests"`

	RoomType *RoomType `json:"room_type,omitempty"`
}

func (r *Reservation) IsHold() bool { return r.Status == ReservationHold }

// HoldExpired reports whether a Hold's expiration has passed at now.
// Non-hold reservations never expire.
func (r *Reservation) HoldExpired(now time.Time) bool {
	return r.Status == ReservationHold && r.ExpirationTime != nil && r.ExpirationTime.Before(now)
}

// Nights returns the billable night count for a stay, floored at one.
func Nights(start, end time.Time) int {
	n := int(end.Sub(start).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// StayCost computes nights × price with decimal precision.
func StayCost(start, end time.Time, pricePerNight decimal.Decimal) (int, decimal.Decimal) {
	n := Nights(start, end)
	return n, pricePerNight.Mul(decimal.NewFromInt(int64(n)))
}
