package events

import (
	"time"

	"moffatbay/internal/domain"
)

// ReservationEvent is the wire shape pushed to the desk feed and the broker.
type ReservationEvent struct {
	Type       string                   `json:"type"`
	PublicID   string                   `json:"public_id"`
	Status     domain.ReservationStatus `json:"status"`
	GuestName  string                   `json:"guest_name"`
	StartDate  string                   `json:"start_date"`
	EndDate    string                   `json:"end_date"`
	Guests     int                      `json:"guests"`
	RoomTypeID *int64                   `json:"room_type_id,omitempty"`
	OccurredAt time.Time                `json:"occurred_at"`
}

func newEvent(eventType string, r *domain.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:       eventType,
		PublicID:   r.PublicID,
		Status:     r.Status,
		GuestName:  r.GuestFirstName + " " + r.GuestLastName,
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		Guests:     r.Guests,
		RoomTypeID: r.RoomTypeID,
		OccurredAt: time.Now().UTC(),
	}
}
