package availability

import (
	"context"
	"log"
	"time"

	"moffatbay/internal/domain"

	"github.com/shopspring/decimal"
)

// Query describes one availability search over [CheckIn, CheckOut).
// ExcludeReservationID removes one reservation from the overlap count so a
// reservation being confirmed or modified never collides with itself.
type Query struct {
	CheckIn              time.Time
	CheckOut             time.Time
	Guests               int
	RoomTypeID           *int64
	ExcludeReservationID int64
}

// Option is one room type with remaining capacity for the queried stay.
type Option struct {
	RoomType       domain.RoomType `json:"room_type"`
	AvailableCount int             `json:"available_count"`
	PricePerNight  decimal.Decimal `json:"price_per_night"`
	Nights         int             `json:"nights"`
	TotalCost      decimal.Decimal `json:"total_cost"`
}

type Service struct {
	roomTypes    RoomTypeRepository
	rooms        RoomRepository
	reservations ReservationRepository
}

func NewService(roomTypes RoomTypeRepository, rooms RoomRepository, reservations ReservationRepository) *Service {
	return &Service{
		roomTypes:    roomTypes,
		rooms:        rooms,
		reservations: reservations,
	}
}

// Search returns the room types with strictly positive remaining capacity
// for the window, each annotated with free units, nights and total cost.
//
// Every search doubles as the expiry sweep: lapsed Holds are cancelled in
// bulk first so they stop occupying inventory.
func (s *Service) Search(ctx context.Context, q Query) ([]Option, error) {
	if n, err := s.reservations.CancelExpiredHolds(ctx, time.Now()); err != nil {
		return nil, err
	} else if n > 0 {
		log.Printf("expired holds cancelled: %d", n)
	}

	types, err := s.roomTypes.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Option, 0, len(types))
	for _, rt := range types {
		if q.RoomTypeID != nil && rt.ID != *q.RoomTypeID {
			continue
		}
		if q.Guests > 0 && rt.MaxGuests < q.Guests {
			continue
		}

		capacity, err := s.rooms.CountUsable(ctx, rt.ID, q.CheckIn)
		if err != nil {
			return nil, err
		}
		if capacity == 0 {
			continue
		}

		overlapping, err := s.reservations.CountOverlapping(ctx, rt.ID, q.CheckIn, q.CheckOut, q.ExcludeReservationID)
		if err != nil {
			return nil, err
		}
		if overlapping >= capacity {
			continue
		}

		nights, total := domain.StayCost(q.CheckIn, q.CheckOut, rt.PricePerNight)
		out = append(out, Option{
			RoomType:       rt,
			AvailableCount: int(capacity - overlapping),
			PricePerNight:  rt.PricePerNight,
			Nights:         nights,
			TotalCost:      total,
		})
	}

	return out, nil
}

// CustomerOverlaps lists the customer's own active reservations intersecting
// the window, surfaced as a warning on search results.
func (s *Service) CustomerOverlaps(ctx context.Context, customerID int64, checkIn, checkOut time.Time) ([]domain.Reservation, error) {
	return s.reservations.FindOverlappingForCustomer(ctx, customerID, checkIn, checkOut, time.Now())
}
