package reservation

import (
	"context"
	"time"

	"moffatbay/internal/domain"
	"moffatbay/internal/modules/availability"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByPublicID(ctx context.Context, publicID string) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	FindByGuestEmail(ctx context.Context, customerID *int64, email string) ([]domain.Reservation, error)
	FindByGuestName(ctx context.Context, customerID *int64, firstName, lastName string) ([]domain.Reservation, error)
	FindByPublicID(ctx context.Context, customerID *int64, publicID string) ([]domain.Reservation, error)
}

type RoomTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomType, error)
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
}

// AvailabilityChecker re-runs the capacity search during state transitions.
type AvailabilityChecker interface {
	Search(ctx context.Context, q availability.Query) ([]availability.Option, error)
}

// Notifier sends guest-facing email; implementations must never fail the
// request, they report invalid addresses instead.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, r *domain.Reservation, rt *domain.RoomType, extra ...string) []string
	SendHoldConfirmed(ctx context.Context, r *domain.Reservation, rt *domain.RoomType) []string
	SendUpdate(ctx context.Context, r *domain.Reservation, rt *domain.RoomType, accountEmail, additionalRaw string) []string
	SendCopy(ctx context.Context, r *domain.Reservation, rt *domain.RoomType, addr string)
}

// EventSink receives lifecycle events for the staff desk feed.
type EventSink interface {
	ReservationEvent(eventType string, r *domain.Reservation)
}

// Clock lets tests pin hold expiry moments.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
