package availability

import (
	"context"
	"time"

	"moffatbay/internal/domain"
)

type RoomTypeRepository interface {
	List(ctx context.Context) ([]domain.RoomType, error)
}

type RoomRepository interface {
	CountUsable(ctx context.Context, roomTypeID int64, checkIn time.Time) (int64, error)
}

type ReservationRepository interface {
	CountOverlapping(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time, excludeID int64) (int64, error)
	CancelExpiredHolds(ctx context.Context, now time.Time) (int64, error)
	FindOverlappingForCustomer(ctx context.Context, customerID int64, checkIn, checkOut, now time.Time) ([]domain.Reservation, error)
}
