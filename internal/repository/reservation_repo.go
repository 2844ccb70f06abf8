package repository

import (
	"context"
	"time"

	"moffatbay/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID             int64           `gorm:"column:id;primaryKey"`
	PublicID       string          `gorm:"column:public_id;size:12;uniqueIndex:idx_reservations_public_id"`
	CustomerID     *int64          `gorm:"column:customer_id"`
	GuestFirstName string          `gorm:"column:guest_first_name;size:35"`
	GuestLastName  string          `gorm:"column:guest_last_name;size:35"`
	GuestPhone     string          `gorm:"column:guest_phone;size:25"`
	GuestEmail     string          `gorm:"column:guest_email;size:254"`
	CreatedTime    time.Time       `gorm:"column:created_time;autoCreateTime"`
	ExpirationTime *time.Time      `gorm:"column:expiration_time"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	Status         string          `gorm:"column:status;size:10"`
	StartDate      time.Time       `gorm:"column:start_date;type:date"`
	EndDate        time.Time       `gorm:"column:end_date;type:date"`
	RoomTypeID     *int64          `gorm:"column:room_type_id"`
	RoomID         *int64          `gorm:"column:room_id"`
	TotalCost      decimal.Decimal `gorm:"column:total_cost;type:decimal(7,2)"`
	Guests         int             `gorm:"column:guests"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	return &domain.Reservation{
		ID:             m.ID,
		PublicID:       m.PublicID,
		CustomerID:     m.CustomerID,
		GuestFirstName: m.GuestFirstName,
		GuestLastName:  m.GuestLastName,
		GuestPhone:     m.GuestPhone,
		GuestEmail:     m.GuestEmail,
		CreatedTime:    m.CreatedTime,
		ExpirationTime: m.ExpirationTime,
		UpdatedAt:      m.UpdatedAt,
		Status:         domain.ReservationStatus(m.Status),
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		RoomTypeID:     m.RoomTypeID,
		RoomID:         m.RoomID,
		TotalCost:      m.TotalCost,
		Guests:         m.Guests,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:             r.ID,
		PublicID:       r.PublicID,
		CustomerID:     r.CustomerID,
		GuestFirstName: r.GuestFirstName,
		GuestLastName:  r.GuestLastName,
		GuestPhone:     r.GuestPhone,
		GuestEmail:     r.GuestEmail,
		CreatedTime:    r.CreatedTime,
		ExpirationTime: r.ExpirationTime,
		UpdatedAt:      r.UpdatedAt,
		Status:         string(r.Status),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		RoomTypeID:     r.RoomTypeID,
		RoomID:         r.RoomID,
		TotalCost:      r.TotalCost,
		Guests:         r.Guests,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

// CountOverlapping counts active (Hold or Confirmed) reservations of a room
// type whose [start_date, end_date) intersects [checkIn, checkOut). The
// half-open test means a checkout on day N never conflicts with a check-in
// on day N. excludeID skips one reservation row, used when re-checking a
// reservation against its own modification; pass 0 to exclude nothing.
func (r *ReservationRepository) CountOverlapping(ctx context.Context, roomTypeID int64, checkIn, checkOut time.Time, excludeID int64) (int64, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM reservations
WHERE room_type_id = ?
  AND status IN ('Hold', 'Confirmed')
  AND start_date < ?
  AND end_date > ?
  AND id <> ?
`
	tx := r.db.WithContext(ctx).Raw(q, roomTypeID, checkOut, checkIn, excludeID).Scan(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// CancelExpiredHolds flips every lapsed Hold to Cancelled in bulk and
// returns how many rows changed. Called lazily before availability searches.
func (r *ReservationRepository) CancelExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&reservationModel{}).
		Where("status = ? AND expiration_time IS NOT NULL AND expiration_time < ?", domain.ReservationHold, now).
		Update("status", domain.ReservationCancelled)
	return tx.RowsAffected, tx.Error
}

// FindOverlappingForCustomer returns the customer's own active reservations
// (Confirmed, or Hold that has not yet expired) intersecting the window.
func (r *ReservationRepository) FindOverlappingForCustomer(ctx context.Context, customerID int64, checkIn, checkOut, now time.Time) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Where(
			r.db.Where("status = ?", domain.ReservationConfirmed).
				Or("status = ? AND expiration_time > ?", domain.ReservationHold, now),
		).
		Where("start_date < ? AND end_date > ?", checkOut, checkIn).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservations(rows), nil
}

func (r *ReservationRepository) FindByGuestEmail(ctx context.Context, customerID *int64, email string) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := r.scope(ctx, customerID).
		Where("LOWER(guest_email) = LOWER(?)", email).
		Order("start_date DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservations(rows), nil
}

func (r *ReservationRepository) FindByGuestName(ctx context.Context, customerID *int64, firstName, lastName string) ([]domain.Reservation, error) {
	tx := r.scope(ctx, customerID)
	if firstName != "" {
		tx = tx.Where("LOWER(guest_first_name) LIKE LOWER(?)", "%"+firstName+"%")
	}
	if lastName != "" {
		tx = tx.Where("LOWER(guest_last_name) LIKE LOWER(?)", "%"+lastName+"%")
	}

	var rows []reservationModel
	tx = tx.Order("start_date DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservations(rows), nil
}

func (r *ReservationRepository) FindByPublicID(ctx context.Context, customerID *int64, publicID string) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := r.scope(ctx, customerID).
		Where("LOWER(public_id) = LOWER(?)", publicID).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservations(rows), nil
}

// scope narrows queries to one customer; staff pass nil and see everything.
func (r *ReservationRepository) scope(ctx context.Context, customerID *int64) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&reservationModel{})
	if customerID != nil {
		tx = tx.Where("customer_id = ?", *customerID)
	}
	return tx
}

func toDomainReservations(rows []reservationModel) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out
}
