package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"

	"moffatbay/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        ":memory:",
		}),
		&gorm.Config{},
	)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// in-memory sqlite lives per connection; pin the pool to one
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func day(d int) time.Time {
	return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
}

var reservationSeq int

func seedReservation(t *testing.T, repo *ReservationRepository, customerID *int64, status domain.ReservationStatus, start, end time.Time, expiry *time.Time) *domain.Reservation {
	t.Helper()
	reservationSeq++

	rtID := int64(4)
	res := &domain.Reservation{
		PublicID:       fmt.Sprintf("MBL-%08X", reservationSeq),
		CustomerID:     customerID,
		GuestFirstName: "Pat",
		GuestLastName:  "Harbor",
		GuestEmail:     "pat@example.com",
		Status:         status,
		ExpirationTime: expiry,
		StartDate:      start,
		EndDate:        end,
		RoomTypeID:     &rtID,
		TotalCost:      decimal.RequireFromString("141.75"),
		Guests:         2,
	}
	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return res
}

func TestCountOverlapping_HalfOpenBoundary(t *testing.T) {
	repo := NewReservationRepository(openTestDB(t))
	ctx := context.Background()

	// one Queen stay, Dec 1 to Dec 3
	seedReservation(t, repo, nil, domain.ReservationConfirmed, day(1), day(3), nil)

	// checkout day equals check-in day: no conflict
	cnt, err := repo.CountOverlapping(ctx, 4, day(3), day(5), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), cnt)

	// same the other way around: window ending on the stay's first day
	cnt, err = repo.CountOverlapping(ctx, 4, day(1).AddDate(0, 0, -2), day(1), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), cnt)

	// one shared night conflicts
	cnt, err = repo.CountOverlapping(ctx, 4, day(2), day(4), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	// identical window conflicts
	cnt, err = repo.CountOverlapping(ctx, 4, day(1), day(3), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	// fully containing window conflicts
	cnt, err = repo.CountOverlapping(ctx, 4, day(1).AddDate(0, 0, -1), day(5), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestCountOverlapping_StatusAndTypeFilters(t *testing.T) {
	repo := NewReservationRepository(openTestDB(t))
	ctx := context.Background()

	expiry := day(2)
	seedReservation(t, repo, nil, domain.ReservationHold, day(1), day(3), &expiry)
	seedReservation(t, repo, nil, domain.ReservationCancelled, day(1), day(3), nil)

	// Hold counts, Cancelled does not
	cnt, err := repo.CountOverlapping(ctx, 4, day(1), day(3), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	// other room types are untouched
	cnt, err = repo.CountOverlapping(ctx, 1, day(1), day(3), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), cnt)
}

func TestCountOverlapping_ExcludeID(t *testing.T) {
	repo := NewReservationRepository(openTestDB(t))
	ctx := context.Background()

	mine := seedReservation(t, repo, nil, domain.ReservationConfirmed, day(1), day(3), nil)

	cnt, err := repo.CountOverlapping(ctx, 4, day(1), day(3), mine.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), cnt)

	other := seedReservation(t, repo, nil, domain.ReservationConfirmed, day(1), day(3), nil)

	cnt, err = repo.CountOverlapping(ctx, 4, day(1), day(3), mine.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
	assert.NotEqual(t, mine.ID, other.ID)
}

func TestCancelExpiredHolds(t *testing.T) {
	repo := NewReservationRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	lapsed := seedReservation(t, repo, nil, domain.ReservationHold, day(1), day(3), &past)
	live := seedReservation(t, repo, nil, domain.ReservationHold, day(1), day(3), &future)
	confirmed := seedReservation(t, repo, nil, domain.ReservationConfirmed, day(1), day(3), nil)

	n, err := repo.CancelExpiredHolds(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByPublicID(ctx, lapsed.PublicID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, got.Status)

	got, err = repo.GetByPublicID(ctx, live.PublicID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationHold, got.Status)

	got, err = repo.GetByPublicID(ctx, confirmed.PublicID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, got.Status)

	// second sweep finds nothing left
	n, err = repo.CancelExpiredHolds(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestFindOverlappingForCustomer(t *testing.T) {
	repo := NewReservationRepository(openTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

	me := int64(3)
	stranger := int64(4)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	confirmed := seedReservation(t, repo, &me, domain.ReservationConfirmed, day(1), day(3), nil)
	liveHold := seedReservation(t, repo, &me, domain.ReservationHold, day(2), day(4), &future)
	seedReservation(t, repo, &me, domain.ReservationHold, day(1), day(3), &past)      // lapsed
	seedReservation(t, repo, &me, domain.ReservationCancelled, day(1), day(3), nil)   // cancelled
	seedReservation(t, repo, &me, domain.ReservationConfirmed, day(10), day(12), nil) // outside window
	seedReservation(t, repo, &stranger, domain.ReservationConfirmed, day(1), day(3), nil)

	found, err := repo.FindOverlappingForCustomer(ctx, me, day(2), day(3), now)
	assert.NoError(t, err)

	ids := make([]string, 0, len(found))
	for _, r := range found {
		ids = append(ids, r.PublicID)
	}
	assert.ElementsMatch(t, []string{confirmed.PublicID, liveHold.PublicID}, ids)
}

func TestFindByPublicID_Scoping(t *testing.T) {
	repo := NewReservationRepository(openTestDB(t))
	ctx := context.Background()

	me := int64(3)
	other := int64(4)
	mine := seedReservation(t, repo, &me, domain.ReservationConfirmed, day(1), day(3), nil)
	theirs := seedReservation(t, repo, &other, domain.ReservationConfirmed, day(1), day(3), nil)

	// staff scope (nil) sees any row, case-insensitively
	found, err := repo.FindByPublicID(ctx, nil, theirs.PublicID)
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	// customer scope only sees their own
	found, err = repo.FindByPublicID(ctx, &me, theirs.PublicID)
	assert.NoError(t, err)
	assert.Empty(t, found)

	found, err = repo.FindByPublicID(ctx, &me, mine.PublicID)
	assert.NoError(t, err)
	assert.Len(t, found, 1)
}
