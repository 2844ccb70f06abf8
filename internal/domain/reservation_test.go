package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, Nights(start, start.AddDate(0, 0, 3)))
	assert.Equal(t, 1, Nights(start, start.AddDate(0, 0, 1)))
	// degenerate ranges still bill one night
	assert.Equal(t, 1, Nights(start, start))
}

func TestStayCost(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	price := decimal.RequireFromString("157.50")

	nights, total := StayCost(start, start.AddDate(0, 0, 4), price)

	assert.Equal(t, 4, nights)
	assert.Equal(t, "630.00", total.StringFixed(2))
}

func TestHoldExpired(t *testing.T) {
	now := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	hold := &Reservation{Status: ReservationHold, ExpirationTime: &past}
	assert.True(t, hold.HoldExpired(now))

	hold.ExpirationTime = &future
	assert.False(t, hold.HoldExpired(now))

	confirmed := &Reservation{Status: ReservationConfirmed, ExpirationTime: &past}
	assert.False(t, confirmed.HoldExpired(now))

	openEnded := &Reservation{Status: ReservationHold}
	assert.False(t, openEnded.HoldExpired(now))
}
