package notify

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"moffatbay/internal/domain"
)

type sentMail struct {
	from    string
	subject string
	body    string
	to      []string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, from, subject, body string, to []string) error {
	m.sent = append(m.sent, sentMail{from: from, subject: subject, body: body, to: to})
	return m.err
}

func confirmedReservation() (*domain.Reservation, *domain.RoomType) {
	rt := &domain.RoomType{
		ID:            1,
		Name:          "King Bed",
		PricePerNight: decimal.RequireFromString("168.00"),
	}
	return &domain.Reservation{
		PublicID:       "MBL-AB12CD34",
		GuestFirstName: "Pat",
		GuestLastName:  "Harbor",
		GuestEmail:     "pat@example.com",
		Status:         domain.ReservationConfirmed,
		StartDate:      time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC),
		TotalCost:      decimal.RequireFromString("504.00"),
		Guests:         2,
	}, rt
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"},
		SplitList("a@x.com, b@x.com;c@x.com"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" ; , "))
}

func TestValidateAddresses(t *testing.T) {
	valid, invalid := ValidateAddresses("pat@example.com", "not-an-email", "pat@example.com", "", "other@example.com")

	assert.Equal(t, []string{"pat@example.com", "other@example.com"}, valid)
	assert.Equal(t, []string{"not-an-email"}, invalid)
}

func TestSendBookingConfirmation(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, "reservations@moffatbaylodge.com")
	res, rt := confirmedReservation()

	invalid := d.SendBookingConfirmation(context.Background(), res, rt, "friend@example.com", "bogus")

	assert.Equal(t, []string{"bogus"}, invalid)
	if assert.Len(t, mailer.sent, 1) {
		msg := mailer.sent[0]
		assert.Equal(t, []string{"pat@example.com", "friend@example.com"}, msg.to)
		assert.Contains(t, msg.subject, "MBL-AB12CD34")
		assert.Contains(t, msg.body, "Total cost: $504.00")
		assert.Contains(t, msg.body, "Nights: 3")
	}
}

func TestSendBookingConfirmation_SkipsHolds(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, "reservations@moffatbaylodge.com")
	res, rt := confirmedReservation()
	res.Status = domain.ReservationHold

	invalid := d.SendBookingConfirmation(context.Background(), res, rt, "bogus")

	assert.Empty(t, invalid)
	assert.Empty(t, mailer.sent)
}

func TestSendUpdate_PrimaryAndInviteVariants(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, "reservations@moffatbaylodge.com")
	res, rt := confirmedReservation()

	invalid := d.SendUpdate(context.Background(), res, rt,
		"account@example.com", "friend@example.com; pat@example.com, junk")

	assert.Equal(t, []string{"junk"}, invalid)
	if assert.Len(t, mailer.sent, 2) {
		// primary notice to guest and account
		assert.Equal(t, []string{"pat@example.com", "account@example.com"}, mailer.sent[0].to)
		assert.Contains(t, mailer.sent[0].body, "updated successfully")
		// invite variant to the remaining extra only
		assert.Equal(t, []string{"friend@example.com"}, mailer.sent[1].to)
		assert.Contains(t, mailer.sent[1].body, "invites you")
	}
}

func TestSendFailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{err: assert.AnError}
	d := NewDispatcher(mailer, "reservations@moffatbaylodge.com")
	res, rt := confirmedReservation()

	invalid := d.SendBookingConfirmation(context.Background(), res, rt)

	assert.Empty(t, invalid)
	assert.Len(t, mailer.sent, 1)
}
