package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"moffatbay/internal/domain"
	"moffatbay/internal/pkg/mail"
	"moffatbay/internal/pkg/validator"
)

// Dispatcher composes and sends reservation emails. Transport failures are
// logged and never abort the request; invalid addresses are reported back
// to the caller as a warning list, never silently dropped.
type Dispatcher struct {
	mailer mail.Mailer
	from   string
}

func NewDispatcher(mailer mail.Mailer, from string) *Dispatcher {
	return &Dispatcher{mailer: mailer, from: from}
}

// SplitList breaks a free-text recipients field on commas and semicolons.
func SplitList(raw string) []string {
	normalized := strings.ReplaceAll(raw, ";", ",")
	var out []string
	for _, addr := range strings.Split(normalized, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// ValidateAddresses partitions candidate addresses into a deduplicated
// valid list and the invalid leftovers. Blank entries are skipped.
func ValidateAddresses(addrs ...string) (valid []string, invalid []string) {
	seen := make(map[string]bool)
	for _, addr := range addrs {
		addr = strings.TrimSpace(addr)
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		if validator.Email(addr) {
			valid = append(valid, addr)
		} else {
			invalid = append(invalid, addr)
		}
	}
	return valid, invalid
}

// SendBookingConfirmation mails the full confirmation to the guest plus any
// extra candidates. Hold reservations never trigger outbound email.
// Returns the invalid addresses for the caller to surface.
func (d *Dispatcher) SendBookingConfirmation(ctx context.Context, r *domain.Reservation, rt *domain.RoomType, extra ...string) []string {
	if r.Status == domain.ReservationHold {
		return nil
	}

	candidates := append([]string{r.GuestEmail}, extra...)
	recipients, invalid := ValidateAddresses(candidates...)
	if len(recipients) > 0 {
		subject := fmt.Sprintf("Moffat Bay Lodge Reservation Confirmation #%s", r.PublicID)
		d.send(ctx, subject, confirmationBody(r, rt), recipients)
	}
	return invalid
}

// SendHoldConfirmed mails the guest after a Hold flips to Confirmed.
func (d *Dispatcher) SendHoldConfirmed(ctx context.Context, r *domain.Reservation, rt *domain.RoomType) []string {
	recipients, invalid := ValidateAddresses(r.GuestEmail)
	if len(recipients) > 0 {
		subject := fmt.Sprintf("Reservation Confirmed #%s", r.PublicID)
		body := fmt.Sprintf(`Dear %s,

Your held reservation is now confirmed!

Reservation number: %s
Room type: %s
Check-in: %s
Check-out: %s
Guests: %d
Total cost: $%s

We look forward to your stay!
`, r.GuestFirstName, r.PublicID, rt.Name,
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"),
			r.Guests, r.TotalCost.StringFixed(2))
		d.send(ctx, subject, body, recipients)
	}
	return invalid
}

// SendUpdate mails the primary recipients (guest + account email) the update
// notice and any additional recipients the invite variant. The combined
// invalid list comes back for the caller's warning message.
func (d *Dispatcher) SendUpdate(ctx context.Context, r *domain.Reservation, rt *domain.RoomType, accountEmail, additionalRaw string) []string {
	primary, primaryInvalid := ValidateAddresses(r.GuestEmail, accountEmail)

	additional, additionalInvalid := ValidateAddresses(SplitList(additionalRaw)...)

	// Primary recipients win when an address appears in both lists.
	primarySet := make(map[string]bool, len(primary))
	for _, addr := range primary {
		primarySet[addr] = true
	}
	deduped := additional[:0]
	for _, addr := range additional {
		if !primarySet[addr] {
			deduped = append(deduped, addr)
		}
	}
	additional = deduped

	if len(primary) > 0 {
		subject := fmt.Sprintf("Reservation Updated #%s", r.PublicID)
		body := fmt.Sprintf(`Dear %s %s,

Your reservation has been updated successfully.

Reservation number: %s
Room type: %s
Check-in: %s
Check-out: %s
Guests: %d

We look forward to your stay!
`, r.GuestFirstName, r.GuestLastName, r.PublicID, rt.Name,
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"), r.Guests)
		d.send(ctx, subject, body, primary)
	}

	if len(additional) > 0 {
		subject := fmt.Sprintf("Moffat Bay Lodge Reservation Update #%s", r.PublicID)
		body := fmt.Sprintf(`Hello,

%s %s invites you on a journey to Moffat Bay Lodge.

Updated Reservation Details:
Reservation number: %s
Room type: %s
Check-in: %s
Check-out: %s
Guests: %d

We look forward to welcoming you!
`, r.GuestFirstName, r.GuestLastName, r.PublicID, rt.Name,
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"), r.Guests)
		d.send(ctx, subject, body, additional)
	}

	return append(primaryInvalid, additionalInvalid...)
}

// SendCopy mails one extra validated address the confirmation body.
func (d *Dispatcher) SendCopy(ctx context.Context, r *domain.Reservation, rt *domain.RoomType, addr string) {
	subject := fmt.Sprintf("Moffat Bay Lodge Reservation Confirmation #%s", r.PublicID)
	d.send(ctx, subject, confirmationBody(r, rt), []string{addr})
}

func confirmationBody(r *domain.Reservation, rt *domain.RoomType) string {
	nights := domain.Nights(r.StartDate, r.EndDate)
	lines := []string{
		fmt.Sprintf("Dear %s %s,", r.GuestFirstName, r.GuestLastName),
		"",
		"Thank you for choosing Moffat Bay Lodge.",
		fmt.Sprintf("Your reservation number is: %s", r.PublicID),
		"",
		"Reservation Details:",
		fmt.Sprintf("  Room Type: %s", rt.Name),
		fmt.Sprintf("  Check-in: %s", r.StartDate.Format("2006-01-02")),
		fmt.Sprintf("  Check-out: %s", r.EndDate.Format("2006-01-02")),
		fmt.Sprintf("  Guests: %d", r.Guests),
		fmt.Sprintf("  Price per night: $%s", rt.PricePerNight.StringFixed(2)),
		fmt.Sprintf("  Nights: %d", nights),
		fmt.Sprintf("  Total cost: $%s", r.TotalCost.StringFixed(2)),
		"",
		"We look forward to your stay at Moffat Bay Lodge.",
	}
	return strings.Join(lines, "\n")
}

// send applies the single failure policy: log and move on.
func (d *Dispatcher) send(ctx context.Context, subject, body string, to []string) {
	if err := d.mailer.Send(ctx, d.from, subject, body, to); err != nil {
		log.Printf("mail send failed subject=%q recipients=%d: %v", subject, len(to), err)
	}
}
