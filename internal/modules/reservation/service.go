package reservation

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"moffatbay/internal/domain"
	"moffatbay/internal/modules/availability"
	"moffatbay/internal/modules/notify"
)

const (
	EventCreated   = "reservation.created"
	EventConfirmed = "reservation.confirmed"
	EventCancelled = "reservation.cancelled"
	EventRetried   = "reservation.hold_retried"
	EventUpdated   = "reservation.updated"
)

// publicIDAttempts bounds the retry loop on public ID collisions.
const publicIDAttempts = 5

// Actor identifies the caller of a reservation operation. UserID of zero
// means an anonymous guest.
type Actor struct {
	UserID int64
	Staff  bool
}

// Result is a reservation plus the side-channel outcomes of the operation.
type Result struct {
	Reservation   *domain.Reservation `json:"reservation"`
	RoomType      *domain.RoomType    `json:"room_type,omitempty"`
	InvalidEmails []string            `json:"invalid_emails,omitempty"`
}

type Service struct {
	reservations ReservationRepository
	roomTypes    RoomTypeRepository
	customers    CustomerRepository
	checker      AvailabilityChecker
	notifier     Notifier
	events       EventSink
	clock        Clock
	holdTTL      time.Duration
	idPrefix     string
}

func NewService(
	reservations ReservationRepository,
	roomTypes RoomTypeRepository,
	customers CustomerRepository,
	checker AvailabilityChecker,
	notifier Notifier,
	events EventSink,
	holdTTL time.Duration,
	idPrefix string,
) *Service {
	return &Service{
		reservations: reservations,
		roomTypes:    roomTypes,
		customers:    customers,
		checker:      checker,
		notifier:     notifier,
		events:       events,
		clock:        systemClock{},
		holdTTL:      holdTTL,
		idPrefix:     idPrefix,
	}
}

// WithClock replaces the time source, used by tests.
func (s *Service) WithClock(c Clock) *Service {
	s.clock = c
	return s
}

// Create books a new reservation as either an immediate confirmation or a
// hold that expires after the configured TTL. Guest contact details are
// snapshotted onto the reservation regardless of any linked account.
func (s *Service) Create(ctx context.Context, actor Actor, req CreateRequest) (*Result, error) {
	now := s.clock.Now()
	checkIn, checkOut, err := availability.ParseDates(req.CheckIn, req.CheckOut, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	rt, err := s.roomTypes.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown room type", ErrValidation)
		}
		return nil, err
	}
	if req.Guests > rt.MaxGuests {
		return nil, fmt.Errorf("%w: %s sleeps at most %d guests", ErrValidation, rt.Name, rt.MaxGuests)
	}

	customer, err := s.resolveCustomer(ctx, actor, req.CustomerID)
	if err != nil {
		return nil, err
	}
	prefillGuestContact(&req, customer)
	if req.GuestFirstName == "" || req.GuestLastName == "" || req.GuestEmail == "" {
		return nil, fmt.Errorf("%w: guest name and email are required", ErrValidation)
	}

	var customerID *int64
	if customer != nil {
		customerID = &customer.ID
	}

	_, total := domain.StayCost(checkIn, checkOut, rt.PricePerNight)

	res := &domain.Reservation{
		CustomerID:     customerID,
		GuestFirstName: req.GuestFirstName,
		GuestLastName:  req.GuestLastName,
		GuestPhone:     req.GuestPhone,
		GuestEmail:     req.GuestEmail,
		Status:         domain.ReservationConfirmed,
		StartDate:      checkIn,
		EndDate:        checkOut,
		RoomTypeID:     &rt.ID,
		TotalCost:      total,
		Guests:         req.Guests,
	}
	if req.Hold {
		res.Status = domain.ReservationHold
		expiry := now.Add(s.holdTTL)
		res.ExpirationTime = &expiry
	}

	if err := s.createWithPublicID(ctx, res); err != nil {
		return nil, err
	}
	res.RoomType = rt

	invalid := s.notifier.SendBookingConfirmation(ctx, res, rt, notify.SplitList(req.AdditionalEmails)...)
	s.events.ReservationEvent(EventCreated, res)

	return &Result{Reservation: res, RoomType: rt, InvalidEmails: invalid}, nil
}

// Get loads one reservation, enforcing owner-or-staff access.
func (s *Service) Get(ctx context.Context, actor Actor, publicID string) (*Result, error) {
	res, err := s.load(ctx, actor, publicID)
	if err != nil {
		return nil, err
	}
	rt, err := s.attachRoomType(ctx, res)
	if err != nil {
		return nil, err
	}
	return &Result{Reservation: res, RoomType: rt}, nil
}

// Confirm flips a live Hold to Confirmed. The hold must not have lapsed and
// the room type must still have capacity for the stay, counting every active
// reservation except this one.
func (s *Service) Confirm(ctx context.Context, actor Actor, publicID string) (*Result, error) {
	res, err := s.load(ctx, actor, publicID)
	if err != nil {
		return nil, err
	}
	if !res.IsHold() {
		return nil, ErrNotOnHold
	}

	// The row is left untouched; the lazy sweep cancels lapsed holds.
	if res.HoldExpired(s.clock.Now()) {
		return nil, ErrHoldExpired
	}

	if err := s.recheckCapacity(ctx, res); err != nil {
		return nil, err
	}

	res.Status = domain.ReservationConfirmed
	res.ExpirationTime = nil
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}

	rt, err := s.attachRoomType(ctx, res)
	if err != nil {
		return nil, err
	}

	invalid := s.notifier.SendHoldConfirmed(ctx, res, rt)
	s.events.ReservationEvent(EventConfirmed, res)

	return &Result{Reservation: res, RoomType: rt, InvalidEmails: invalid}, nil
}

// Cancel marks a reservation Cancelled. Cancelling twice is not an error;
// the bool reports whether it was already cancelled.
func (s *Service) Cancel(ctx context.Context, actor Actor, publicID string) (*Result, bool, error) {
	res, err := s.load(ctx, actor, publicID)
	if err != nil {
		return nil, false, err
	}
	if res.Status == domain.ReservationCancelled {
		return &Result{Reservation: res}, true, nil
	}

	res.Status = domain.ReservationCancelled
	res.ExpirationTime = nil
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, false, err
	}
	s.events.ReservationEvent(EventCancelled, res)

	return &Result{Reservation: res}, false, nil
}

// RetryHold reopens a cancelled or lapsed reservation as a fresh Hold with a
// full TTL, provided the room type still has capacity for the stay.
func (s *Service) RetryHold(ctx context.Context, actor Actor, publicID string) (*Result, error) {
	res, err := s.load(ctx, actor, publicID)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.ReservationConfirmed {
		return nil, fmt.Errorf("%w: reservation is already confirmed", ErrValidation)
	}

	if err := s.recheckCapacity(ctx, res); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	expiry := now.Add(s.holdTTL)
	res.Status = domain.ReservationHold
	res.ExpirationTime = &expiry
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}

	rt, err := s.attachRoomType(ctx, res)
	if err != nil {
		return nil, err
	}
	s.events.ReservationEvent(EventRetried, res)

	return &Result{Reservation: res, RoomType: rt}, nil
}

// Modify rewrites the stay dates, room type, guest count and contact
// snapshot, then recomputes the total cost at the current rate. Capacity is
// re-checked against the new window with this reservation excluded, so
// shrinking or shifting a stay never collides with itself.
func (s *Service) Modify(ctx context.Context, actor Actor, publicID string, req ModifyRequest) (*Result, error) {
	res, err := s.load(ctx, actor, publicID)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.ReservationCancelled {
		return nil, fmt.Errorf("%w: cancelled reservations cannot be modified", ErrValidation)
	}

	now := s.clock.Now()
	checkIn, checkOut, err := availability.ParseDates(req.CheckIn, req.CheckOut, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	if req.RoomTypeID != nil {
		res.RoomTypeID = req.RoomTypeID
	}
	rt, err := s.attachRoomType(ctx, res)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown room type", ErrValidation)
		}
		return nil, err
	}
	if req.Guests > rt.MaxGuests {
		return nil, fmt.Errorf("%w: %s sleeps at most %d guests", ErrValidation, rt.Name, rt.MaxGuests)
	}

	res.StartDate = checkIn
	res.EndDate = checkOut
	if err := s.recheckCapacity(ctx, res); err != nil {
		return nil, err
	}

	res.Guests = req.Guests
	res.GuestFirstName = req.GuestFirstName
	res.GuestLastName = req.GuestLastName
	res.GuestPhone = req.GuestPhone
	res.GuestEmail = req.GuestEmail
	_, res.TotalCost = domain.StayCost(checkIn, checkOut, rt.PricePerNight)

	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}

	invalid := s.notifier.SendUpdate(ctx, res, rt, s.accountEmail(ctx, res), req.AdditionalEmails)
	s.events.ReservationEvent(EventUpdated, res)

	return &Result{Reservation: res, RoomType: rt, InvalidEmails: invalid}, nil
}

// Share mails a copy of the confirmation to one extra address.
func (s *Service) Share(ctx context.Context, actor Actor, publicID, email string) error {
	res, err := s.load(ctx, actor, publicID)
	if err != nil {
		return err
	}
	rt, err := s.attachRoomType(ctx, res)
	if err != nil {
		return err
	}
	s.notifier.SendCopy(ctx, res, rt, email)
	return nil
}

// Search looks up reservations by public ID, guest email or guest name, in
// that priority. Staff search the whole ledger; customers only their own.
func (s *Service) Search(ctx context.Context, actor Actor, req SearchRequest) ([]domain.Reservation, error) {
	var scope *int64
	if !actor.Staff {
		customer, err := s.customers.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoCustomerProfile
			}
			return nil, err
		}
		scope = &customer.ID
	}

	switch {
	case strings.TrimSpace(req.PublicID) != "":
		return s.reservations.FindByPublicID(ctx, scope, strings.TrimSpace(req.PublicID))
	case strings.TrimSpace(req.Email) != "":
		return s.reservations.FindByGuestEmail(ctx, scope, strings.TrimSpace(req.Email))
	case strings.TrimSpace(req.FirstName) != "" || strings.TrimSpace(req.LastName) != "":
		return s.reservations.FindByGuestName(ctx, scope, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
	default:
		return nil, fmt.Errorf("%w: provide a reservation number, email or guest name", ErrValidation)
	}
}

// load fetches by public ID and enforces access: staff see everything,
// customers only reservations linked to their own profile.
func (s *Service) load(ctx context.Context, actor Actor, publicID string) (*domain.Reservation, error) {
	res, err := s.reservations.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.Staff {
		return res, nil
	}
	if res.CustomerID == nil {
		return nil, ErrForbidden
	}
	customer, err := s.customers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if *res.CustomerID != customer.ID {
		return nil, ErrForbidden
	}
	return res, nil
}

// recheckCapacity re-runs the availability search for the reservation's own
// window, excluding the reservation itself from the overlap count.
func (s *Service) recheckCapacity(ctx context.Context, res *domain.Reservation) error {
	if res.RoomTypeID == nil {
		return fmt.Errorf("%w: reservation has no room type", ErrValidation)
	}
	options, err := s.checker.Search(ctx, availability.Query{
		CheckIn:              res.StartDate,
		CheckOut:             res.EndDate,
		RoomTypeID:           res.RoomTypeID,
		ExcludeReservationID: res.ID,
	})
	if err != nil {
		return err
	}
	for _, opt := range options {
		if opt.RoomType.ID == *res.RoomTypeID && opt.AvailableCount > 0 {
			return nil
		}
	}
	return ErrNoLongerAvailable
}

func (s *Service) attachRoomType(ctx context.Context, res *domain.Reservation) (*domain.RoomType, error) {
	if res.RoomTypeID == nil {
		return nil, fmt.Errorf("%w: reservation has no room type", ErrValidation)
	}
	rt, err := s.roomTypes.GetByID(ctx, *res.RoomTypeID)
	if err != nil {
		return nil, err
	}
	res.RoomType = rt
	return rt, nil
}

// resolveCustomer decides which customer profile the reservation links to.
// Staff may book on behalf of any existing customer; signed-in customers
// always link their own profile; anonymous guests link nothing.
func (s *Service) resolveCustomer(ctx context.Context, actor Actor, requested *int64) (*domain.Customer, error) {
	if actor.Staff {
		if requested == nil {
			return nil, nil
		}
		customer, err := s.customers.GetByID(ctx, *requested)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown customer", ErrValidation)
			}
			return nil, err
		}
		return customer, nil
	}
	if actor.UserID == 0 {
		return nil, nil
	}
	customer, err := s.customers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}

// prefillGuestContact fills blank guest fields from the linked profile so a
// signed-in customer can book without retyping their own details.
func prefillGuestContact(req *CreateRequest, customer *domain.Customer) {
	if customer == nil {
		return
	}
	if req.GuestPhone == "" {
		req.GuestPhone = customer.PhoneNumber
	}
	if customer.User == nil {
		return
	}
	if req.GuestFirstName == "" {
		req.GuestFirstName = customer.User.FirstName
	}
	if req.GuestLastName == "" {
		req.GuestLastName = customer.User.LastName
	}
	if req.GuestEmail == "" {
		req.GuestEmail = customer.User.Email
	}
}

// accountEmail returns the linked account's login email, or empty for
// anonymous reservations. Failures degrade to the guest snapshot only.
func (s *Service) accountEmail(ctx context.Context, res *domain.Reservation) string {
	if res.CustomerID == nil {
		return ""
	}
	customer, err := s.customers.GetByID(ctx, *res.CustomerID)
	if err != nil || customer.User == nil {
		return ""
	}
	return customer.User.Email
}

// createWithPublicID inserts the reservation, regenerating the public ID on
// the rare unique collision.
func (s *Service) createWithPublicID(ctx context.Context, res *domain.Reservation) error {
	var err error
	for i := 0; i < publicIDAttempts; i++ {
		res.PublicID = s.newPublicID()
		err = s.reservations.Create(ctx, res)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

// newPublicID builds a short guest-facing code like MBL-9F2A1C04.
func (s *Service) newPublicID() string {
	u := uuid.New()
	return s.idPrefix + "-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
