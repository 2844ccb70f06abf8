package reservation

import "errors"

var (
	ErrValidation        = errors.New("invalid reservation data")
	ErrNotFound          = errors.New("reservation not found")
	ErrForbidden         = errors.New("you do not have access to this reservation")
	ErrNotOnHold         = errors.New("reservation is not on hold")
	ErrHoldExpired       = errors.New("this hold has expired")
	ErrNoLongerAvailable = errors.New("the room type is no longer available for these dates")
	ErrNoCustomerProfile = errors.New("no customer profile for this account")
)
