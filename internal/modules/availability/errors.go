package availability

import "errors"

var (
	ErrInvalidDateFormat = errors.New("invalid dates provided")
	ErrPastCheckIn       = errors.New("check-in date cannot be in the past")
	ErrInvertedRange     = errors.New("check-out date must be after check-in date")
)
