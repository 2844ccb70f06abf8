package availability

import "time"

const dateLayout = "2006-01-02"

// DateOnly truncates a timestamp to midnight UTC. Stay boundaries are
// calendar dates, never clock times.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDates parses YYYY-MM-DD check-in/check-out strings and validates
// their order against today (the caller's local date). A check-in of today
// is allowed; check-out must be strictly after check-in.
func ParseDates(checkInStr, checkOutStr string, today time.Time) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(dateLayout, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	checkOut, err := time.Parse(dateLayout, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}

	if checkIn.Before(DateOnly(today)) {
		return time.Time{}, time.Time{}, ErrPastCheckIn
	}
	if !checkIn.Before(checkOut) {
		return time.Time{}, time.Time{}, ErrInvertedRange
	}

	return checkIn, checkOut, nil
}
