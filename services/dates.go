package services

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date in the wire format used by every
// booking endpoint. The result is midnight UTC, so a night count is an
// exact 24h multiple.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDateRange
	}
	return t, nil
}

// Today returns the current calendar day at midnight UTC.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func nightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}
