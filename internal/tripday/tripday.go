// Package tripday converts between absolute calendar dates and trip-relative
// day indices (day 1 = trip start).
//
// All arithmetic works on the calendar triple (year, month, day) of each
// input, rebuilt at midnight UTC. The wall-clock time, timezone, and DST
// offset of the inputs therefore never shift a whole-day difference — a date
// entered just before midnight in the user's zone lands on the same trip day
// as one entered just after.
package tripday

import (
	"fmt"
	"time"

	"github.com/tripledger/api/internal/domain"
)

const day = 24 * time.Hour

// civil reduces t to its calendar triple at midnight UTC.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day calendar difference b − a.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)) / day)
}

// DayNumber returns the 1-based trip day that date falls on for a trip
// starting at tripStart. Dates before the trip start clamp to day 1 rather
// than going to zero or negative.
func DayNumber(tripStart, date time.Time) int {
	n := DaysBetween(tripStart, date) + 1
	if n < 1 {
		return 1
	}
	return n
}

// Date returns the calendar date of the given 1-based day-number for a trip
// starting at tripStart. Month and year rollover is left to the calendar —
// day 35 of a trip starting June 1 is July 5.
func Date(tripStart time.Time, dayNumber int) time.Time {
	s := civil(tripStart)
	return time.Date(s.Year(), s.Month(), s.Day()+dayNumber-1, 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights between check-in and check-out.
// Returns domain.ErrInvalidRange when checkOut is not after checkIn.
func Nights(checkIn, checkOut time.Time) (int, error) {
	n := DaysBetween(checkIn, checkOut)
	if n <= 0 {
		return 0, fmt.Errorf("tripday.Nights: %w", domain.ErrInvalidRange)
	}
	return n, nil
}
