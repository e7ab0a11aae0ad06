package service

import (
	"errors"
	"time"

	"teebay-service/internal/models"
)

// ErrInvalidRange is returned when a rental period does not end strictly
// after it starts.
var ErrInvalidRange = errors.New("rental end date must be after start date")

// ErrDateConflict is returned when a rental period collides with an
// existing booking.
var ErrDateConflict = errors.New("rental period is already booked")

// DateRange is a half-open calendar-date interval [From, To)
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NormalizeDate truncates a timestamp to its UTC calendar date
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsDateBooked reports whether candidate falls inside the half-open period
// [RentFrom, RentTo) of any of the given rentals. The rentals must all
// belong to the same product; the caller is responsible for filtering.
func IsDateBooked(candidate time.Time, rentals []models.Rental) bool {
	d := NormalizeDate(candidate)
	for _, r := range rentals {
		from := NormalizeDate(r.RentFrom)
		to := NormalizeDate(r.RentTo)
		if !d.Before(from) && d.Before(to) {
			return true
		}
	}
	return false
}

// HasOverlap reports whether the proposed period [from, to) overlaps any of
// the given rentals. Two half-open periods overlap iff each starts before
// the other ends.
func HasOverlap(from, to time.Time, rentals []models.Rental) bool {
	f, t := NormalizeDate(from), NormalizeDate(to)
	for _, r := range rentals {
		if NormalizeDate(r.RentFrom).Before(t) && NormalizeDate(r.RentTo).After(f) {
			return true
		}
	}
	return false
}

// DefaultEndDate returns the pre-populated end date for a rental form once
// a start date is chosen: the following calendar day.
func DefaultEndDate(start time.Time) time.Time {
	return NormalizeDate(start).AddDate(0, 0, 1)
}

// ValidateRange fails with ErrInvalidRange unless end is strictly after
// start. Equal dates are rejected.
func ValidateRange(start, end time.Time) error {
	if !NormalizeDate(end).After(NormalizeDate(start)) {
		return ErrInvalidRange
	}
	return nil
}

// BookedDates derives the set of periods already reserved for a product
// from its rental records. The result is ephemeral and recomputed on every
// call, never persisted.
func BookedDates(rentals []models.Rental) []DateRange {
	ranges := make([]DateRange, 0, len(rentals))
	for _, r := range rentals {
		ranges = append(ranges, DateRange{
			From: NormalizeDate(r.RentFrom),
			To:   NormalizeDate(r.RentTo),
		})
	}
	return ranges
}
