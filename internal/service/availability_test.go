package service

import (
	"testing"
	"time"

	"teebay-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsDateBooked(t *testing.T) {
	rentals := []models.Rental{
		{ProductID: 2, RentFrom: date(2025, 1, 1), RentTo: date(2025, 1, 5)},
	}

	assert.True(t, IsDateBooked(date(2025, 1, 3), rentals))
	assert.False(t, IsDateBooked(date(2025, 1, 6), rentals))
}

func TestIsDateBookedHalfOpenRange(t *testing.T) {
	rentals := []models.Rental{
		{RentFrom: date(2025, 3, 10), RentTo: date(2025, 3, 14)},
		{RentFrom: date(2025, 3, 20), RentTo: date(2025, 3, 22)},
	}

	// Every date inside [start, end) is blocked, not just the start date.
	for d := date(2025, 3, 10); d.Before(date(2025, 3, 14)); d = d.AddDate(0, 0, 1) {
		assert.True(t, IsDateBooked(d, rentals), "expected %s to be booked", d.Format("2006-01-02"))
	}

	assert.False(t, IsDateBooked(date(2025, 3, 9), rentals))
	assert.False(t, IsDateBooked(date(2025, 3, 14), rentals)) // end date excluded
	assert.True(t, IsDateBooked(date(2025, 3, 20), rentals))
	assert.False(t, IsDateBooked(date(2025, 3, 22), rentals))
}

func TestIsDateBookedNormalizesTimestamps(t *testing.T) {
	rentals := []models.Rental{
		{RentFrom: date(2025, 5, 1), RentTo: date(2025, 5, 3)},
	}

	noon := time.Date(2025, 5, 2, 12, 30, 0, 0, time.UTC)
	assert.True(t, IsDateBooked(noon, rentals))
}

func TestIsDateBookedNoRentals(t *testing.T) {
	assert.False(t, IsDateBooked(date(2025, 1, 1), nil))
}

func TestHasOverlap(t *testing.T) {
	rentals := []models.Rental{
		{RentFrom: date(2025, 6, 10), RentTo: date(2025, 6, 15)},
	}

	assert.True(t, HasOverlap(date(2025, 6, 12), date(2025, 6, 20), rentals))
	assert.True(t, HasOverlap(date(2025, 6, 5), date(2025, 6, 11), rentals))
	assert.True(t, HasOverlap(date(2025, 6, 5), date(2025, 6, 20), rentals))

	// Half-open semantics: back-to-back periods do not overlap.
	assert.False(t, HasOverlap(date(2025, 6, 15), date(2025, 6, 18), rentals))
	assert.False(t, HasOverlap(date(2025, 6, 5), date(2025, 6, 10), rentals))
}

func TestDefaultEndDate(t *testing.T) {
	assert.Equal(t, date(2025, 3, 11), DefaultEndDate(date(2025, 3, 10)))
	// Rolls over month and year boundaries.
	assert.Equal(t, date(2026, 1, 1), DefaultEndDate(date(2025, 12, 31)))
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange(date(2025, 3, 10), date(2025, 3, 11)))

	// Equal dates are not allowed.
	assert.ErrorIs(t, ValidateRange(date(2025, 3, 10), date(2025, 3, 10)), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange(date(2025, 3, 10), date(2025, 3, 9)), ErrInvalidRange)
}

func TestBookedDates(t *testing.T) {
	rentals := []models.Rental{
		{RentFrom: date(2025, 1, 1), RentTo: date(2025, 1, 5)},
		{RentFrom: date(2025, 2, 1), RentTo: date(2025, 2, 2)},
	}

	ranges := BookedDates(rentals)

	assert.Equal(t, []DateRange{
		{From: date(2025, 1, 1), To: date(2025, 1, 5)},
		{From: date(2025, 2, 1), To: date(2025, 2, 2)},
	}, ranges)

	assert.Empty(t, BookedDates(nil))
}
