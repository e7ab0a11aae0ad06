package service

import (
	"testing"

	"teebay-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalPrice(t *testing.T) {
	// Four calendar days at 1500 per day.
	total := computeTotalPrice(1500, models.RentPerDay, date(2025, 1, 1), date(2025, 1, 5))
	assert.Equal(t, int64(4*1500), total)

	// Single default day.
	total = computeTotalPrice(1500, models.RentPerDay, date(2025, 1, 1), DefaultEndDate(date(2025, 1, 1)))
	assert.Equal(t, int64(1500), total)

	// Hourly pricing covers the whole span.
	total = computeTotalPrice(200, models.RentPerHour, date(2025, 1, 1), date(2025, 1, 2))
	assert.Equal(t, int64(24*200), total)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-03-10")
	assert.NoError(t, err)
	assert.Equal(t, date(2025, 3, 10), d)

	_, err = parseDate("10/03/2025")
	assert.Error(t, err)

	_, err = parseDate("")
	assert.Error(t, err)
}

func TestCreateRental(t *testing.T) {
	// Requires a store and broker; covered by integration environment.
	t.Skip("Requires mocked store")
}
