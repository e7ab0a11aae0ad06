package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("ELECTRONICS")
	assert.NoError(t, err)
	assert.Equal(t, CategoryElectronics, c)

	_, err = ParseCategory("VEHICLES")
	assert.Error(t, err)

	_, err = ParseCategory("electronics")
	assert.Error(t, err)
}

func TestParseRentUnit(t *testing.T) {
	u, err := ParseRentUnit("PER_DAY")
	assert.NoError(t, err)
	assert.Equal(t, RentPerDay, u)

	u, err = ParseRentUnit("PER_HOUR")
	assert.NoError(t, err)
	assert.Equal(t, RentPerHour, u)

	_, err = ParseRentUnit("PER_WEEK")
	assert.Error(t, err)
}

func TestProductForSaleForRent(t *testing.T) {
	price := int64(1000)

	p := &Product{PurchasePrice: &price}
	assert.True(t, p.ForSale())
	assert.False(t, p.ForRent())

	p = &Product{RentPrice: &price}
	assert.False(t, p.ForSale())
	assert.True(t, p.ForRent())
}
