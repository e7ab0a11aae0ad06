package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Category is a closed set of product categories. Raw strings from the API
// are validated with ParseCategory before they reach the services.
type Category string

const (
	CategoryElectronics    Category = "ELECTRONICS"
	CategoryFurniture      Category = "FURNITURE"
	CategoryHomeAppliances Category = "HOME_APPLIANCES"
	CategorySportingGoods  Category = "SPORTING_GOODS"
	CategoryOutdoor        Category = "OUTDOOR"
	CategoryToys           Category = "TOYS"
)

var validCategories = map[Category]bool{
	CategoryElectronics:    true,
	CategoryFurniture:      true,
	CategoryHomeAppliances: true,
	CategorySportingGoods:  true,
	CategoryOutdoor:        true,
	CategoryToys:           true,
}

// ParseCategory validates a raw category string
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !validCategories[c] {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// RentUnit is the granularity a product is rented at
type RentUnit string

const (
	RentPerHour RentUnit = "PER_HOUR"
	RentPerDay  RentUnit = "PER_DAY"
)

// ParseRentUnit validates a raw rent unit string
func ParseRentUnit(s string) (RentUnit, error) {
	switch u := RentUnit(s); u {
	case RentPerHour, RentPerDay:
		return u, nil
	default:
		return "", fmt.Errorf("unknown rent unit: %q", s)
	}
}

// Product represents a marketplace listing. Prices are in minor currency
// units; a nil price means the product is not offered for sale or for rent
// respectively.
type Product struct {
	ID            int64          `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Description   string         `db:"description" json:"description"`
	Categories    pq.StringArray `db:"categories" json:"categories"`
	PurchasePrice *int64         `db:"purchase_price" json:"purchase_price,omitempty"`
	RentPrice     *int64         `db:"rent_price" json:"rent_price,omitempty"`
	RentUnit      RentUnit       `db:"rent_unit" json:"rent_unit"`
	SellerID      int64          `db:"seller_id" json:"seller_id"`
	PostedAt      time.Time      `db:"posted_at" json:"posted_at"`
}

// ForSale reports whether the product can be bought
func (p *Product) ForSale() bool { return p.PurchasePrice != nil }

// ForRent reports whether the product can be rented
func (p *Product) ForRent() bool { return p.RentPrice != nil }

// Purchase represents a completed buy transaction. Created by the store on
// confirmation, read-only afterwards.
type Purchase struct {
	ID          int64     `db:"id" json:"id"`
	BuyerID     int64     `db:"buyer_id" json:"buyer_id"`
	SellerID    int64     `db:"seller_id" json:"seller_id"`
	ProductID   int64     `db:"product_id" json:"product_id"`
	PurchasedAt time.Time `db:"purchased_at" json:"purchased_at"`
}

// Rental represents a confirmed rental of a product over the calendar-date
// period [RentFrom, RentTo). RentTo is strictly after RentFrom.
type Rental struct {
	ID         int64     `db:"id" json:"id"`
	RenterID   int64     `db:"renter_id" json:"renter_id"`
	SellerID   int64     `db:"seller_id" json:"seller_id"`
	ProductID  int64     `db:"product_id" json:"product_id"`
	RentFrom   time.Time `db:"rent_from" json:"rent_from"`
	RentTo     time.Time `db:"rent_to" json:"rent_to"`
	RentUnit   RentUnit  `db:"rent_unit" json:"rent_unit"`
	TotalPrice int64     `db:"total_price" json:"total_price"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
