package models

import "time"

// Event types
const (
	EventTypePurchaseCompleted = "PURCHASE_COMPLETED"
	EventTypeRentalBooked      = "RENTAL_BOOKED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// PurchaseCompletedEvent published when a buy transaction completes
type PurchaseCompletedEvent struct {
	BaseEvent
	PurchaseID   int64  `json:"purchase_id"`
	BuyerID      int64  `json:"buyer_id"`
	SellerID     int64  `json:"seller_id"`
	ProductID    int64  `json:"product_id"`
	ProductTitle string `json:"product_title"`
	Price        int64  `json:"price"`
}

// RentalBookedEvent published when a rental is confirmed
type RentalBookedEvent struct {
	BaseEvent
	RentalID     int64     `json:"rental_id"`
	RenterID     int64     `json:"renter_id"`
	SellerID     int64     `json:"seller_id"`
	ProductID    int64     `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	RentFrom     time.Time `json:"rent_from"`
	RentTo       time.Time `json:"rent_to"`
	TotalPrice   int64     `json:"total_price"`
}
