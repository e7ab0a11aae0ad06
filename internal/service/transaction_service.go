package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"teebay-service/internal/broker"
	"teebay-service/internal/models"
	"teebay-service/internal/store"
	"teebay-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Rejections local to the transaction service
var (
	ErrNotForSale = errors.New("product is not for sale")
	ErrNotForRent = errors.New("product is not for rent")
	ErrOwnProduct = errors.New("cannot transact on your own product")
)

// TransactionService handles purchase and rental business logic
type TransactionService struct {
	store          *store.Store
	resolver       *ProductResolver
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
	aggTimeout     time.Duration
}

// NewTransactionService creates a new transaction service. aggTimeout
// bounds a single history aggregation; zero disables the bound.
func NewTransactionService(
	store *store.Store,
	resolver *ProductResolver,
	eventPublisher *broker.EventPublisher,
	aggTimeout time.Duration,
) *TransactionService {
	return &TransactionService{
		store:          store,
		resolver:       resolver,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
		aggTimeout:     aggTimeout,
	}
}

// CreatePurchaseRequest represents a request to buy a product
type CreatePurchaseRequest struct {
	BuyerID   int64 `json:"buyer_id" binding:"required"`
	ProductID int64 `json:"product_id" binding:"required"`
}

// CreateRentalRequest represents a request to rent a product. Dates are
// calendar dates in 2006-01-02 form.
type CreateRentalRequest struct {
	RenterID  int64  `json:"renter_id" binding:"required"`
	ProductID int64  `json:"product_id" binding:"required"`
	RentUnit  string `json:"rent_unit" binding:"required"`
	RentFrom  string `json:"rent_from" binding:"required"`
	RentTo    string `json:"rent_to"`
}

// CreatePurchase validates and records a buy transaction
func (s *TransactionService) CreatePurchase(ctx context.Context, req *CreatePurchaseRequest) (*models.Purchase, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.CreatePurchase")
	defer span.End()

	product, err := s.resolver.Resolve(ctx, req.ProductID)
	if err != nil {
		util.PurchasesFailedTotal.WithLabelValues("product_lookup").Inc()
		return nil, err
	}

	if !product.ForSale() {
		util.PurchasesFailedTotal.WithLabelValues("not_for_sale").Inc()
		return nil, ErrNotForSale
	}
	if product.SellerID == req.BuyerID {
		util.PurchasesFailedTotal.WithLabelValues("own_product").Inc()
		return nil, ErrOwnProduct
	}

	purchase := &models.Purchase{
		BuyerID:   req.BuyerID,
		SellerID:  product.SellerID,
		ProductID: product.ID,
	}

	if err := s.store.CreatePurchase(ctx, purchase); err != nil {
		util.PurchasesFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	util.PurchasesCreatedTotal.Inc()
	s.logger.Info("Purchase completed",
		zap.Int64("purchase_id", purchase.ID),
		zap.Int64("buyer_id", purchase.BuyerID),
		zap.Int64("product_id", purchase.ProductID))

	event := &models.PurchaseCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePurchaseCompleted,
			Timestamp: time.Now(),
		},
		PurchaseID:   purchase.ID,
		BuyerID:      purchase.BuyerID,
		SellerID:     purchase.SellerID,
		ProductID:    purchase.ProductID,
		ProductTitle: product.Title,
		Price:        *product.PurchasePrice,
	}

	if err := s.eventPublisher.PublishPurchaseCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish PurchaseCompleted event", zap.Error(err))
	}

	return purchase, nil
}

// CreateRental validates the requested period against the product's
// confirmed bookings and records the rental. The overlap pre-check here
// keeps obviously conflicting requests away from the store; the store
// repeats the check transactionally and may still return ErrConflict.
func (s *TransactionService) CreateRental(ctx context.Context, req *CreateRentalRequest) (*models.Rental, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.CreateRental")
	defer span.End()

	unit, err := models.ParseRentUnit(req.RentUnit)
	if err != nil {
		util.RentalsFailedTotal.WithLabelValues("bad_request").Inc()
		return nil, err
	}

	from, err := parseDate(req.RentFrom)
	if err != nil {
		util.RentalsFailedTotal.WithLabelValues("bad_request").Inc()
		return nil, err
	}

	var to time.Time
	if req.RentTo == "" {
		to = DefaultEndDate(from)
	} else {
		if to, err = parseDate(req.RentTo); err != nil {
			util.RentalsFailedTotal.WithLabelValues("bad_request").Inc()
			return nil, err
		}
	}

	if err := ValidateRange(from, to); err != nil {
		util.RentalsFailedTotal.WithLabelValues("invalid_range").Inc()
		return nil, err
	}

	product, err := s.resolver.Resolve(ctx, req.ProductID)
	if err != nil {
		util.RentalsFailedTotal.WithLabelValues("product_lookup").Inc()
		return nil, err
	}

	if !product.ForRent() {
		util.RentalsFailedTotal.WithLabelValues("not_for_rent").Inc()
		return nil, ErrNotForRent
	}
	if product.SellerID == req.RenterID {
		util.RentalsFailedTotal.WithLabelValues("own_product").Inc()
		return nil, ErrOwnProduct
	}

	existing, err := s.store.ListRentalsByProduct(ctx, product.ID)
	if err != nil {
		util.RentalsFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to list existing rentals: %w", err)
	}

	if HasOverlap(from, to, existing) {
		util.RentalConflictsTotal.Inc()
		util.RentalsFailedTotal.WithLabelValues("conflict").Inc()
		return nil, ErrDateConflict
	}

	rental := &models.Rental{
		RenterID:   req.RenterID,
		SellerID:   product.SellerID,
		ProductID:  product.ID,
		RentFrom:   from,
		RentTo:     to,
		RentUnit:   unit,
		TotalPrice: computeTotalPrice(*product.RentPrice, unit, from, to),
	}

	if err := s.store.CreateRental(ctx, rental); err != nil {
		if errors.Is(err, store.ErrConflict) {
			util.RentalConflictsTotal.Inc()
			util.RentalsFailedTotal.WithLabelValues("conflict").Inc()
			return nil, ErrDateConflict
		}
		util.RentalsFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create rental: %w", err)
	}

	util.RentalsCreatedTotal.Inc()
	s.logger.Info("Rental booked",
		zap.Int64("rental_id", rental.ID),
		zap.Int64("renter_id", rental.RenterID),
		zap.Int64("product_id", rental.ProductID),
		zap.Time("rent_from", rental.RentFrom),
		zap.Time("rent_to", rental.RentTo))

	event := &models.RentalBookedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeRentalBooked,
			Timestamp: time.Now(),
		},
		RentalID:     rental.ID,
		RenterID:     rental.RenterID,
		SellerID:     rental.SellerID,
		ProductID:    rental.ProductID,
		ProductTitle: product.Title,
		RentFrom:     rental.RentFrom,
		RentTo:       rental.RentTo,
		TotalPrice:   rental.TotalPrice,
	}

	if err := s.eventPublisher.PublishRentalBooked(ctx, event); err != nil {
		s.logger.Error("Failed to publish RentalBooked event", zap.Error(err))
	}

	return rental, nil
}

// History fetches a snapshot of all purchase and rental records and
// aggregates them into the per-user bought/sold/borrowed/lent views
func (s *TransactionService) History(ctx context.Context, userID int64) (*History, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.History")
	defer span.End()

	if s.aggTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.aggTimeout)
		defer cancel()
	}

	purchases, err := s.store.ListPurchases(ctx)
	if err != nil {
		util.AggregationsFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	rentals, err := s.store.ListRentals(ctx)
	if err != nil {
		util.AggregationsFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}

	return Aggregate(ctx, userID, purchases, rentals, s.resolver.Resolve)
}

// BookedDates lists the periods already reserved for a product, for
// pre-blocking dates in a rental form
func (s *TransactionService) BookedDates(ctx context.Context, productID int64) ([]DateRange, error) {
	rentals, err := s.store.ListRentalsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	return BookedDates(rentals), nil
}

// ListPurchases returns all purchase records
func (s *TransactionService) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return s.store.ListPurchases(ctx)
}

// ListRentals returns all rental records
func (s *TransactionService) ListRentals(ctx context.Context) ([]models.Rental, error) {
	return s.store.ListRentals(ctx)
}

// computeTotalPrice prices a rental period at the product's per-unit rent
// price. Daily rentals are priced per calendar day in [from, to); hourly
// rentals price the full span, rounded up to whole hours.
func computeTotalPrice(rentPrice int64, unit models.RentUnit, from, to time.Time) int64 {
	span := NormalizeDate(to).Sub(NormalizeDate(from))
	switch unit {
	case models.RentPerHour:
		return rentPrice * int64(math.Ceil(span.Hours()))
	default:
		return rentPrice * int64(span.Hours()/24)
	}
}

// parseDate parses a calendar date in 2006-01-02 form
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
