package service

import (
	"context"
	"fmt"
	"time"

	"teebay-service/internal/models"
	"teebay-service/internal/util"
)

// ResolveProductFunc looks up a full product record from a bare product id.
// Implementations may hit the network; failures abort the aggregation.
type ResolveProductFunc func(ctx context.Context, productID int64) (*models.Product, error)

// ResolutionError reports a failed product lookup during aggregation
type ResolutionError struct {
	ProductID int64
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve product %d: %v", e.ProductID, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// RentalEntry pairs a resolved product with its originating rental record.
// The same product appears once per qualifying rental, so separate rental
// periods stay visible in the history.
type RentalEntry struct {
	Product *models.Product `json:"product"`
	Rental  models.Rental   `json:"rental"`
}

// History is the per-user view over all purchase and rental records:
// products the user bought and sold (each product at most once), and
// rentals the user borrowed and lent (one entry per rental record). The raw
// input records are carried along for caller bookkeeping.
type History struct {
	Bought   []*models.Product `json:"bought"`
	Sold     []*models.Product `json:"sold"`
	Borrowed []RentalEntry     `json:"borrowed"`
	Lent     []RentalEntry     `json:"lent"`

	Purchases []models.Purchase `json:"purchases"`
	Rentals   []models.Rental   `json:"rentals"`
}

// Aggregate partitions the given purchase and rental snapshots into the
// four per-user views, resolving product ids through resolve.
//
// Bought and Sold are de-duplicated by product id with first occurrence
// winning, each with its own seen-set. Borrowed and Lent keep one entry per
// qualifying rental record. Output order follows input order, so identical
// inputs and a deterministic resolver yield identical results.
//
// Any resolution failure aborts the whole call with a ResolutionError; no
// partial history is ever returned. Cancelling ctx stops further
// resolutions and rejects the call the same way.
func Aggregate(ctx context.Context, userID int64, purchases []models.Purchase, rentals []models.Rental, resolve ResolveProductFunc) (*History, error) {
	ctx, span := util.StartSpan(ctx, "Aggregate")
	defer span.End()

	util.AggregationsTotal.Inc()
	start := time.Now()
	defer func() {
		util.AggregationLatency.Observe(time.Since(start).Seconds())
	}()

	// Per-call memo so a product referenced by several records is resolved
	// once. Owned by this call only; no state survives it.
	resolved := make(map[int64]*models.Product)
	lookup := func(productID int64) (*models.Product, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p, ok := resolved[productID]; ok {
			return p, nil
		}
		p, err := resolve(ctx, productID)
		if err != nil {
			return nil, &ResolutionError{ProductID: productID, Err: err}
		}
		resolved[productID] = p
		return p, nil
	}

	h := &History{
		Bought:    []*models.Product{},
		Sold:      []*models.Product{},
		Borrowed:  []RentalEntry{},
		Lent:      []RentalEntry{},
		Purchases: purchases,
		Rentals:   rentals,
	}

	seenBought := make(map[int64]bool)
	seenSold := make(map[int64]bool)

	for _, purchase := range purchases {
		if purchase.BuyerID == userID && !seenBought[purchase.ProductID] {
			product, err := lookup(purchase.ProductID)
			if err != nil {
				util.AggregationsFailedTotal.WithLabelValues("resolution").Inc()
				return nil, err
			}
			seenBought[purchase.ProductID] = true
			h.Bought = append(h.Bought, product)
		}
		if purchase.SellerID == userID && !seenSold[purchase.ProductID] {
			product, err := lookup(purchase.ProductID)
			if err != nil {
				util.AggregationsFailedTotal.WithLabelValues("resolution").Inc()
				return nil, err
			}
			seenSold[purchase.ProductID] = true
			h.Sold = append(h.Sold, product)
		}
	}

	for _, rental := range rentals {
		if rental.RenterID != userID && rental.SellerID != userID {
			continue
		}
		product, err := lookup(rental.ProductID)
		if err != nil {
			util.AggregationsFailedTotal.WithLabelValues("resolution").Inc()
			return nil, err
		}
		if rental.RenterID == userID {
			h.Borrowed = append(h.Borrowed, RentalEntry{Product: product, Rental: rental})
		}
		if rental.SellerID == userID {
			h.Lent = append(h.Lent, RentalEntry{Product: product, Rental: rental})
		}
	}

	return h, nil
}
