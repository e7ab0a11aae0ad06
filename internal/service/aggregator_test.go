package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"teebay-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapResolver resolves products from an in-memory catalog and counts calls
func mapResolver(catalog map[int64]*models.Product) (ResolveProductFunc, *int) {
	calls := 0
	return func(_ context.Context, productID int64) (*models.Product, error) {
		calls++
		p, ok := catalog[productID]
		if !ok {
			return nil, fmt.Errorf("product not found: %d", productID)
		}
		return p, nil
	}, &calls
}

func catalogOf(ids ...int64) map[int64]*models.Product {
	catalog := make(map[int64]*models.Product)
	for _, id := range ids {
		catalog[id] = &models.Product{ID: id, Title: fmt.Sprintf("product-%d", id)}
	}
	return catalog
}

func TestAggregateDeduplicatesPurchases(t *testing.T) {
	// User 1 bought product 1 twice; it shows up under bought exactly once.
	purchases := []models.Purchase{
		{ID: 1, BuyerID: 1, SellerID: 2, ProductID: 1},
		{ID: 2, BuyerID: 1, SellerID: 2, ProductID: 1},
	}

	resolve, _ := mapResolver(catalogOf(1))
	h, err := Aggregate(context.Background(), 1, purchases, nil, resolve)

	require.NoError(t, err)
	require.Len(t, h.Bought, 1)
	assert.Equal(t, int64(1), h.Bought[0].ID)
	assert.Empty(t, h.Sold)
}

func TestAggregateSeparatesSeenSets(t *testing.T) {
	// Buying back a product you previously sold: the bought and sold views
	// track seen products independently.
	purchases := []models.Purchase{
		{ID: 1, BuyerID: 2, SellerID: 1, ProductID: 5},
		{ID: 2, BuyerID: 1, SellerID: 2, ProductID: 5},
	}

	resolve, calls := mapResolver(catalogOf(5))
	h, err := Aggregate(context.Background(), 1, purchases, nil, resolve)

	require.NoError(t, err)
	require.Len(t, h.Sold, 1)
	require.Len(t, h.Bought, 1)
	assert.Equal(t, int64(5), h.Sold[0].ID)
	assert.Equal(t, int64(5), h.Bought[0].ID)

	// Memoized per call: one lookup despite two qualifying records.
	assert.Equal(t, 1, *calls)
}

func TestAggregateKeepsRepeatedRentals(t *testing.T) {
	// Two separate rental periods of the same product by the same user are
	// two distinct entries, unlike purchases.
	rentals := []models.Rental{
		{ID: 1, RenterID: 2, SellerID: 1, ProductID: 3, RentFrom: date(2025, 1, 1), RentTo: date(2025, 1, 3)},
		{ID: 2, RenterID: 2, SellerID: 1, ProductID: 3, RentFrom: date(2025, 2, 1), RentTo: date(2025, 2, 3)},
	}

	resolve, _ := mapResolver(catalogOf(3))
	h, err := Aggregate(context.Background(), 2, nil, rentals, resolve)

	require.NoError(t, err)
	require.Len(t, h.Borrowed, 2)
	assert.Equal(t, int64(3), h.Borrowed[0].Product.ID)
	assert.Equal(t, int64(3), h.Borrowed[1].Product.ID)
	assert.Equal(t, int64(1), h.Borrowed[0].Rental.ID)
	assert.Equal(t, int64(2), h.Borrowed[1].Rental.ID)
	assert.Empty(t, h.Lent)
}

func TestAggregateLentView(t *testing.T) {
	rentals := []models.Rental{
		{ID: 1, RenterID: 2, SellerID: 1, ProductID: 3},
		{ID: 2, RenterID: 3, SellerID: 1, ProductID: 4},
	}

	resolve, _ := mapResolver(catalogOf(3, 4))
	h, err := Aggregate(context.Background(), 1, nil, rentals, resolve)

	require.NoError(t, err)
	require.Len(t, h.Lent, 2)
	assert.Equal(t, int64(3), h.Lent[0].Product.ID)
	assert.Equal(t, int64(4), h.Lent[1].Product.ID)
	assert.Empty(t, h.Borrowed)
}

func TestAggregateOutputFollowsInputOrder(t *testing.T) {
	purchases := []models.Purchase{
		{ID: 1, BuyerID: 1, SellerID: 9, ProductID: 30},
		{ID: 2, BuyerID: 1, SellerID: 9, ProductID: 10},
		{ID: 3, BuyerID: 1, SellerID: 9, ProductID: 20},
	}

	resolve, _ := mapResolver(catalogOf(10, 20, 30))
	h, err := Aggregate(context.Background(), 1, purchases, nil, resolve)

	require.NoError(t, err)
	require.Len(t, h.Bought, 3)
	assert.Equal(t, int64(30), h.Bought[0].ID)
	assert.Equal(t, int64(10), h.Bought[1].ID)
	assert.Equal(t, int64(20), h.Bought[2].ID)
}

func TestAggregateIdempotent(t *testing.T) {
	purchases := []models.Purchase{
		{ID: 1, BuyerID: 1, SellerID: 2, ProductID: 1},
		{ID: 2, BuyerID: 2, SellerID: 1, ProductID: 2},
	}
	rentals := []models.Rental{
		{ID: 1, RenterID: 1, SellerID: 2, ProductID: 2},
		{ID: 2, RenterID: 2, SellerID: 1, ProductID: 1},
	}

	catalog := catalogOf(1, 2)
	resolveA, _ := mapResolver(catalog)
	resolveB, _ := mapResolver(catalog)

	first, err := Aggregate(context.Background(), 1, purchases, rentals, resolveA)
	require.NoError(t, err)
	second, err := Aggregate(context.Background(), 1, purchases, rentals, resolveB)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregateResolutionFailureAbortsCall(t *testing.T) {
	// Resolver fails on the third record's product: no partial views.
	purchases := []models.Purchase{
		{ID: 1, BuyerID: 1, SellerID: 2, ProductID: 1},
		{ID: 2, BuyerID: 1, SellerID: 2, ProductID: 2},
		{ID: 3, BuyerID: 1, SellerID: 2, ProductID: 99},
		{ID: 4, BuyerID: 1, SellerID: 2, ProductID: 3},
		{ID: 5, BuyerID: 1, SellerID: 2, ProductID: 4},
	}

	resolve, _ := mapResolver(catalogOf(1, 2, 3, 4))
	h, err := Aggregate(context.Background(), 1, purchases, nil, resolve)

	require.Error(t, err)
	assert.Nil(t, h)

	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, int64(99), resErr.ProductID)
}

func TestAggregateCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	purchases := []models.Purchase{
		{ID: 1, BuyerID: 1, SellerID: 2, ProductID: 1},
	}

	resolve, calls := mapResolver(catalogOf(1))
	h, err := Aggregate(ctx, 1, purchases, nil, resolve)

	require.Error(t, err)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, *calls)
}

func TestAggregateCarriesRawInputs(t *testing.T) {
	purchases := []models.Purchase{{ID: 1, BuyerID: 9, SellerID: 8, ProductID: 1}}
	rentals := []models.Rental{{ID: 1, RenterID: 9, SellerID: 8, ProductID: 1}}

	// User 1 has no transactions; views are empty but the snapshot is kept.
	resolve, calls := mapResolver(catalogOf(1))
	h, err := Aggregate(context.Background(), 1, purchases, rentals, resolve)

	require.NoError(t, err)
	assert.Empty(t, h.Bought)
	assert.Empty(t, h.Sold)
	assert.Empty(t, h.Borrowed)
	assert.Empty(t, h.Lent)
	assert.Equal(t, purchases, h.Purchases)
	assert.Equal(t, rentals, h.Rentals)
	assert.Equal(t, 0, *calls)
}
