package store

import (
	"context"
	"fmt"

	"teebay-service/internal/models"
)

// ListPurchases retrieves all purchase records, oldest first
func (s *Store) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.SelectContext(ctx, &purchases,
		"SELECT * FROM purchases ORDER BY purchased_at, id")
	return purchases, err
}

// CreatePurchase records a completed buy transaction
func (s *Store) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	query := `
		INSERT INTO purchases (buyer_id, seller_id, product_id)
		VALUES ($1, $2, $3)
		RETURNING id, purchased_at`

	return s.db.GetContext(ctx, purchase, query,
		purchase.BuyerID, purchase.SellerID, purchase.ProductID)
}

// ListRentals retrieves all rental records, oldest first
func (s *Store) ListRentals(ctx context.Context) ([]models.Rental, error) {
	var rentals []models.Rental
	err := s.db.SelectContext(ctx, &rentals,
		"SELECT * FROM rentals ORDER BY created_at, id")
	return rentals, err
}

// ListRentalsByProduct retrieves confirmed rentals for one product, ordered
// by period start
func (s *Store) ListRentalsByProduct(ctx context.Context, productID int64) ([]models.Rental, error) {
	var rentals []models.Rental
	err := s.db.SelectContext(ctx, &rentals,
		"SELECT * FROM rentals WHERE product_id = $1 ORDER BY rent_from", productID)
	return rentals, err
}

// CreateRental records a rental after re-checking the period against
// existing bookings inside a transaction (row lock on the product keeps two
// concurrent bookings from interleaving). The availability pre-check in the
// service layer is advisory; this check is the one that counts.
func (s *Store) CreateRental(ctx context.Context, rental *models.Rental) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var productID int64
	err = tx.GetContext(ctx, &productID,
		"SELECT id FROM products WHERE id = $1 FOR UPDATE", rental.ProductID)
	if err != nil {
		return fmt.Errorf("failed to lock product %d: %w", rental.ProductID, err)
	}

	// Half-open periods [rent_from, rent_to) overlap iff each starts before
	// the other ends.
	var overlaps bool
	err = tx.GetContext(ctx, &overlaps, `
		SELECT EXISTS(
			SELECT 1 FROM rentals
			WHERE product_id = $1 AND rent_from < $3 AND rent_to > $2
		)`,
		rental.ProductID, rental.RentFrom, rental.RentTo)
	if err != nil {
		return fmt.Errorf("failed to check booking overlap: %w", err)
	}
	if overlaps {
		return ErrConflict
	}

	query := `
		INSERT INTO rentals (renter_id, seller_id, product_id, rent_from, rent_to, rent_unit, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err = tx.GetContext(ctx, rental, query,
		rental.RenterID, rental.SellerID, rental.ProductID,
		rental.RentFrom, rental.RentTo, rental.RentUnit, rental.TotalPrice)
	if err != nil {
		return err
	}

	return tx.Commit()
}
