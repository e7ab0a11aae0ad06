package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"teebay-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Sentinel errors surfaced to the service layer. Callers match them with
// errors.Is and translate them to API responses.
var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a rental overlaps an existing booking
	ErrConflict = errors.New("rental period conflicts with an existing booking")
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products, newest first
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY posted_at DESC")
	return products, err
}

// GetProductsBySeller retrieves products listed by a seller
func (s *Store) GetProductsBySeller(ctx context.Context, sellerID int64) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE seller_id = $1 ORDER BY posted_at DESC", sellerID)
	return products, err
}

// CreateProduct inserts a new product listing
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (title, description, categories, purchase_price, rent_price, rent_unit, seller_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, posted_at`

	return s.db.GetContext(ctx, product, query,
		product.Title, product.Description, product.Categories,
		product.PurchasePrice, product.RentPrice, product.RentUnit, product.SellerID)
}

// UpdateProduct updates a product listing
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET title = $1, description = $2, categories = $3,
		    purchase_price = $4, rent_price = $5, rent_unit = $6
		WHERE id = $7`,
		product.Title, product.Description, product.Categories,
		product.PurchasePrice, product.RentPrice, product.RentUnit, product.ID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}
	return nil
}
