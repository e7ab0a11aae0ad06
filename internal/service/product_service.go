package service

import (
	"context"
	"fmt"

	"teebay-service/internal/models"
	"teebay-service/internal/store"
	"teebay-service/internal/util"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ProductService handles product listing business logic
type ProductService struct {
	store    *store.Store
	resolver *ProductResolver
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store *store.Store, resolver *ProductResolver) *ProductService {
	return &ProductService{
		store:    store,
		resolver: resolver,
		logger:   util.GetLogger(),
	}
}

// CreateProductRequest represents a request to list a product. Prices are
// minor currency units; omit a price to mark the product not for sale or
// not for rent.
type CreateProductRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Categories    []string `json:"categories" binding:"required,min=1"`
	PurchasePrice *int64   `json:"purchase_price"`
	RentPrice     *int64   `json:"rent_price"`
	RentUnit      string   `json:"rent_unit"`
	SellerID      int64    `json:"seller_id" binding:"required"`
}

// CreateProduct validates and persists a new listing. Category and rent
// unit strings are checked here, at the boundary, so the core only ever
// sees canonical values.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.CreateProduct")
	defer span.End()

	categories, err := parseCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	unit := models.RentPerDay
	if req.RentUnit != "" {
		if unit, err = models.ParseRentUnit(req.RentUnit); err != nil {
			return nil, err
		}
	}
	if req.RentPrice == nil && req.PurchasePrice == nil {
		return nil, fmt.Errorf("product must be for sale, for rent, or both")
	}

	product := &models.Product{
		Title:         req.Title,
		Description:   req.Description,
		Categories:    categories,
		PurchasePrice: req.PurchasePrice,
		RentPrice:     req.RentPrice,
		RentUnit:      unit,
		SellerID:      req.SellerID,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product listed",
		zap.Int64("product_id", product.ID),
		zap.Int64("seller_id", product.SellerID))

	return product, nil
}

// UpdateProductRequest carries the updatable listing fields. Absent fields
// keep their current value.
type UpdateProductRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Categories    []string `json:"categories"`
	PurchasePrice *int64   `json:"purchase_price"`
	RentPrice     *int64   `json:"rent_price"`
	RentUnit      *string  `json:"rent_unit"`
}

// UpdateProduct applies a partial update and invalidates the cache entry
func (s *ProductService) UpdateProduct(ctx context.Context, productID int64, req *UpdateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.UpdateProduct")
	defer span.End()

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Categories != nil {
		categories, err := parseCategories(req.Categories)
		if err != nil {
			return nil, err
		}
		product.Categories = categories
	}
	if req.PurchasePrice != nil {
		product.PurchasePrice = req.PurchasePrice
	}
	if req.RentPrice != nil {
		product.RentPrice = req.RentPrice
	}
	if req.RentUnit != nil {
		unit, err := models.ParseRentUnit(*req.RentUnit)
		if err != nil {
			return nil, err
		}
		product.RentUnit = unit
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.resolver.Invalidate(ctx, product.ID)

	return product, nil
}

// GetProduct retrieves a product through the cached resolver
func (s *ProductService) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	return s.resolver.Resolve(ctx, productID)
}

// ListProducts returns all listings, newest first
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.GetProducts(ctx)
}

// ListProductsBySeller returns a seller's listings
func (s *ProductService) ListProductsBySeller(ctx context.Context, sellerID int64) ([]models.Product, error) {
	return s.store.GetProductsBySeller(ctx, sellerID)
}

func parseCategories(raw []string) (pq.StringArray, error) {
	categories := make(pq.StringArray, 0, len(raw))
	for _, c := range raw {
		category, err := models.ParseCategory(c)
		if err != nil {
			return nil, err
		}
		categories = append(categories, string(category))
	}
	return categories, nil
}
