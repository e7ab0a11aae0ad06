package service

import (
	"context"
	"errors"

	"teebay-service/internal/models"
	"teebay-service/internal/redisclient"
	"teebay-service/internal/store"
	"teebay-service/internal/util"

	"go.uber.org/zap"
)

// ProductResolver looks up products for the aggregator: Redis fast path,
// database fallback. A nil redis client disables caching.
type ProductResolver struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewProductResolver creates a new product resolver
func NewProductResolver(store *store.Store, redis *redisclient.Client) *ProductResolver {
	return &ProductResolver{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// Resolve fetches a product by id, consulting the cache first. Cache errors
// other than a miss are logged and fall through to the database; the
// database remains the source of truth.
func (pr *ProductResolver) Resolve(ctx context.Context, productID int64) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductResolver.Resolve")
	defer span.End()

	if pr.redis != nil {
		product, err := pr.redis.GetProduct(ctx, productID)
		if err == nil {
			util.ProductCacheHitsTotal.Inc()
			return product, nil
		}
		if !errors.Is(err, redisclient.ErrCacheMiss) {
			pr.logger.Warn("Product cache lookup failed, falling back to DB",
				zap.Int64("product_id", productID),
				zap.Error(err))
		}
		util.ProductCacheMissesTotal.Inc()
	}

	product, err := pr.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if pr.redis != nil {
		if err := pr.redis.SetProduct(ctx, product); err != nil {
			pr.logger.Warn("Failed to cache product",
				zap.Int64("product_id", productID),
				zap.Error(err))
		}
	}

	return product, nil
}

// Invalidate drops a product from the cache after a listing update
func (pr *ProductResolver) Invalidate(ctx context.Context, productID int64) {
	if pr.redis == nil {
		return
	}
	if err := pr.redis.InvalidateProduct(ctx, productID); err != nil {
		pr.logger.Warn("Failed to invalidate cached product",
			zap.Int64("product_id", productID),
			zap.Error(err))
	}
}
