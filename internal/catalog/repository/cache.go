package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
	"github.com/essence-store/essence-backend/pkg/logger"
)

const cacheKeyPrefix = "catalog:products:"

// CachedProductRepository is a read-through Redis cache in front of the
// product repository. Listing is the hot path (every catalog view hits it);
// any write invalidates the whole listing keyspace.
type CachedProductRepository struct {
	domain.ProductRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedProductRepository(inner domain.ProductRepository, redisClient *redis.Client, ttl time.Duration) *CachedProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProductRepository{
		ProductRepository: inner,
		redis:             redisClient,
		ttl:               ttl,
	}
}

func (r *CachedProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	if r.redis == nil {
		return r.ProductRepository.FindAll(limit, offset)
	}

	ctx := context.Background()
	key := listCacheKey(limit, offset)

	cached, err := r.redis.Get(ctx, key).Bytes()
	if err == nil && len(cached) > 0 {
		var products []domain.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			logger.Logger.Debug().Str("cache_key", key).Msg("Product list cache hit")
			return products, nil
		}
		// corrupt entry, fall through to the database
	}

	products, err := r.ProductRepository.FindAll(limit, offset)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(products); err == nil {
		if err := r.redis.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("cache_key", key).
				Msg("Failed to cache product list")
		}
	}

	return products, nil
}

func (r *CachedProductRepository) Create(product *domain.Product) error {
	if err := r.ProductRepository.Create(product); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

func (r *CachedProductRepository) Update(product *domain.Product) error {
	if err := r.ProductRepository.Update(product); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

func (r *CachedProductRepository) Delete(id string) error {
	if err := r.ProductRepository.Delete(id); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

// invalidate drops every cached listing. Best effort: a failed invalidation
// only extends staleness up to the TTL.
func (r *CachedProductRepository) invalidate() {
	if r.redis == nil {
		return
	}

	ctx := context.Background()
	iter := r.redis.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to scan product cache keys")
		return
	}

	if len(keys) > 0 {
		if err := r.redis.Del(ctx, keys...).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to invalidate product cache")
			return
		}
		logger.Logger.Debug().Int("count", len(keys)).Msg("Product cache invalidated")
	}
}

func listCacheKey(limit, offset int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("list:%d:%d", limit, offset)))
	return cacheKeyPrefix + hex.EncodeToString(hash[:])
}
