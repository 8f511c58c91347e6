package provider

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/logger"
)

// ErrCacheMiss is returned by a Cache when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores serialized provider responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis string keys with a TTL.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return data, err
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// CachingProvider serves recipe details, nutrition and searches from a cache
// before falling through to the wrapped provider. Cache failures are logged
// and never fail the call.
type CachingProvider struct {
	next      RecipeProvider
	cache     Cache
	ttl       time.Duration
	searchTTL time.Duration
	log       *zap.Logger
}

var _ RecipeProvider = (*CachingProvider)(nil)

func NewCachingProvider(next RecipeProvider, cache Cache, ttl time.Duration) *CachingProvider {
	searchTTL := ttl / 6
	if searchTTL < time.Minute {
		searchTTL = time.Minute
	}
	return &CachingProvider{
		next:      next,
		cache:     cache,
		ttl:       ttl,
		searchTTL: searchTTL,
		log:       logger.Named("provider.cache"),
	}
}

// SearchRecipes caches result pages, except for random orderings which must
// differ between calls.
func (p *CachingProvider) SearchRecipes(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if params.Sort == SortRandom {
		return p.next.SearchRecipes(ctx, params)
	}
	sum := sha1.Sum([]byte(params.Values().Encode()))
	key := "recipe:search:" + hex.EncodeToString(sum[:])

	var res SearchResult
	if p.load(ctx, key, &res) {
		return &res, nil
	}
	out, err := p.next.SearchRecipes(ctx, params)
	if err != nil {
		return nil, err
	}
	p.store(ctx, key, out, p.searchTTL)
	return out, nil
}

func (p *CachingProvider) GetRecipeInformation(ctx context.Context, id int64) (*RecipeInformation, error) {
	key := fmt.Sprintf("recipe:info:%d", id)

	var info RecipeInformation
	if p.load(ctx, key, &info) {
		return &info, nil
	}
	out, err := p.next.GetRecipeInformation(ctx, id)
	if err != nil {
		return nil, err
	}
	p.store(ctx, key, out, p.ttl)
	return out, nil
}

func (p *CachingProvider) GetNutrition(ctx context.Context, id int64) (*Nutrition, error) {
	key := fmt.Sprintf("recipe:nutrition:%d", id)

	var n Nutrition
	if p.load(ctx, key, &n) {
		return &n, nil
	}
	out, err := p.next.GetNutrition(ctx, id)
	if err != nil {
		return nil, err
	}
	p.store(ctx, key, out, p.ttl)
	return out, nil
}

func (p *CachingProvider) ImageURL(id int64, image, imageType string) string {
	return p.next.ImageURL(id, image, imageType)
}

func (p *CachingProvider) load(ctx context.Context, key string, out any) bool {
	data, err := p.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			p.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		p.log.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (p *CachingProvider) store(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		p.log.Warn("failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := p.cache.Set(ctx, key, data, ttl); err != nil {
		p.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
