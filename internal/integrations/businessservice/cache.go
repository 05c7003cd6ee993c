package businessservice

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BusinessProvider источник каталога бизнеса
type BusinessProvider interface {
	GetBusiness(ctx context.Context, businessID int64) (*Business, error)
}

// CachedClient read-through кэш каталога поверх BusinessService.
// Каталог меняется редко, а генератор слотов читает его на каждый запрос,
// поэтому промах идёт в сервис, попадание — из Redis. Любая ошибка Redis
// деградирует до прямого запроса, кэш никогда не роняет чтение.
type CachedClient struct {
	provider BusinessProvider
	rdb      *redis.Client
	ttl      time.Duration
	log      Logger
}

// NewCachedClient создает кэширующую обёртку над клиентом BusinessService
func NewCachedClient(provider BusinessProvider, rdb *redis.Client, ttl time.Duration, log Logger) *CachedClient {
	return &CachedClient{
		provider: provider,
		rdb:      rdb,
		ttl:      ttl,
		log:      log,
	}
}

func cacheKey(businessID int64) string {
	return fmt.Sprintf("businessservice:business:%d", businessID)
}

// GetBusiness получает каталог бизнеса, сначала из Redis
func (c *CachedClient) GetBusiness(ctx context.Context, businessID int64) (*Business, error) {
	key := cacheKey(businessID)

	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var business Business
		if err := json.Unmarshal(payload, &business); err == nil {
			return &business, nil
		}
		// Битая запись в кэше: перечитываем из сервиса и перезаписываем
		c.log.Warn("GetBusiness: corrupted cache entry for business=%d, refetching", businessID)
	} else if err != redis.Nil {
		c.log.Warn("GetBusiness: redis get failed for business=%d: %v", businessID, err)
	}

	business, err := c.provider.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(business); err == nil {
		if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.Warn("GetBusiness: redis set failed for business=%d: %v", businessID, err)
		}
	}

	return business, nil
}

// Invalidate удаляет каталог бизнеса из кэша
func (c *CachedClient) Invalidate(ctx context.Context, businessID int64) error {
	if err := c.rdb.Del(ctx, cacheKey(businessID)).Err(); err != nil {
		return fmt.Errorf("%w: failed to invalidate cache for business=%d: %v", ErrInternal, businessID, err)
	}
	return nil
}
