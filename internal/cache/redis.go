package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/priceops/config"
	"github.com/Domenick1991/priceops/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the recent-history listing for the dashboard endpoint.
// Quote computations themselves are never cached: every pricing call must
// reach the audit log.
type RedisCache struct {
	client     *redis.Client
	historyTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, historyTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		historyTTL: historyTTL,
	}
}

func (c *RedisCache) GetHistory(ctx context.Context) ([]domain.QuoteRecord, error) {
	data, err := c.client.Get(ctx, historyKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var records []domain.QuoteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *RedisCache) SetHistory(ctx context.Context, records []domain.QuoteRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, historyKey(), payload, c.historyTTL).Err()
}

func historyKey() string {
	return "cache:price_history"
}
