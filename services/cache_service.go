package services

import (
	"context"
	"metrics_demo_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

// CacheService wraps the optional Redis connection the health probe pings.
type CacheService struct {
	logger *gecho.Logger
	client *redis.Client
}

// NewRedisClient builds a pooled client; it does not dial until first use.
func NewRedisClient(cfg *structs.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize: cfg.PoolSize,

		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		MaxRetries: cfg.MaxRetries,
	})
}

func NewCacheService(logger *gecho.Logger, client *redis.Client) *CacheService {
	return &CacheService{
		logger: logger,
		client: client,
	}
}

func (cs *CacheService) PingContext(ctx context.Context) error {
	return cs.client.Ping(ctx).Err()
}

func (cs *CacheService) Close() error {
	if cs.client == nil {
		return nil
	}
	if err := cs.client.Close(); err != nil {
		cs.logger.Warn("Failed to close cache connection", gecho.Field("error", err))
		return err
	}
	return nil
}
