package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/PayPlan/internal/pkg/config"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// ErrDisabled is returned by every accessor while no cache is configured.
// Callers treat it like a miss.
var ErrDisabled = fmt.Errorf("cache disabled")

// SetupCache connects to the redis compatible cache server. With the cache
// disabled it does nothing and all lookups miss.
func SetupCache(cfg config.Cache) {
	if !cfg.Enabled {
		client = nil
		return
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	// Test the connection
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to cache: %v", err)
	} else {
		log.Printf("Successfully connected to cache: %s", pong)
	}
}

// SetClient replaces the client, e.g. with one pointing at a test server.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client instance, nil while disabled
func GetClient() *redis.Client {
	return client
}

func Enabled() bool {
	return client != nil
}

// Set stores a value in the cache with the given key and expiration time
func Set(key string, value interface{}, expiration time.Duration) error {
	if client == nil {
		return ErrDisabled
	}
	return client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value from the cache by key
func Get(key string) (string, error) {
	if client == nil {
		return "", ErrDisabled
	}
	return client.Get(ctx, key).Result()
}

// Delete removes a value from the cache by key
func Delete(key string) error {
	if client == nil {
		return ErrDisabled
	}
	return client.Del(ctx, key).Err()
}

// IsMiss reports whether err only means the key is not cached.
func IsMiss(err error) bool {
	return err == redis.Nil || err == ErrDisabled
}
