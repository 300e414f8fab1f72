package cache

import (
	"context"
	"fmt"
	"time"

	"Yatube/api/config"

	"github.com/redis/go-redis/v9"
)

// Client is nil when redis is unavailable; every helper then behaves as a
// cache miss.
var Client *redis.Client

// Init connects using either:
// - REDIS_URL / VALKEY_URL
// - or REDIS_ADDR with REDIS_PASSWORD
func Init(cfg *config.Config) error {
	var opt *redis.Options
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to parse REDIS_URL: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis/valkey: %w", err)
	}
	Client = client
	return nil
}

func Get(ctx context.Context, key string) ([]byte, bool, error) {
	if Client == nil {
		return nil, false, nil
	}
	val, err := Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	return Client.Set(ctx, key, value, ttl).Err()
}

func Delete(ctx context.Context, keys ...string) error {
	if Client == nil || len(keys) == 0 {
		return nil
	}
	return Client.Del(ctx, keys...).Err()
}

func DeleteByPrefix(ctx context.Context, prefix string) error {
	if Client == nil {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := Client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}
