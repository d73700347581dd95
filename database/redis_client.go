package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"file-vault/conf"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initialize Redis client
func InitRedis() error {
	if !conf.Cfg.Redis.Enabled {
		log.Println("Redis is disabled")
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Cfg.Redis.Host, conf.Cfg.Redis.Port),
		Password: conf.Cfg.Redis.Password,
		DB:       conf.Cfg.Redis.DB,
	})

	// Test connection
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		RedisClient = nil
		return err
	}

	log.Printf("Redis connected successfully: %s:%d (DB: %d)",
		conf.Cfg.Redis.Host, conf.Cfg.Redis.Port, conf.Cfg.Redis.DB)
	return nil
}

// CloseRedis close Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisEnabled check if Redis is enabled and connected
func IsRedisEnabled() bool {
	return RedisClient != nil && conf.Cfg.Redis.Enabled
}

// SetWithTTL store a string value under key with a TTL
func SetWithTTL(key, value string, ttl time.Duration) error {
	if !IsRedisEnabled() {
		return fmt.Errorf("redis is not available")
	}
	return RedisClient.Set(ctx, key, value, ttl).Err()
}

// GetString fetch a string value by key; returns redis.Nil when absent
func GetString(key string) (string, error) {
	if !IsRedisEnabled() {
		return "", redis.Nil
	}
	return RedisClient.Get(ctx, key).Result()
}

// Delete remove a key
func Delete(key string) error {
	if !IsRedisEnabled() {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// Incr increment a counter key, setting TTL on first use
func Incr(key string, ttl time.Duration) (int64, error) {
	if !IsRedisEnabled() {
		return 0, nil
	}
	n, err := RedisClient.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := RedisClient.Expire(ctx, key, ttl).Err(); err != nil {
			log.Printf("Failed to set TTL for key %s: %v", key, err)
		}
	}
	return n, nil
}
