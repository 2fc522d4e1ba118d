package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jwlee/aptgap-backend/config"
	"github.com/jwlee/aptgap-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance (nil when not initialized)
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// GetJSON 캐시된 값을 JSON으로 디코딩해서 반환 (miss면 false)
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if client == nil {
		return false, nil
	}

	data, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to get cached value", err, map[string]interface{}{"key": key})
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// 역직렬화 실패한 캐시는 버린다
		_ = client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// SetJSON 값을 JSON으로 직렬화해 TTL과 함께 캐싱
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Error("Failed to cache value", err, map[string]interface{}{"key": key})
		return err
	}
	return nil
}

// DeleteByPrefix 접두어로 시작하는 캐시 키 일괄 삭제 (임포트 후 무효화용)
func DeleteByPrefix(ctx context.Context, prefix string) error {
	if client == nil {
		return nil
	}

	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Error("Failed to scan cache keys", err, map[string]interface{}{"prefix": prefix})
		return err
	}

	if len(keys) > 0 {
		if err := client.Del(ctx, keys...).Err(); err != nil {
			logger.Error("Failed to delete cache keys", err, map[string]interface{}{"prefix": prefix})
			return err
		}
	}
	return nil
}
