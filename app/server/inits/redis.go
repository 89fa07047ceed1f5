package inits

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis 连接缓存；没有配置连接字符串时返回 nil ，此时不使用缓存
func Redis(conn string) (*redis.Client, error) {
	if conn == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis connection string: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}
