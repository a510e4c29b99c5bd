package testutil

import (
	"context"
	"fmt"
	"time"

	"noticeboard/config"
	"noticeboard/internal/database"

	"github.com/redis/go-redis/v9"
)

// SetupRedisOnly 連到測試用 Redis；連不上時回傳錯誤，由呼叫端決定要 skip 還是失敗
func SetupRedisOnly() (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	cleanup := func() { _ = rdb.Close() }
	return rdb, cleanup, nil
}
