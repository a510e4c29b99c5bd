package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"noticeboard/internal/model"

	"github.com/redis/go-redis/v9"
)

const TopicsKey = "topics:all"

type TopicCache interface {
	// 取得快取的標籤列表；第二個回傳值表示是否命中
	Get(ctx context.Context) ([]model.Topic, bool, error)
	Set(ctx context.Context, topics []model.Topic) error
	Invalidate(ctx context.Context) error
}

type RedisTopicCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTopicCache(client *redis.Client, ttl time.Duration) TopicCache {
	return &RedisTopicCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisTopicCacheImpl) Get(ctx context.Context) ([]model.Topic, bool, error) {
	raw, err := c.client.Get(ctx, TopicsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var topics []model.Topic
	if err := json.Unmarshal(raw, &topics); err != nil {
		// 壞掉的快取當作未命中，下次 Set 會覆蓋
		return nil, false, nil
	}
	return topics, true, nil
}

func (c *RedisTopicCacheImpl) Set(ctx context.Context, topics []model.Topic) error {
	raw, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}
	return c.client.Set(ctx, TopicsKey, raw, c.ttl).Err()
}

func (c *RedisTopicCacheImpl) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, TopicsKey).Err()
}
