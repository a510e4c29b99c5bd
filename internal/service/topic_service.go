package service

import (
	"context"

	"noticeboard/internal/cache"
	"noticeboard/internal/model"
	"noticeboard/internal/repository"
	"noticeboard/pkg/logger"
	"noticeboard/pkg/metrics"

	"go.uber.org/zap"
)

type TopicService interface {
	// 所有可選標籤，先查 Redis 快取
	List(ctx context.Context) ([]model.Topic, error)
	// 依 ID 取出標籤資料，不存在的 ID 直接略過
	Resolve(ctx context.Context, topicIDs []string) ([]model.Topic, error)
}

type TopicServiceImpl struct {
	repo    repository.TopicRepository
	cache   cache.TopicCache
	metrics *metrics.Manager
}

func NewTopicService(repo repository.TopicRepository, topicCache cache.TopicCache, m *metrics.Manager) TopicService {
	return &TopicServiceImpl{repo: repo, cache: topicCache, metrics: m}
}

func (s *TopicServiceImpl) List(ctx context.Context) ([]model.Topic, error) {
	topics, hit := s.cached(ctx)
	if hit {
		return topics, nil
	}

	topics, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// 快取寫入失敗不影響回應
	if err := s.cache.Set(ctx, topics); err != nil {
		logger.WithComponent("topic").Warn("failed to set topic cache", zap.Error(err))
	}
	return topics, nil
}

func (s *TopicServiceImpl) Resolve(ctx context.Context, topicIDs []string) ([]model.Topic, error) {
	if len(topicIDs) == 0 {
		return []model.Topic{}, nil
	}

	all, hit := s.cached(ctx)
	if !hit {
		return s.repo.FindByIDs(ctx, topicIDs)
	}

	byID := make(map[string]model.Topic, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}
	var missing []string
	for _, id := range topicIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	// 快取可能落後於資料庫，缺的部分回查
	if len(missing) > 0 {
		found, err := s.repo.FindByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, t := range found {
			byID[t.ID] = t
		}
	}

	out := make([]model.Topic, 0, len(topicIDs))
	for _, id := range topicIDs {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TopicServiceImpl) cached(ctx context.Context) ([]model.Topic, bool) {
	topics, hit, err := s.cache.Get(ctx)
	if err != nil {
		logger.WithComponent("topic").Warn("topic cache unavailable", zap.Error(err))
		hit = false
	}
	s.metrics.TopicCache(hit)
	return topics, hit
}
