package infra

import (
	"context"

	"noticeboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type TopicCacheMock struct {
	mock.Mock
}

func NewTopicCacheMock() *TopicCacheMock {
	return &TopicCacheMock{}
}

func (m *TopicCacheMock) Get(ctx context.Context) ([]model.Topic, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]model.Topic), args.Bool(1), args.Error(2)
}

func (m *TopicCacheMock) Set(ctx context.Context, topics []model.Topic) error {
	args := m.Called(ctx, topics)
	return args.Error(0)
}

func (m *TopicCacheMock) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
