package services

import (
	"context"

	"noticeboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type TopicServiceMock struct {
	mock.Mock
}

func NewTopicServiceMock() *TopicServiceMock {
	return &TopicServiceMock{}
}

func (m *TopicServiceMock) List(ctx context.Context) ([]model.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Topic), args.Error(1)
}

func (m *TopicServiceMock) Resolve(ctx context.Context, topicIDs []string) ([]model.Topic, error) {
	args := m.Called(ctx, topicIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Topic), args.Error(1)
}
