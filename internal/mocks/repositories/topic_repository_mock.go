package repositories

import (
	"context"

	"noticeboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type TopicRepositoryMock struct {
	mock.Mock
}

func NewTopicRepositoryMock() *TopicRepositoryMock {
	return &TopicRepositoryMock{}
}

func (m *TopicRepositoryMock) List(ctx context.Context) ([]model.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Topic), args.Error(1)
}

func (m *TopicRepositoryMock) FindByIDs(ctx context.Context, topicIDs []string) ([]model.Topic, error) {
	args := m.Called(ctx, topicIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Topic), args.Error(1)
}
