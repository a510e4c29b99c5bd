package infra

import (
	"context"

	"noticeboard/internal/model"
	"noticeboard/internal/queue"

	"github.com/stretchr/testify/mock"
)

type NoticeQueueMock struct {
	mock.Mock
}

func NewNoticeQueueMock() *NoticeQueueMock {
	return &NoticeQueueMock{}
}

func (m *NoticeQueueMock) PublishNotice(ctx context.Context, submission *model.NoticeSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *NoticeQueueMock) SubscribeNotices(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
