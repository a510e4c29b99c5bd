package services

import (
	"context"

	"noticeboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NoticeServiceMock struct {
	mock.Mock
}

func NewNoticeServiceMock() *NoticeServiceMock {
	return &NoticeServiceMock{}
}

func (m *NoticeServiceMock) Publish(ctx context.Context, authorID int, payload model.SubmissionPayload) (*model.SubmissionResult, error) {
	args := m.Called(ctx, authorID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionResult), args.Error(1)
}

func (m *NoticeServiceMock) Dispatch(ctx context.Context, submission *model.NoticeSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *NoticeServiceMock) List(ctx context.Context) ([]*model.Notice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notice), args.Error(1)
}

func (m *NoticeServiceMock) GetByNoticeID(ctx context.Context, noticeID uuid.UUID) (*model.Notice, error) {
	args := m.Called(ctx, noticeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notice), args.Error(1)
}
