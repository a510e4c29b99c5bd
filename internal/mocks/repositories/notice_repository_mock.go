package repositories

import (
	"context"

	"noticeboard/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type NoticeRepositoryMock struct {
	mock.Mock
}

func NewNoticeRepositoryMock() *NoticeRepositoryMock {
	return &NoticeRepositoryMock{}
}

func (m *NoticeRepositoryMock) List(ctx context.Context) ([]*model.Notice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notice), args.Error(1)
}

func (m *NoticeRepositoryMock) FindByNoticeID(ctx context.Context, noticeID uuid.UUID) (*model.Notice, error) {
	args := m.Called(ctx, noticeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notice), args.Error(1)
}

func (m *NoticeRepositoryMock) ExistsByRequestID(ctx context.Context, requestID string) (bool, error) {
	args := m.Called(ctx, requestID)
	return args.Bool(0), args.Error(1)
}

func (m *NoticeRepositoryMock) Create(ctx context.Context, tx pgx.Tx, notice *model.Notice) (*model.Notice, error) {
	args := m.Called(ctx, tx, notice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notice), args.Error(1)
}

func (m *NoticeRepositoryMock) AttachTopics(ctx context.Context, tx pgx.Tx, noticeID int, topicIDs []string) error {
	args := m.Called(ctx, tx, noticeID, topicIDs)
	return args.Error(0)
}

func (m *NoticeRepositoryMock) CreateEvents(ctx context.Context, tx pgx.Tx, noticeID int, events []model.NoticeEvent) error {
	args := m.Called(ctx, tx, noticeID, events)
	return args.Error(0)
}
