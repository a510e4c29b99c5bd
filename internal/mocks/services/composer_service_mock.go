package services

import (
	"context"
	"time"

	"noticeboard/internal/model"
	"noticeboard/internal/preview"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ComposerServiceMock struct {
	mock.Mock
}

func NewComposerServiceMock() *ComposerServiceMock {
	return &ComposerServiceMock{}
}

func (m *ComposerServiceMock) draft(args mock.Arguments) (*model.Draft, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Draft), args.Error(1)
}

func (m *ComposerServiceMock) Open(ctx context.Context, authorID int) (*model.Draft, error) {
	return m.draft(m.Called(ctx, authorID))
}

func (m *ComposerServiceMock) Get(ctx context.Context, draftID uuid.UUID) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID))
}

func (m *ComposerServiceMock) SetTitle(ctx context.Context, draftID uuid.UUID, title string) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID, title))
}

func (m *ComposerServiceMock) SetBody(ctx context.Context, draftID uuid.UUID, body string) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID, body))
}

func (m *ComposerServiceMock) SetTags(ctx context.Context, draftID uuid.UUID, topicIDs []string) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID, topicIDs))
}

func (m *ComposerServiceMock) ToggleTag(ctx context.Context, draftID uuid.UUID, topicID string) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID, topicID))
}

func (m *ComposerServiceMock) SetAttachments(ctx context.Context, draftID uuid.UUID, images, files []string) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID, images, files))
}

func (m *ComposerServiceMock) AddEvent(ctx context.Context, draftID uuid.UUID) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID))
}

func (m *ComposerServiceMock) DeleteEvent(ctx context.Context, draftID uuid.UUID, index int, revision *int64) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID, index, revision))
}

func (m *ComposerServiceMock) UpdateEventField(ctx context.Context, draftID uuid.UUID, index int, field model.EventField, value string, revision *int64) (*model.Draft, error) {
	return m.draft(m.Called(ctx, draftID, index, field, value, revision))
}

func (m *ComposerServiceMock) Preview(ctx context.Context, draftID uuid.UUID) (*preview.ViewModel, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*preview.ViewModel), args.Error(1)
}

func (m *ComposerServiceMock) Submit(ctx context.Context, draftID uuid.UUID) (*model.SubmissionResult, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionResult), args.Error(1)
}

func (m *ComposerServiceMock) Discard(ctx context.Context, draftID uuid.UUID) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

func (m *ComposerServiceMock) EvictIdle(ttl time.Duration) int {
	args := m.Called(ttl)
	return args.Int(0)
}
