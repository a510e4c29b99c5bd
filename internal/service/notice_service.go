package service

import (
	"context"
	"fmt"
	"time"

	"noticeboard/internal/composer"
	"noticeboard/internal/database"
	"noticeboard/internal/model"
	"noticeboard/internal/queue"
	"noticeboard/internal/repository"
	apperrors "noticeboard/pkg/app_errors"
	"noticeboard/pkg/logger"
	"noticeboard/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoticeSubmitter 投稿送出的對象；草稿服務只依賴這個介面
type NoticeSubmitter interface {
	Publish(ctx context.Context, authorID int, payload model.SubmissionPayload) (*model.SubmissionResult, error)
}

type NoticeService interface {
	NoticeSubmitter
	// 由 worker 呼叫，把投稿寫進資料庫；同一個 request ID 只會寫一次
	Dispatch(ctx context.Context, submission *model.NoticeSubmission) error
	List(ctx context.Context) ([]*model.Notice, error)
	GetByNoticeID(ctx context.Context, noticeID uuid.UUID) (*model.Notice, error)
}

type NoticeServiceImpl struct {
	db          database.DB
	repository  repository.NoticeRepository
	noticeQueue queue.NoticeQueue
	metrics     *metrics.Manager
	now         func() time.Time
}

func NewNoticeService(
	db database.DB,
	noticeRepository repository.NoticeRepository,
	noticeQueue queue.NoticeQueue,
	m *metrics.Manager,
	now func() time.Time,
) NoticeService {
	if now == nil {
		now = time.Now
	}
	return &NoticeServiceImpl{
		db:          db,
		repository:  noticeRepository,
		noticeQueue: noticeQueue,
		metrics:     m,
		now:         now,
	}
}

func (s *NoticeServiceImpl) Publish(ctx context.Context, authorID int, payload model.SubmissionPayload) (*model.SubmissionResult, error) {
	submission := &model.NoticeSubmission{
		RequestID: uuid.New().String(),
		AuthorID:  authorID,
		Payload:   payload,
	}

	// ctx 跟隨請求的生命週期，用戶不等了就取消
	if err := s.noticeQueue.PublishNotice(ctx, submission); err != nil {
		s.metrics.QueuePublishFailed()
		logger.WithComponent("notice").Error("failed to publish notice",
			zap.String("request_id", submission.RequestID),
			zap.Int("author_id", authorID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSubmissionFailed, err)
	}

	return &model.SubmissionResult{
		RequestID: submission.RequestID,
		Status:    model.SubmissionStatusAccepted,
	}, nil
}

func (s *NoticeServiceImpl) Dispatch(ctx context.Context, submission *model.NoticeSubmission) error {
	exists, err := s.repository.ExistsByRequestID(ctx, submission.RequestID)
	if err != nil {
		return err
	}
	if exists {
		// 重投遞的訊息，已經寫過
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	notice, err := s.repository.Create(ctx, tx, s.toNotice(submission))
	if err != nil {
		return err
	}

	if err := s.repository.AttachTopics(ctx, tx, notice.ID, submission.Payload.Notice.Topics); err != nil {
		return err
	}

	events := make([]model.NoticeEvent, 0, len(submission.Payload.Events))
	for i, e := range submission.Payload.Events {
		events = append(events, model.NoticeEvent{
			NoticeID: notice.ID,
			Position: i,
			Name:     e.Name,
			Date:     e.Date,
			Venue:    e.Venue,
			MeetLink: e.MeetLink,
		})
	}
	if err := s.repository.CreateEvents(ctx, tx, notice.ID, events); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.metrics.NoticePersisted()
	return nil
}

func (s *NoticeServiceImpl) List(ctx context.Context) ([]*model.Notice, error) {
	return s.repository.List(ctx)
}

func (s *NoticeServiceImpl) GetByNoticeID(ctx context.Context, noticeID uuid.UUID) (*model.Notice, error) {
	return s.repository.FindByNoticeID(ctx, noticeID)
}

func (s *NoticeServiceImpl) toNotice(submission *model.NoticeSubmission) *model.Notice {
	n := submission.Payload.Notice
	return &model.Notice{
		NoticeID:       uuid.New(),
		RequestID:      submission.RequestID,
		AuthorID:       submission.AuthorID,
		Title:          n.Title,
		Body:           n.Body,
		PostedAt:       s.postedAt(n.Time),
		AttachedImages: nonNil(n.AttachedImages),
		AttachedFiles:  nonNil(n.AttachedFiles),
		IsEvent:        n.IsEvent,
	}
}

// postedAt 解析投稿時間；格式不符時以收到的時間代替
func (s *NoticeServiceImpl) postedAt(raw string) time.Time {
	for _, layout := range []string{composer.TimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return s.now().UTC()
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
