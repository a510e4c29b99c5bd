package service

import (
	"context"
	"time"

	"noticeboard/internal/composer"
	"noticeboard/internal/model"
	"noticeboard/internal/preview"
	"noticeboard/internal/repository"
	"noticeboard/internal/session"
	apperrors "noticeboard/pkg/app_errors"
	"noticeboard/pkg/logger"
	"noticeboard/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ComposerService interface {
	Open(ctx context.Context, authorID int) (*model.Draft, error)
	Get(ctx context.Context, draftID uuid.UUID) (*model.Draft, error)
	SetTitle(ctx context.Context, draftID uuid.UUID, title string) (*model.Draft, error)
	SetBody(ctx context.Context, draftID uuid.UUID, body string) (*model.Draft, error)
	SetTags(ctx context.Context, draftID uuid.UUID, topicIDs []string) (*model.Draft, error)
	ToggleTag(ctx context.Context, draftID uuid.UUID, topicID string) (*model.Draft, error)
	SetAttachments(ctx context.Context, draftID uuid.UUID, images, files []string) (*model.Draft, error)
	AddEvent(ctx context.Context, draftID uuid.UUID) (*model.Draft, error)
	// revision 不為 nil 時必須等於目前版本，否則回傳 ErrStaleRevision
	DeleteEvent(ctx context.Context, draftID uuid.UUID, index int, revision *int64) (*model.Draft, error)
	UpdateEventField(ctx context.Context, draftID uuid.UUID, index int, field model.EventField, value string, revision *int64) (*model.Draft, error)
	Preview(ctx context.Context, draftID uuid.UUID) (*preview.ViewModel, error)
	// 送出投稿；成功後草稿移除，失敗時草稿保持原狀
	Submit(ctx context.Context, draftID uuid.UUID) (*model.SubmissionResult, error)
	Discard(ctx context.Context, draftID uuid.UUID) error
	// 移除閒置草稿，回傳移除數量
	EvictIdle(ttl time.Duration) int
}

type ComposerServiceImpl struct {
	store     *session.Store
	submitter NoticeSubmitter
	userRepo  repository.UserRepository
	topics    TopicService
	metrics   *metrics.Manager
	now       func() time.Time
}

func NewComposerService(
	store *session.Store,
	submitter NoticeSubmitter,
	userRepo repository.UserRepository,
	topics TopicService,
	m *metrics.Manager,
	now func() time.Time,
) ComposerService {
	if now == nil {
		now = time.Now
	}
	return &ComposerServiceImpl{
		store:     store,
		submitter: submitter,
		userRepo:  userRepo,
		topics:    topics,
		metrics:   m,
		now:       now,
	}
}

func (s *ComposerServiceImpl) Open(ctx context.Context, authorID int) (*model.Draft, error) {
	if authorID <= 0 {
		return nil, apperrors.ErrInvalidInput
	}
	// 作者不存在時不建立草稿，否則預覽與投稿都會在之後才失敗
	if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
		return nil, err
	}
	sess := s.store.Create(authorID)
	s.metrics.DraftOpened()

	sess.Lock()
	defer sess.Unlock()
	return draftView(sess), nil
}

func (s *ComposerServiceImpl) Get(ctx context.Context, draftID uuid.UUID) (*model.Draft, error) {
	sess, err := s.store.Get(draftID)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	defer sess.Unlock()
	return draftView(sess), nil
}

func (s *ComposerServiceImpl) SetTitle(ctx context.Context, draftID uuid.UUID, title string) (*model.Draft, error) {
	return s.mutate(draftID, "set_title", func(c *composer.Composer) error {
		c.SetTitle(title)
		return nil
	})
}

func (s *ComposerServiceImpl) SetBody(ctx context.Context, draftID uuid.UUID, body string) (*model.Draft, error) {
	return s.mutate(draftID, "set_body", func(c *composer.Composer) error {
		c.SetBody(body)
		return nil
	})
}

func (s *ComposerServiceImpl) SetTags(ctx context.Context, draftID uuid.UUID, topicIDs []string) (*model.Draft, error) {
	return s.mutate(draftID, "set_tags", func(c *composer.Composer) error {
		c.SetTags(topicIDs)
		return nil
	})
}

func (s *ComposerServiceImpl) ToggleTag(ctx context.Context, draftID uuid.UUID, topicID string) (*model.Draft, error) {
	if topicID == "" {
		return nil, apperrors.ErrInvalidInput
	}
	return s.mutate(draftID, "toggle_tag", func(c *composer.Composer) error {
		c.ToggleTag(topicID)
		return nil
	})
}

func (s *ComposerServiceImpl) SetAttachments(ctx context.Context, draftID uuid.UUID, images, files []string) (*model.Draft, error) {
	return s.mutate(draftID, "set_attachments", func(c *composer.Composer) error {
		c.SetAttachments(images, files)
		return nil
	})
}

func (s *ComposerServiceImpl) AddEvent(ctx context.Context, draftID uuid.UUID) (*model.Draft, error) {
	return s.mutate(draftID, "add_event", func(c *composer.Composer) error {
		c.AddEvent()
		return nil
	})
}

func (s *ComposerServiceImpl) DeleteEvent(ctx context.Context, draftID uuid.UUID, index int, revision *int64) (*model.Draft, error) {
	return s.mutate(draftID, "delete_event", func(c *composer.Composer) error {
		if err := checkRevision(c, revision); err != nil {
			return err
		}
		return c.DeleteEvent(index)
	})
}

func (s *ComposerServiceImpl) UpdateEventField(ctx context.Context, draftID uuid.UUID, index int, field model.EventField, value string, revision *int64) (*model.Draft, error) {
	return s.mutate(draftID, "update_event_field", func(c *composer.Composer) error {
		if err := checkRevision(c, revision); err != nil {
			return err
		}
		return c.UpdateEventField(index, field, value)
	})
}

func (s *ComposerServiceImpl) Preview(ctx context.Context, draftID uuid.UUID) (*preview.ViewModel, error) {
	sess, err := s.store.Get(draftID)
	if err != nil {
		return nil, err
	}
	sess.Lock()
	snapshot := sess.Composer.Snapshot()
	authorID := sess.AuthorID
	sess.Unlock()

	// 查詢作者與標籤時不持有草稿鎖
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	topics, err := s.topics.Resolve(ctx, snapshot.Tags)
	if err != nil {
		return nil, err
	}

	vm := preview.Project(preview.Input{
		Draft:  snapshot,
		Author: *author,
		Topics: topics,
		Now:    s.now(),
	})
	return &vm, nil
}

func (s *ComposerServiceImpl) Submit(ctx context.Context, draftID uuid.UUID) (*model.SubmissionResult, error) {
	sess, err := s.store.Get(draftID)
	if err != nil {
		return nil, err
	}

	// 1. 在鎖內取 payload 快照並標記投稿中
	sess.Lock()
	if sess.Submitting {
		sess.Unlock()
		s.metrics.Submission(metrics.ResultInFlight)
		return nil, apperrors.ErrSubmissionInFlight
	}
	payload := sess.Composer.ToSubmissionPayload(s.now())
	authorID := sess.AuthorID
	sess.Submitting = true
	sess.Unlock()

	// 2. 送出時不持有鎖，使用者可以繼續編輯
	result, err := s.submitter.Publish(ctx, authorID, payload)

	// 3. 成功移除草稿；失敗只清掉旗標，內容不動
	sess.Lock()
	sess.Submitting = false
	sess.Touch(s.now())
	sess.Unlock()

	if err != nil {
		s.metrics.Submission(metrics.ResultFailed)
		logger.WithComponent("composer").Warn("submission failed, draft kept",
			zap.String("draft_id", draftID.String()),
			zap.Error(err))
		return nil, err
	}

	_ = s.store.Delete(draftID)
	s.metrics.Submission(metrics.ResultAccepted)
	return result, nil
}

func (s *ComposerServiceImpl) Discard(ctx context.Context, draftID uuid.UUID) error {
	return s.store.Delete(draftID)
}

func (s *ComposerServiceImpl) EvictIdle(ttl time.Duration) int {
	n := s.store.EvictIdle(ttl)
	if n > 0 {
		s.metrics.DraftsEvicted(n)
	}
	return n
}

// mutate 在草稿鎖內執行 fn；fn 回傳錯誤時 Composer 不會有任何變化
func (s *ComposerServiceImpl) mutate(draftID uuid.UUID, op string, fn func(c *composer.Composer) error) (*model.Draft, error) {
	sess, err := s.store.Get(draftID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	err = fn(sess.Composer)
	s.metrics.DraftMutation(op, err)
	if err != nil {
		return nil, err
	}
	sess.Touch(s.now())
	return draftView(sess), nil
}

func checkRevision(c *composer.Composer, revision *int64) error {
	if revision != nil && *revision != c.Revision() {
		return apperrors.ErrStaleRevision
	}
	return nil
}

// draftView 呼叫端需持有鎖
func draftView(sess *session.Session) *model.Draft {
	c := sess.Composer
	return &model.Draft{
		DraftID:        sess.ID,
		AuthorID:       sess.AuthorID,
		Revision:       c.Revision(),
		Title:          c.Title(),
		Body:           c.Body(),
		Tags:           c.Tags(),
		AttachedImages: c.AttachedImages(),
		AttachedFiles:  c.AttachedFiles(),
		Events:         c.Events(),
		IsEvent:        c.IsEvent(),
		Submitting:     sess.Submitting,
	}
}
