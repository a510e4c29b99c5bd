package queue

import (
	"context"
	"time"

	"noticeboard/internal/model"
	"noticeboard/pkg/logger"

	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.NoticeSubmission
	Ack  func()
	Nack func(requeue bool)
}

type NoticeQueue interface {
	// 發送投稿到隊列
	PublishNotice(ctx context.Context, submission *model.NoticeSubmission) error
	// 訂閱投稿隊列，ctx 結束時關閉回傳的 channel
	SubscribeNotices(ctx context.Context) (<-chan Delivery, error)
}

// MemoryQueueConfig 零值欄位使用預設
type MemoryQueueConfig struct {
	MaxRetryCount int           // 投遞次數達到此值後 Nack 不再重排，直接丟棄
	RetryDelay    time.Duration // Nack(requeue) 後延遲多久重新排入
}

func (c MemoryQueueConfig) withDefaults() MemoryQueueConfig {
	if c.MaxRetryCount <= 0 {
		c.MaxRetryCount = 5
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 100 * time.Millisecond
	}
	return c
}

type memoryMessage struct {
	submission *model.NoticeSubmission
	deliveries int
}

// MemoryNoticeQueueImpl 單一 process 內以 channel 模擬 MQ
type MemoryNoticeQueueImpl struct {
	ch  chan *memoryMessage
	cfg MemoryQueueConfig
	log *zap.Logger
}

func NewMemoryNoticeQueue(bufferSize int, cfg MemoryQueueConfig) NoticeQueue {
	return &MemoryNoticeQueueImpl{
		ch:  make(chan *memoryMessage, bufferSize),
		cfg: cfg.withDefaults(),
		log: logger.WithComponent("mq"),
	}
}

func (q *MemoryNoticeQueueImpl) PublishNotice(ctx context.Context, submission *model.NoticeSubmission) error {
	select {
	case q.ch <- &memoryMessage{submission: submission}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryNoticeQueueImpl) SubscribeNotices(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-q.ch:
				msg.deliveries++
				d := Delivery{
					Data: msg.submission,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							q.requeue(ctx, msg)
						}
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// requeue 超過重試上限的訊息直接丟棄，其餘延遲 RetryDelay 後放回隊列
func (q *MemoryNoticeQueueImpl) requeue(ctx context.Context, msg *memoryMessage) {
	if msg.deliveries >= q.cfg.MaxRetryCount {
		q.log.Warn("discard poison message",
			zap.String("request_id", msg.submission.RequestID),
			zap.Int("retries", msg.deliveries),
			zap.Int("max_retries", q.cfg.MaxRetryCount))
		return
	}

	go func() {
		t := time.NewTimer(q.cfg.RetryDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
		select {
		case q.ch <- msg:
		case <-ctx.Done():
		}
	}()
}
