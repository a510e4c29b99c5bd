package worker

import (
	"context"
	"fmt"

	"noticeboard/internal/model"
	"noticeboard/internal/queue"
	"noticeboard/pkg/logger"

	"go.uber.org/zap"
)

// Dispatcher 把一筆投稿寫進資料庫
type Dispatcher interface {
	Dispatch(ctx context.Context, submission *model.NoticeSubmission) error
}

type NoticeWorker interface {
	// 訂閱投稿隊列
	Start(ctx context.Context) error
}

type NoticeWorkerImpl struct {
	dispatcher Dispatcher
	queue      queue.NoticeQueue
}

func NewNoticeWorker(dispatcher Dispatcher, queue queue.NoticeQueue) NoticeWorker {
	return &NoticeWorkerImpl{
		dispatcher: dispatcher,
		queue:      queue,
	}
}

func (w *NoticeWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeNotices(ctx)
	if err != nil {
		return fmt.Errorf("subscribe notices: %w", err)
	}

	log := logger.WithComponent("worker")
	go func() {
		for msg := range msgs {
			if err := w.dispatcher.Dispatch(ctx, msg.Data); err != nil {
				// 資料庫暫時不可用時交回隊列重試
				log.Warn("dispatch failed, requeue",
					zap.String("request_id", msg.Data.RequestID),
					zap.Error(err))
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
		log.Info("notice worker stopped")
	}()
	return nil
}
