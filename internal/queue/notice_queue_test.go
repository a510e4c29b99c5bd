package queue_test

import (
	"context"
	"testing"
	"time"

	"noticeboard/internal/model"
	"noticeboard/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = queue.MemoryQueueConfig{MaxRetryCount: 3, RetryDelay: 10 * time.Millisecond}

func newSubmission(requestID string) *model.NoticeSubmission {
	return &model.NoticeSubmission{
		RequestID: requestID,
		AuthorID:  7,
		Payload: model.SubmissionPayload{
			Notice: model.NoticeInput{
				Title:   "Orientation",
				Body:    `[{"type":"paragraph","children":[{"text":"hi"}]}]`,
				Time:    "2021-09-06T16:20:00.000Z",
				Topics:  []string{"t1"},
				IsEvent: true,
			},
			Events: []model.EventInput{
				{Name: "Kickoff", Date: "2021-09-10", Venue: "Hall A", MeetLink: "bring laptops"},
			},
		},
	}
}

func receive(t *testing.T, ctx context.Context, ch <-chan queue.Delivery) queue.Delivery {
	t.Helper()
	select {
	case d, ok := <-ch:
		require.True(t, ok, "channel 不應關閉")
		return d
	case <-ctx.Done():
		t.Fatal("timeout 未收到訊息")
	}
	return queue.Delivery{}
}

func TestMemoryNoticeQueue_PublishAndSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryNoticeQueue(4, fastRetry)
	sub := newSubmission("req-1")
	require.NoError(t, q.PublishNotice(ctx, sub))

	ch, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	d := receive(t, ctx, ch)
	assert.Equal(t, sub, d.Data)
	d.Ack()
}

func TestMemoryNoticeQueue_NackRequeue(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryNoticeQueue(4, fastRetry)
	require.NoError(t, q.PublishNotice(ctx, newSubmission("req-retry")))

	ch, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	first := receive(t, ctx, ch)
	first.Nack(true)

	second := receive(t, ctx, ch)
	assert.Equal(t, "req-retry", second.Data.RequestID)
	second.Ack()
}

func TestMemoryNoticeQueue_PublishRespectsContext(t *testing.T) {
	q := queue.NewMemoryNoticeQueue(1, fastRetry)
	require.NoError(t, q.PublishNotice(context.Background(), newSubmission("req-a")))

	// buffer 已滿
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := q.PublishNotice(ctx, newSubmission("req-b"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryNoticeQueue_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := queue.NewMemoryNoticeQueue(1, fastRetry)

	ch, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("cancel 後 channel 應關閉")
	}
}

func TestMemoryNoticeQueue_DiscardsAfterMaxRetry(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryNoticeQueue(4, fastRetry)
	require.NoError(t, q.PublishNotice(ctx, newSubmission("req-poison")))

	ch, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	for i := 0; i < fastRetry.MaxRetryCount; i++ {
		receive(t, ctx, ch).Nack(true)
	}

	select {
	case d, ok := <-ch:
		if ok {
			t.Fatalf("超過重試上限後不應再投遞: %s", d.Data.RequestID)
		}
	case <-time.After(10 * fastRetry.RetryDelay):
	}
}

func TestMemoryNoticeQueue_RequeueIsDelayed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cfg := queue.MemoryQueueConfig{MaxRetryCount: 3, RetryDelay: 100 * time.Millisecond}
	q := queue.NewMemoryNoticeQueue(4, cfg)
	require.NoError(t, q.PublishNotice(ctx, newSubmission("req-delay")))

	ch, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	first := receive(t, ctx, ch)
	start := time.Now()
	first.Nack(true)
	receive(t, ctx, ch).Ack()

	assert.GreaterOrEqual(t, time.Since(start), cfg.RetryDelay)
}

func TestMemoryNoticeQueue_NackWithoutRequeueDrops(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryNoticeQueue(4, fastRetry)
	require.NoError(t, q.PublishNotice(ctx, newSubmission("req-drop")))

	ch, err := q.SubscribeNotices(ctx)
	require.NoError(t, err)

	receive(t, ctx, ch).Nack(false)

	select {
	case d, ok := <-ch:
		if ok {
			t.Fatalf("Nack(false) 後不應再投遞: %s", d.Data.RequestID)
		}
	case <-time.After(5 * fastRetry.RetryDelay):
	}
}
