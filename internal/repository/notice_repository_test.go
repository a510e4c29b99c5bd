package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"noticeboard/internal/model"
	"noticeboard/internal/repository"
	apperrors "noticeboard/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noticeCols = []string{
	"id", "notice_id", "request_id", "author_id", "title", "body",
	"posted_at", "attached_images", "attached_files", "is_event", "created_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestNoticeRepository_Create(t *testing.T) {
	ctx := context.Background()
	postedAt := time.Date(2021, 9, 6, 16, 20, 0, 0, time.UTC)
	createdAt := postedAt.Add(time.Second)

	t.Run("Success", func(t *testing.T) {
		mock := newMockPool(t)
		repo := repository.NewNoticeRepository(mock)

		notice := &model.Notice{
			NoticeID:       uuid.New(),
			RequestID:      "req-1",
			AuthorID:       7,
			Title:          "Orientation",
			Body:           "[]",
			PostedAt:       postedAt,
			AttachedImages: []string{"https://img.example/1.png"},
			AttachedFiles:  []string{},
			IsEvent:        true,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notices")).
			WithArgs(notice.NoticeID, "req-1", 7, "Orientation", "[]", postedAt,
				[]string{"https://img.example/1.png"}, []string{}, true).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(11, createdAt))

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		created, err := repo.Create(ctx, tx, notice)

		require.NoError(t, err)
		assert.Equal(t, 11, created.ID)
		assert.Equal(t, createdAt, created.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failed - insert error", func(t *testing.T) {
		mock := newMockPool(t)
		repo := repository.NewNoticeRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notices")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("db down"))

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		_, err = repo.Create(ctx, tx, &model.Notice{NoticeID: uuid.New()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestNoticeRepository_AttachTopics(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - no topics skips insert", func(t *testing.T) {
		mock := newMockPool(t)
		repo := repository.NewNoticeRepository(mock)

		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.AttachTopics(ctx, tx, 1, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - multi row insert", func(t *testing.T) {
		mock := newMockPool(t)
		repo := repository.NewNoticeRepository(mock)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notice_topics (notice_id,topic_id) VALUES ($1,$2),($3,$4)")).
			WithArgs(1, "t1", 1, "t2").
			WillReturnResult(pgxmock.NewResult("INSERT", 2))

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.AttachTopics(ctx, tx, 1, []string{"t1", "t2"}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoticeRepository_CreateEvents(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := repository.NewNoticeRepository(mock)

	events := []model.NoticeEvent{
		{Position: 0, Name: "Kickoff", Date: "2021-09-06", Venue: "Hall", MeetLink: "https://meet.example/k"},
		{Position: 1, Name: "Retro", Date: "2021-09-10", Venue: "", MeetLink: ""},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notice_events")).
		WithArgs(3, 0, "Kickoff", "2021-09-06", "Hall", "https://meet.example/k",
			3, 1, "Retro", "2021-09-10", "", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreateEvents(ctx, tx, 3, events))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepository_ExistsByRequestID(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := repository.NewNoticeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM notices WHERE request_id = $1 )")).
		WithArgs("req-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByRequestID(ctx, "req-1")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeRepository_FindByNoticeID(t *testing.T) {
	ctx := context.Background()
	noticeID := uuid.MustParse("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11")
	postedAt := time.Date(2021, 9, 6, 16, 20, 0, 0, time.UTC)

	t.Run("Success - loads topics and events in position order", func(t *testing.T) {
		mock := newMockPool(t)
		repo := repository.NewNoticeRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FROM notices WHERE notice_id = $1")).
			WithArgs(noticeID.String()).
			WillReturnRows(pgxmock.NewRows(noticeCols).AddRow(
				5, noticeID, "req-5", 7, "Fest", "[]", postedAt,
				[]string{}, []string{}, true, postedAt,
			))
		mock.ExpectQuery(regexp.QuoteMeta("FROM notice_topics WHERE notice_id = $1")).
			WithArgs(5).
			WillReturnRows(pgxmock.NewRows([]string{"topic_id"}).AddRow("t1").AddRow("t2"))
		mock.ExpectQuery(regexp.QuoteMeta("FROM notice_events WHERE notice_id = $1 ORDER BY position")).
			WithArgs(5).
			WillReturnRows(pgxmock.NewRows([]string{"id", "notice_id", "position", "name", "date", "venue", "meet_link"}).
				AddRow(1, 5, 0, "Kickoff", "2021-09-06", "Hall", "").
				AddRow(2, 5, 1, "Retro", "", "", ""))

		notice, err := repo.FindByNoticeID(ctx, noticeID)

		require.NoError(t, err)
		assert.Equal(t, 5, notice.ID)
		assert.Equal(t, noticeID, notice.NoticeID)
		assert.Equal(t, []string{"t1", "t2"}, notice.Topics)
		require.Len(t, notice.Events, 2)
		assert.Equal(t, "Kickoff", notice.Events[0].Name)
		assert.Equal(t, 1, notice.Events[1].Position)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failed - not found", func(t *testing.T) {
		mock := newMockPool(t)
		repo := repository.NewNoticeRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FROM notices WHERE notice_id = $1")).
			WithArgs(noticeID.String()).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindByNoticeID(ctx, noticeID)

		assert.ErrorIs(t, err, apperrors.ErrNoticeNotFound)
	})
}

func TestNoticeRepository_List(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := repository.NewNoticeRepository(mock)
	postedAt := time.Date(2021, 9, 6, 16, 20, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notices ORDER BY posted_at DESC")).
		WillReturnRows(pgxmock.NewRows(noticeCols).
			AddRow(2, uuid.New(), "req-2", 7, "B", "[]", postedAt, []string{}, []string{}, false, postedAt).
			AddRow(1, uuid.New(), "req-1", 7, "A", "[]", postedAt, []string{}, []string{}, true, postedAt))
	mock.ExpectQuery(regexp.QuoteMeta("FROM notice_topics WHERE notice_id = $1")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"topic_id"}).AddRow("t1"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM notice_events WHERE notice_id = $1 ORDER BY position")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "notice_id", "position", "name", "date", "venue", "meet_link"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM notice_topics WHERE notice_id = $1")).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"topic_id"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM notice_events WHERE notice_id = $1 ORDER BY position")).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "notice_id", "position", "name", "date", "venue", "meet_link"}).
			AddRow(3, 1, 0, "Kickoff", "2021-09-06", "Hall", ""))

	notices, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, "B", notices[0].Title)
	assert.Equal(t, []string{"t1"}, notices[0].Topics)
	assert.NotNil(t, notices[0].Events)
	assert.Empty(t, notices[0].Events)
	assert.True(t, notices[1].IsEvent)
	assert.NotNil(t, notices[1].Topics)
	assert.Empty(t, notices[1].Topics)
	require.Len(t, notices[1].Events, 1)
	assert.Equal(t, "Kickoff", notices[1].Events[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
