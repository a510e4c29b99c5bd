package repository

import (
	"context"
	"errors"
	"fmt"

	"noticeboard/internal/database"
	"noticeboard/internal/model"
	apperrors "noticeboard/pkg/app_errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var noticeColumns = []string{
	"id", "notice_id", "request_id", "author_id", "title", "body",
	"posted_at", "attached_images", "attached_files", "is_event", "created_at",
}

type NoticeRepository interface {
	List(ctx context.Context) ([]*model.Notice, error)
	FindByNoticeID(ctx context.Context, noticeID uuid.UUID) (*model.Notice, error)
	ExistsByRequestID(ctx context.Context, requestID string) (bool, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, notice *model.Notice) (*model.Notice, error)
	AttachTopics(ctx context.Context, tx pgx.Tx, noticeID int, topicIDs []string) error
	CreateEvents(ctx context.Context, tx pgx.Tx, noticeID int, events []model.NoticeEvent) error
}

type NoticeRepositoryImpl struct {
	db database.DB
}

func NewNoticeRepository(db database.DB) NoticeRepository {
	return &NoticeRepositoryImpl{db: db}
}

func (r *NoticeRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, notice *model.Notice) (*model.Notice, error) {
	query, args, err := psql.Insert("notices").
		Columns("notice_id", "request_id", "author_id", "title", "body",
			"posted_at", "attached_images", "attached_files", "is_event").
		Values(notice.NoticeID, notice.RequestID, notice.AuthorID, notice.Title, notice.Body,
			notice.PostedAt, notice.AttachedImages, notice.AttachedFiles, notice.IsEvent).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert notice: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&notice.ID, &notice.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create notice: %w", err)
	}
	return notice, nil
}

func (r *NoticeRepositoryImpl) AttachTopics(ctx context.Context, tx pgx.Tx, noticeID int, topicIDs []string) error {
	if len(topicIDs) == 0 {
		return nil
	}

	insert := psql.Insert("notice_topics").Columns("notice_id", "topic_id")
	for _, id := range topicIDs {
		insert = insert.Values(noticeID, id)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert notice_topics: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to attach topics: %w", err)
	}
	return nil
}

func (r *NoticeRepositoryImpl) CreateEvents(ctx context.Context, tx pgx.Tx, noticeID int, events []model.NoticeEvent) error {
	if len(events) == 0 {
		return nil
	}

	insert := psql.Insert("notice_events").
		Columns("notice_id", "position", "name", "date", "venue", "meet_link")
	for _, e := range events {
		insert = insert.Values(noticeID, e.Position, e.Name, e.Date, e.Venue, e.MeetLink)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert notice_events: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create notice events: %w", err)
	}
	return nil
}

func (r *NoticeRepositoryImpl) ExistsByRequestID(ctx context.Context, requestID string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("notices").
		Where(squirrel.Eq{"request_id": requestID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists notice: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *NoticeRepositoryImpl) List(ctx context.Context) ([]*model.Notice, error) {
	query, args, err := psql.Select(noticeColumns...).
		From("notices").
		OrderBy("posted_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notices: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notices := make([]*model.Notice, 0)
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, notice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, notice := range notices {
		if err := r.loadRelations(ctx, notice); err != nil {
			return nil, err
		}
	}
	return notices, nil
}

func (r *NoticeRepositoryImpl) FindByNoticeID(ctx context.Context, noticeID uuid.UUID) (*model.Notice, error) {
	query, args, err := psql.Select(noticeColumns...).
		From("notices").
		Where(squirrel.Eq{"notice_id": noticeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find notice: %w", err)
	}

	notice, err := scanNotice(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, err
	}

	if err := r.loadRelations(ctx, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// loadRelations 補上公告的主題與活動（依 position 排序）
func (r *NoticeRepositoryImpl) loadRelations(ctx context.Context, notice *model.Notice) error {
	var err error
	if notice.Topics, err = r.topicIDs(ctx, notice.ID); err != nil {
		return err
	}
	if notice.Events, err = r.events(ctx, notice.ID); err != nil {
		return err
	}
	return nil
}

func (r *NoticeRepositoryImpl) topicIDs(ctx context.Context, noticeID int) ([]string, error) {
	query, args, err := psql.Select("topic_id").
		From("notice_topics").
		Where(squirrel.Eq{"notice_id": noticeID}).
		OrderBy("topic_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notice topics: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *NoticeRepositoryImpl) events(ctx context.Context, noticeID int) ([]model.NoticeEvent, error) {
	query, args, err := psql.Select("id", "notice_id", "position", "name", "date", "venue", "meet_link").
		From("notice_events").
		Where(squirrel.Eq{"notice_id": noticeID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notice events: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.NoticeEvent, 0)
	for rows.Next() {
		var e model.NoticeEvent
		if err := rows.Scan(&e.ID, &e.NoticeID, &e.Position, &e.Name, &e.Date, &e.Venue, &e.MeetLink); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func scanNotice(row pgx.Row) (*model.Notice, error) {
	var n model.Notice
	err := row.Scan(
		&n.ID,
		&n.NoticeID,
		&n.RequestID,
		&n.AuthorID,
		&n.Title,
		&n.Body,
		&n.PostedAt,
		&n.AttachedImages,
		&n.AttachedFiles,
		&n.IsEvent,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
