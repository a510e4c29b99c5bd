package repository

import (
	"context"
	"fmt"

	"noticeboard/internal/database"
	"noticeboard/internal/model"

	"github.com/Masterminds/squirrel"
)

type TopicRepository interface {
	List(ctx context.Context) ([]model.Topic, error)
	FindByIDs(ctx context.Context, topicIDs []string) ([]model.Topic, error)
}

type TopicRepositoryImpl struct {
	db database.DB
}

func NewTopicRepository(db database.DB) TopicRepository {
	return &TopicRepositoryImpl{db: db}
}

func (r *TopicRepositoryImpl) List(ctx context.Context) ([]model.Topic, error) {
	return r.query(ctx, psql.Select("topic_id", "name", "color").
		From("topics").
		OrderBy("name"))
}

// FindByIDs 找不到的 ID 直接略過，不視為錯誤
func (r *TopicRepositoryImpl) FindByIDs(ctx context.Context, topicIDs []string) ([]model.Topic, error) {
	if len(topicIDs) == 0 {
		return []model.Topic{}, nil
	}
	return r.query(ctx, psql.Select("topic_id", "name", "color").
		From("topics").
		Where(squirrel.Eq{"topic_id": topicIDs}).
		OrderBy("name"))
}

func (r *TopicRepositoryImpl) query(ctx context.Context, b squirrel.SelectBuilder) ([]model.Topic, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build topics query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]model.Topic, 0)
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return topics, nil
}
