package repository

import (
	"context"
	"errors"
	"fmt"

	"noticeboard/internal/database"
	"noticeboard/internal/model"
	apperrors "noticeboard/pkg/app_errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*model.User, error)
}

type UserRepositoryImpl struct {
	db database.DB
}

func NewUserRepository(db database.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query, args, err := psql.Select("id", "name", "email", "profile_picture", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find user: %w", err)
	}

	var user model.User
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.ProfilePicture,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
