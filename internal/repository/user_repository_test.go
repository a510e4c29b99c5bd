package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"noticeboard/internal/repository"
	apperrors "noticeboard/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2021, 9, 6, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock := newMockPool(t)
		repo := repository.NewUserRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 AND deleted_at IS NULL")).
			WithArgs(7).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "profile_picture", "created_at", "updated_at"}).
				AddRow(7, "Ada", "ada@example.com", "https://img.example/ada.png", now, now))

		user, err := repo.FindByID(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, "Ada", user.Name)
		assert.Equal(t, "https://img.example/ada.png", user.ProfilePicture)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failed - UserNotFound", func(t *testing.T) {
		mock := newMockPool(t)
		repo := repository.NewUserRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs(99).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindByID(ctx, 99)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
