package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventexplorer/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			user: &domain.User{
				Email:        "alice@example.com",
				PasswordHash: "hash",
				Salt:         "salt",
				FirstName:    "Alice",
				LastName:     "Dorji",
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(email, password_hash, salt, first_name, last_name, created_at, updated_at\)`).
					WithArgs("alice@example.com", "hash", "salt", "Alice", "Dorji", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
			},
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			user: &domain.User{Email: "taken@example.com", CreatedAt: now, UpdatedAt: now},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			user: &domain.User{Email: "a@b.com", CreatedAt: now, UpdatedAt: now},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Create(ctx, tt.user)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, int64(1), tt.user.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, salt, first_name, last_name, created_at, updated_at`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "salt", "first_name", "last_name", "created_at", "updated_at"}).
				AddRow(int64(1), "alice@example.com", "hash", "salt", "Alice", "Dorji", now, now))

		repo := NewUserRepository(db)
		u, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, int64(1), u.ID)
		require.Equal(t, "Alice", u.FirstName)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, salt, first_name, last_name, created_at, updated_at`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_ReplaceThemeCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces inside one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM user_theme_categories WHERE user_id = \$1`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO user_theme_categories`).
			WithArgs(int64(7), pq.Array([]int64{1, 3})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		repo := NewUserRepository(db)
		require.NoError(t, repo.ReplaceThemeCategories(ctx, 7, []int64{1, 3}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set only clears", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM user_theme_categories WHERE user_id = \$1`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		repo := NewUserRepository(db)
		require.NoError(t, repo.ReplaceThemeCategories(ctx, 7, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM user_theme_categories`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO user_theme_categories`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewUserRepository(db)
		require.Error(t, repo.ReplaceThemeCategories(ctx, 7, []int64{1}))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
