package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"trackmygig/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{
	"id", "email", "password_hash", "salt", "full_name", "city", "favorite_artists",
	"favorite_genre", "created_at", "updated_at",
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))
			},
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			u := &domain.User{Email: "alice@example.com", FullName: "Alice", CreatedAt: time.Now(), UpdatedAt: time.Now()}
			err = repo.Create(ctx, u)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-uuid-1", u.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepository(db)
	_, err = repo.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	city := "Austin"
	mock.ExpectQuery(`UPDATE users SET updated_at = NOW\(\), city = \$1`).
		WithArgs("Austin", "user-uuid-1").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(
			"user-uuid-1", "alice@example.com", "hash", "salt", "Alice", "Austin", "Tool",
			"Rock", time.Now(), time.Now(),
		))

	repo := NewUserRepository(db)
	u, err := repo.UpdateProfile(context.Background(), "user-uuid-1", domain.ProfileUpdate{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Austin", u.City)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+\(SELECT COUNT\(\*\) FROM favorites`).
		WithArgs("user-uuid-1").
		WillReturnRows(sqlmock.NewRows([]string{"favorites", "journals", "badges"}).AddRow(4, 6, 2))

	repo := NewUserRepository(db)
	stats, err := repo.GetStats(context.Background(), "user-uuid-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.UserStats{Favorites: 4, Journals: 6, Badges: 2}, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}
