package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"trackmygig/internal/domain"
)

const userColumns = `id, email, password_hash, salt, full_name, city, favorite_artists,
		favorite_genre, created_at, updated_at`

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.FullName, &u.City,
		&u.FavoriteArtists, &u.FavoriteGenre, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, salt, full_name, city, favorite_artists,
			favorite_genre, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.Salt, u.FullName, u.City, u.FavoriteArtists,
		u.FavoriteGenre, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	setClauses := []string{"updated_at = NOW()"}
	var args []any
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if update.FullName != nil {
		add("full_name", *update.FullName)
	}
	if update.City != nil {
		add("city", *update.City)
	}
	if update.FavoriteArtists != nil {
		add("favorite_artists", *update.FavoriteArtists)
	}
	if update.FavoriteGenre != nil {
		add("favorite_genre", *update.FavoriteGenre)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, userColumns)
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM favorites WHERE user_id = $1),
			(SELECT COUNT(*) FROM journal_entries WHERE user_id = $1),
			(SELECT COUNT(DISTINCT badge_type) FROM journal_entries WHERE user_id = $1 AND badge_type <> '')
	`
	stats := &domain.UserStats{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&stats.Favorites, &stats.Journals, &stats.Badges)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
