package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"trackmygig/internal/domain"
)

type favoriteRepository struct {
	DB *sql.DB
}

func NewFavoriteRepository(db *sql.DB) domain.FavoriteRepository {
	return &favoriteRepository{DB: db}
}

func (r *favoriteRepository) Upsert(ctx context.Context, userID, concertID string) (*domain.Favorite, error) {
	query := `
		INSERT INTO favorites (user_id, concert_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, concert_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, concert_id, created_at
	`
	f := &domain.Favorite{}
	err := r.DB.QueryRowContext(ctx, query, userID, concertID).Scan(&f.ID, &f.UserID, &f.ConcertID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *favoriteRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.FavoriteConcert, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.created_at, %s,
			r.id, r.rating, r.comment, r.created_at
		FROM favorites f
		JOIN concerts c ON c.id = f.concert_id
		LEFT JOIN reviews r ON r.concert_id = c.id AND r.user_id = f.user_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, prefixColumns("c", concertColumns))
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.FavoriteConcert, 0)
	for rows.Next() {
		item := &domain.FavoriteConcert{}
		c := &domain.Concert{}
		var dateNull sql.NullTime
		var genreNull, statusNull sql.NullString
		var minNull, maxNull sql.NullFloat64
		var revID, revComment sql.NullString
		var revRating sql.NullInt64
		var revCreated sql.NullTime
		if err := rows.Scan(
			&item.FavoriteID, &item.FavoritedAt,
			&c.ID, &c.ExternalID, &c.Artist, &c.Title, &c.Location, &c.Venue,
			&dateNull, &c.Description, &c.TicketURL, &c.Source,
			&genreNull, &minNull, &maxNull, &statusNull, &c.CreatedAt,
			&revID, &revRating, &revComment, &revCreated,
		); err != nil {
			return nil, err
		}
		if dateNull.Valid {
			c.Date = &dateNull.Time
		}
		if genreNull.Valid {
			c.Genre = &genreNull.String
		}
		if minNull.Valid {
			c.MinPrice = &minNull.Float64
		}
		if maxNull.Valid {
			c.MaxPrice = &maxNull.Float64
		}
		if statusNull.Valid {
			c.TicketStatus = &statusNull.String
		}
		item.Concert = c
		if revID.Valid {
			item.UserReview = &domain.Review{
				ID:        revID.String,
				UserID:    userID,
				ConcertID: c.ID,
				Rating:    int(revRating.Int64),
				Comment:   revComment.String,
				CreatedAt: revCreated.Time,
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *favoriteRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM favorites WHERE id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// prefixColumns qualifies each comma-separated column with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
