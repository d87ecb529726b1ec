package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"trackmygig/internal/domain"
)

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepository(db *sql.DB) domain.WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) Upsert(ctx context.Context, userID, concertID string) (*domain.WishlistItem, error) {
	query := `
		INSERT INTO wishlists (user_id, concert_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, concert_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, concert_id, created_at
	`
	w := &domain.WishlistItem{}
	err := r.DB.QueryRowContext(ctx, query, userID, concertID).Scan(&w.ID, &w.UserID, &w.ConcertID, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *wishlistRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.WishlistConcert, error) {
	query := fmt.Sprintf(`
		SELECT w.id, w.created_at, %s
		FROM wishlists w
		JOIN concerts c ON c.id = w.concert_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`, prefixColumns("c", concertColumns))
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.WishlistConcert, 0)
	for rows.Next() {
		item := &domain.WishlistConcert{}
		c := &domain.Concert{}
		var dateNull sql.NullTime
		var genreNull, statusNull sql.NullString
		var minNull, maxNull sql.NullFloat64
		if err := rows.Scan(
			&item.WishlistID, &item.WishlistedAt,
			&c.ID, &c.ExternalID, &c.Artist, &c.Title, &c.Location, &c.Venue,
			&dateNull, &c.Description, &c.TicketURL, &c.Source,
			&genreNull, &minNull, &maxNull, &statusNull, &c.CreatedAt,
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
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *wishlistRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM wishlists WHERE id = $1 AND user_id = $2`
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
