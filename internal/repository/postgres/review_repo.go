package postgres

import (
	"context"
	"database/sql"

	"trackmygig/internal/domain"
)

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) domain.ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) Upsert(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (user_id, concert_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, concert_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, created_at = EXCLUDED.created_at
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		review.UserID, review.ConcertID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) ListByConcertID(ctx context.Context, concertID string) ([]*domain.ConcertReview, error) {
	query := `
		SELECT r.id, r.user_id, r.concert_id, r.rating, r.comment, r.created_at, u.full_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.concert_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, concertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*domain.ConcertReview, 0)
	for rows.Next() {
		cr := &domain.ConcertReview{}
		if err := rows.Scan(&cr.ID, &cr.UserID, &cr.ConcertID, &cr.Rating, &cr.Comment, &cr.CreatedAt, &cr.ReviewerName); err != nil {
			return nil, err
		}
		reviews = append(reviews, cr)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) AverageRating(ctx context.Context, concertID string) (*domain.RatingSummary, error) {
	query := `SELECT AVG(rating), COUNT(*) FROM reviews WHERE concert_id = $1`
	summary := &domain.RatingSummary{}
	var avg sql.NullFloat64
	if err := r.DB.QueryRowContext(ctx, query, concertID).Scan(&avg, &summary.Count); err != nil {
		return nil, err
	}
	if avg.Valid {
		summary.Average = &avg.Float64
	}
	return summary, nil
}
