package domain

import (
	"context"
	"time"
)

// Review is a user's rating and comment for a concert. One row per
// (user, concert); saving again replaces the previous review.
// swagger:model Review
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ConcertID string    `json:"concert_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ConcertReview is a review joined with the reviewer's display name.
// swagger:model ConcertReview
type ConcertReview struct {
	Review
	ReviewerName string `json:"full_name"`
}

// RatingSummary is the aggregate rating for a concert. Average is nil when
// the concert has no reviews.
// swagger:model RatingSummary
type RatingSummary struct {
	Average *float64 `json:"avg_rating"`
	Count   int      `json:"count"`
}

// ReviewRepository defines the interface for review storage.
type ReviewRepository interface {
	Upsert(ctx context.Context, review *Review) error
	ListByConcertID(ctx context.Context, concertID string) ([]*ConcertReview, error)
	AverageRating(ctx context.Context, concertID string) (*RatingSummary, error)
}

// ReviewService validates and stores concert reviews.
type ReviewService interface {
	Save(ctx context.Context, review *Review) error
	ListByConcertID(ctx context.Context, concertID string) ([]*ConcertReview, *RatingSummary, error)
}
