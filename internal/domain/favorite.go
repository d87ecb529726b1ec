package domain

import (
	"context"
	"time"
)

// Favorite links a user to a saved concert. One row per (user, concert).
// swagger:model Favorite
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ConcertID string    `json:"concert_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteConcert is a favorites list row: the concert joined with the link
// metadata and the caller's own review, if any.
// swagger:model FavoriteConcert
type FavoriteConcert struct {
	FavoriteID  string    `json:"favorite_id"`
	FavoritedAt time.Time `json:"favorited_at"`
	Concert     *Concert  `json:"concert"`
	UserReview  *Review   `json:"user_review,omitempty"`
}

// FavoriteRepository defines the interface for favorite storage. Upsert is
// idempotent on (user_id, concert_id).
type FavoriteRepository interface {
	Upsert(ctx context.Context, userID, concertID string) (*Favorite, error)
	ListByUserID(ctx context.Context, userID string) ([]*FavoriteConcert, error)
	Delete(ctx context.Context, id, userID string) error
}

// FavoriteService runs the save pipeline: reconcile the incoming event,
// upsert the favorite link, then persist the save notification and any ticket
// signals.
type FavoriteService interface {
	Add(ctx context.Context, userID string, event ExternalEvent) (*Concert, *Favorite, error)
	ListByUserID(ctx context.Context, userID string) ([]*FavoriteConcert, error)
	Remove(ctx context.Context, id, userID string) error
}
