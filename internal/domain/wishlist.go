package domain

import (
	"context"
	"time"
)

// WishlistItem links a user to a concert they want tickets for.
// swagger:model WishlistItem
type WishlistItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ConcertID string    `json:"concert_id"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistConcert is a wishlist row joined with its concert.
// swagger:model WishlistConcert
type WishlistConcert struct {
	WishlistID   string    `json:"wishlist_id"`
	WishlistedAt time.Time `json:"wishlisted_at"`
	Concert      *Concert  `json:"concert"`
}

// WishlistRepository defines the interface for wishlist storage. Upsert is
// idempotent on (user_id, concert_id).
type WishlistRepository interface {
	Upsert(ctx context.Context, userID, concertID string) (*WishlistItem, error)
	ListByUserID(ctx context.Context, userID string) ([]*WishlistConcert, error)
	Delete(ctx context.Context, id, userID string) error
}

// WishlistService mirrors the favorites pipeline with a ticket-watch
// reminder as the save notification.
type WishlistService interface {
	Add(ctx context.Context, userID string, event ExternalEvent) (*Concert, *WishlistItem, error)
	ListByUserID(ctx context.Context, userID string) ([]*WishlistConcert, error)
	Remove(ctx context.Context, id, userID string) error
}
