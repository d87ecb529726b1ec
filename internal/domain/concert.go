package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrMissingExternalID   = errors.New("concert external_id is required")
	ErrDuplicateExternalID = errors.New("concert external_id already exists")
)

// Concert is the canonical stored record for a live-music event.
// At most one Concert exists per external_id; rows are created on first
// sighting of an external id and mutated in place afterwards.
// swagger:model Concert
type Concert struct {
	ID           string     `json:"id"`
	ExternalID   string     `json:"external_id"`
	Artist       string     `json:"artist"`
	Title        string     `json:"title"`
	Location     string     `json:"location"`
	Venue        string     `json:"venue"`
	Date         *time.Time `json:"date"`
	Description  string     `json:"description"`
	TicketURL    string     `json:"ticket_url"`
	Source       string     `json:"source"`
	Genre        *string    `json:"genre"`
	MinPrice     *float64   `json:"min_price"`
	MaxPrice     *float64   `json:"max_price"`
	TicketStatus *string    `json:"ticket_status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ExternalEvent is a normalized record from the ticket-search provider.
// Optional fields are pointers: nil means the provider did not supply the
// field, which is distinct from an empty or zero value.
// swagger:model ExternalEvent
type ExternalEvent struct {
	ExternalID   string     `json:"external_id"`
	Artist       *string    `json:"artist"`
	Title        *string    `json:"title"`
	Location     *string    `json:"location"`
	Venue        *string    `json:"venue"`
	Date         *time.Time `json:"date"`
	Description  *string    `json:"description"`
	TicketURL    *string    `json:"ticket_url"`
	Genre        *string    `json:"genre"`
	MinPrice     *float64   `json:"min_price"`
	MaxPrice     *float64   `json:"max_price"`
	TicketStatus *string    `json:"ticket_status"`
	Source       string     `json:"source"`
}

// ReconciliationResult reports the outcome of merging an ExternalEvent into
// the store. Previous is a snapshot of the row before the write, or nil on a
// first sighting. It is never persisted.
type ReconciliationResult struct {
	Current  *Concert
	Previous *Concert
}

// ConcertPatch holds the fields of a partial concert update. Nil fields are
// left untouched by the repository.
type ConcertPatch struct {
	Artist       *string
	Title        *string
	Location     *string
	Venue        *string
	Date         *time.Time
	Description  *string
	TicketURL    *string
	Genre        *string
	MinPrice     *float64
	MaxPrice     *float64
	TicketStatus *string
}

// Empty reports whether the patch would change nothing.
func (p ConcertPatch) Empty() bool {
	return p.Artist == nil && p.Title == nil && p.Location == nil && p.Venue == nil &&
		p.Date == nil && p.Description == nil && p.TicketURL == nil && p.Genre == nil &&
		p.MinPrice == nil && p.MaxPrice == nil && p.TicketStatus == nil
}

// ConcertRepository defines the interface for concert storage.
// Create returns ErrDuplicateExternalID when the unique constraint on
// external_id is violated, so callers can retry the insert as an update.
type ConcertRepository interface {
	Create(ctx context.Context, concert *Concert) error
	GetByID(ctx context.Context, id string) (*Concert, error)
	GetByExternalID(ctx context.Context, externalID string) (*Concert, error)
	Patch(ctx context.Context, id string, patch ConcertPatch) (*Concert, error)
}

// TicketSearchQuery is a provider-agnostic event search.
type TicketSearchQuery struct {
	Keyword       string
	City          string
	Genre         string
	StartDateTime string
	EndDateTime   string
	Size          int
}

// EventFetcher searches the ticket-search provider and returns normalized
// events. Implementations must never fail on malformed event payloads;
// missing fields map to nil.
type EventFetcher interface {
	Search(ctx context.Context, query TicketSearchQuery) ([]ExternalEvent, error)
}

// ConcertService defines the business logic around concerts: provider search,
// reconciliation of external events into stored rows, and AI hype summaries.
type ConcertService interface {
	Search(ctx context.Context, query TicketSearchQuery) ([]ExternalEvent, error)
	Recommended(ctx context.Context, userID string) ([]ExternalEvent, error)
	GetByID(ctx context.Context, id string) (*Concert, error)
	Reconcile(ctx context.Context, event ExternalEvent) (*ReconciliationResult, error)
	Summary(ctx context.Context, concertID string) (string, error)
}
