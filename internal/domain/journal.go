package domain

import (
	"context"
	"time"
)

// Badge labels assigned to journal entries at creation time. A badge is
// computed once and never recomputed retroactively.
const (
	BadgeFirstGig = "First Gig Badge"
	BadgeSuperFan = "Super Fan Badge"
	BadgeExplorer = "Concert Explorer Badge"
)

// JournalEntry is a user's attendance record for a concert.
// swagger:model JournalEntry
type JournalEntry struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	ConcertID  string     `json:"concert_id"`
	EntryText  string     `json:"entry_text"`
	Mood       string     `json:"mood"`
	AttendedAt *time.Time `json:"attended_at"`
	BadgeType  string     `json:"badge_type"`
	CreatedAt  time.Time  `json:"created_at"`
}

// JournalEntryWithConcert is a journal list row joined with the concert the
// entry is about.
// swagger:model JournalEntryWithConcert
type JournalEntryWithConcert struct {
	JournalEntry
	Artist   string     `json:"artist"`
	Title    string     `json:"title"`
	Location string     `json:"location"`
	Venue    string     `json:"venue"`
	Date     *time.Time `json:"date"`
}

// JournalPatch holds the editable fields of an entry. Nil fields are left
// untouched. BadgeType is deliberately not editable.
type JournalPatch struct {
	EntryText  *string
	Mood       *string
	AttendedAt *time.Time
}

// JournalRepository defines the interface for journal storage and the
// history counts the badge assigner needs.
type JournalRepository interface {
	Create(ctx context.Context, entry *JournalEntry) error
	ListByUserID(ctx context.Context, userID string) ([]*JournalEntryWithConcert, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
	CountByUserAndArtist(ctx context.Context, userID, artist string) (int, error)
	Update(ctx context.Context, id, userID string, patch JournalPatch) (*JournalEntry, error)
	Delete(ctx context.Context, id, userID string) error
}

// JournalService creates and manages attendance entries, assigning a badge
// to each new entry from the user's history.
type JournalService interface {
	Create(ctx context.Context, userID, concertID, entryText, mood string, attendedAt *time.Time) (*JournalEntry, error)
	ListByUserID(ctx context.Context, userID string) ([]*JournalEntryWithConcert, error)
	Update(ctx context.Context, id, userID string, patch JournalPatch) (*JournalEntry, error)
	Delete(ctx context.Context, id, userID string) error
}
