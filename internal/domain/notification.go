package domain

import (
	"context"
	"time"
)

// SignalKind identifies a ticket signal derived from a reconciliation.
type SignalKind string

// Signal kinds. SOLD_OUT and LOW_TICKETS are mutually exclusive for a given
// reconciliation; PRICE_DROP is independent of both.
const (
	SignalLowTickets SignalKind = "LOW_TICKETS"
	SignalSoldOut    SignalKind = "SOLD_OUT"
	SignalPriceDrop  SignalKind = "PRICE_DROP"
)

// Signal is a transient notification candidate. Signals are derived from a
// ReconciliationResult and handed to the notification service; they are never
// stored as-is.
type Signal struct {
	Kind    SignalKind
	Title   string
	Message string
}

// Notification types beyond the signal kinds.
const (
	NotificationGeneral  = "GENERAL"
	NotificationReminder = "UPCOMING_SHOW_REMINDER"
	NotificationJournal  = "JOURNAL"
)

// Notification is a persisted user notification.
// swagger:model Notification
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRepository defines the interface for notification storage.
// MarkRead and Delete apply to all of the user's notifications when ids is
// empty.
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	ListByUserID(ctx context.Context, userID string, params PaginationParams) ([]*Notification, int, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
	Delete(ctx context.Context, userID string, ids []string) error
}

// NotificationService persists user notifications and fans ticket alerts out
// to the email channel. It does not deduplicate repeated alerts; callers get
// exactly what the signal detector produced.
type NotificationService interface {
	Notify(ctx context.Context, userID, notificationType, title, message string) (*Notification, error)
	ListByUserID(ctx context.Context, userID string, params PaginationParams) ([]*Notification, int, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
	Delete(ctx context.Context, userID string, ids []string) error
}
