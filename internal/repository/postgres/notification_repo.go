package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"trackmygig/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		n.UserID, n.Type, n.Title, n.Message, n.IsRead, n.CreatedAt,
	).Scan(&n.ID)
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, type, title, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		_, err := r.DB.ExecContext(ctx,
			`UPDATE notifications SET is_read = TRUE WHERE user_id = $1`, userID)
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND id = ANY($2)`,
		userID, pq.Array(ids))
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		_, err := r.DB.ExecContext(ctx,
			`DELETE FROM notifications WHERE user_id = $1`, userID)
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1 AND id = ANY($2)`,
		userID, pq.Array(ids))
	return err
}
