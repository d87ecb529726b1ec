package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trackmygig/internal/domain"
)

type journalRepository struct {
	DB *sql.DB
}

func NewJournalRepository(db *sql.DB) domain.JournalRepository {
	return &journalRepository{DB: db}
}

func (r *journalRepository) Create(ctx context.Context, e *domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (user_id, concert_id, entry_text, mood, attended_at, badge_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.UserID, e.ConcertID, e.EntryText, e.Mood, e.AttendedAt, e.BadgeType, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *journalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.JournalEntryWithConcert, error) {
	query := `
		SELECT j.id, j.user_id, j.concert_id, j.entry_text, j.mood, j.attended_at, j.badge_type, j.created_at,
			c.artist, c.title, c.location, c.venue, c.date
		FROM journal_entries j
		JOIN concerts c ON c.id = j.concert_id
		WHERE j.user_id = $1
		ORDER BY j.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.JournalEntryWithConcert, 0)
	for rows.Next() {
		e := &domain.JournalEntryWithConcert{}
		var attendedNull, dateNull sql.NullTime
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ConcertID, &e.EntryText, &e.Mood, &attendedNull, &e.BadgeType, &e.CreatedAt,
			&e.Artist, &e.Title, &e.Location, &e.Venue, &dateNull,
		); err != nil {
			return nil, err
		}
		if attendedNull.Valid {
			e.AttendedAt = &attendedNull.Time
		}
		if dateNull.Valid {
			e.Date = &dateNull.Time
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *journalRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *journalRepository) CountByUserAndArtist(ctx context.Context, userID, artist string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries j
		JOIN concerts c ON c.id = j.concert_id
		WHERE j.user_id = $1 AND c.artist = $2
	`
	var count int
	err := r.DB.QueryRowContext(ctx, query, userID, artist).Scan(&count)
	return count, err
}

func (r *journalRepository) Update(ctx context.Context, id, userID string, patch domain.JournalPatch) (*domain.JournalEntry, error) {
	var setClauses []string
	var args []any
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.EntryText != nil {
		add("entry_text", *patch.EntryText)
	}
	if patch.Mood != nil {
		add("mood", *patch.Mood)
	}
	if patch.AttendedAt != nil {
		add("attended_at", *patch.AttendedAt)
	}
	if n == 1 {
		return r.getByID(ctx, id, userID)
	}
	args = append(args, id, userID)
	query := fmt.Sprintf(`
		UPDATE journal_entries SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, concert_id, entry_text, mood, attended_at, badge_type, created_at
	`, strings.Join(setClauses, ", "), n, n+1)
	return scanJournalEntry(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *journalRepository) getByID(ctx context.Context, id, userID string) (*domain.JournalEntry, error) {
	query := `
		SELECT id, user_id, concert_id, entry_text, mood, attended_at, badge_type, created_at
		FROM journal_entries
		WHERE id = $1 AND user_id = $2
	`
	return scanJournalEntry(r.DB.QueryRowContext(ctx, query, id, userID))
}

func scanJournalEntry(row rowScanner) (*domain.JournalEntry, error) {
	e := &domain.JournalEntry{}
	var attendedNull sql.NullTime
	err := row.Scan(&e.ID, &e.UserID, &e.ConcertID, &e.EntryText, &e.Mood, &attendedNull, &e.BadgeType, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if attendedNull.Valid {
		e.AttendedAt = &attendedNull.Time
	}
	return e, nil
}

func (r *journalRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
