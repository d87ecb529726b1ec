package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"trackmygig/internal/domain"
)

const uniqueViolation = "23505"

const concertColumns = `id, external_id, artist, title, location, venue, date, description,
		ticket_url, source, genre, min_price, max_price, ticket_status, created_at`

type concertRepository struct {
	DB *sql.DB
}

func NewConcertRepository(db *sql.DB) domain.ConcertRepository {
	return &concertRepository{DB: db}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanConcert(row rowScanner) (*domain.Concert, error) {
	c := &domain.Concert{}
	var dateNull sql.NullTime
	var genreNull, statusNull sql.NullString
	var minNull, maxNull sql.NullFloat64
	err := row.Scan(
		&c.ID, &c.ExternalID, &c.Artist, &c.Title, &c.Location, &c.Venue,
		&dateNull, &c.Description, &c.TicketURL, &c.Source,
		&genreNull, &minNull, &maxNull, &statusNull, &c.CreatedAt,
	)
	if err != nil {
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
	return c, nil
}

func (r *concertRepository) Create(ctx context.Context, c *domain.Concert) error {
	query := `
		INSERT INTO concerts (external_id, artist, title, location, venue, date, description,
			ticket_url, source, genre, min_price, max_price, ticket_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		c.ExternalID, c.Artist, c.Title, c.Location, c.Venue, c.Date, c.Description,
		c.TicketURL, c.Source, c.Genre, c.MinPrice, c.MaxPrice, c.TicketStatus, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrDuplicateExternalID
		}
		return err
	}
	return nil
}

func (r *concertRepository) GetByID(ctx context.Context, id string) (*domain.Concert, error) {
	query := fmt.Sprintf(`SELECT %s FROM concerts WHERE id = $1`, concertColumns)
	c, err := scanConcert(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *concertRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Concert, error) {
	query := fmt.Sprintf(`SELECT %s FROM concerts WHERE external_id = $1`, concertColumns)
	c, err := scanConcert(r.DB.QueryRowContext(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *concertRepository) Patch(ctx context.Context, id string, patch domain.ConcertPatch) (*domain.Concert, error) {
	var setClauses []string
	var args []any
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Artist != nil {
		add("artist", *patch.Artist)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Venue != nil {
		add("venue", *patch.Venue)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.TicketURL != nil {
		add("ticket_url", *patch.TicketURL)
	}
	if patch.Genre != nil {
		add("genre", *patch.Genre)
	}
	if patch.MinPrice != nil {
		add("min_price", *patch.MinPrice)
	}
	if patch.MaxPrice != nil {
		add("max_price", *patch.MaxPrice)
	}
	if patch.TicketStatus != nil {
		add("ticket_status", *patch.TicketStatus)
	}
	if n == 1 {
		// Nothing to write; return the current row.
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE concerts SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, concertColumns)
	c, err := scanConcert(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
