package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"trackmygig/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var concertCols = []string{
	"id", "external_id", "artist", "title", "location", "venue", "date", "description",
	"ticket_url", "source", "genre", "min_price", "max_price", "ticket_status", "created_at",
}

func concertRow(id, externalID string) *sqlmock.Rows {
	return sqlmock.NewRows(concertCols).AddRow(
		id, externalID, "The Midnight", "The Midnight Live", "Denver, CO", "The Fillmore",
		time.Date(2026, 10, 4, 19, 30, 0, 0, time.UTC), "Doors at 7pm.",
		"https://tickets.example.com/E1", "ticketmaster", "Synthwave", 45.5, 120.0, "onsale",
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	)
}

func TestConcertRepository_GetByExternalID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM concerts WHERE external_id = \$1`).
					WithArgs("EVT1").
					WillReturnRows(concertRow("concert-uuid-1", "EVT1"))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM concerts WHERE external_id = \$1`).
					WithArgs("EVT1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM concerts WHERE external_id = \$1`).
					WithArgs("EVT1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewConcertRepository(db)
			c, err := repo.GetByExternalID(ctx, "EVT1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "concert-uuid-1", c.ID)
				assert.Equal(t, "EVT1", c.ExternalID)
				assert.Equal(t, "The Midnight", c.Artist)
				require.NotNil(t, c.MinPrice)
				assert.Equal(t, 45.5, *c.MinPrice)
				require.NotNil(t, c.TicketStatus)
				assert.Equal(t, "onsale", *c.TicketStatus)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConcertRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO concerts`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("concert-uuid-1"))

		repo := NewConcertRepository(db)
		c := &domain.Concert{ExternalID: "EVT1", Artist: "The Midnight", Source: "ticketmaster", CreatedAt: time.Now()}
		require.NoError(t, repo.Create(ctx, c))
		assert.Equal(t, "concert-uuid-1", c.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation returns ErrDuplicateExternalID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO concerts`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewConcertRepository(db)
		c := &domain.Concert{ExternalID: "EVT1", CreatedAt: time.Now()}
		err = repo.Create(ctx, c)
		require.ErrorIs(t, err, domain.ErrDuplicateExternalID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConcertRepository_Patch(t *testing.T) {
	ctx := context.Background()

	t.Run("writes only set fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		minPrice := 40.0
		status := "limited"
		mock.ExpectQuery(`UPDATE concerts SET min_price = \$1, ticket_status = \$2`).
			WithArgs(40.0, "limited", "concert-uuid-1").
			WillReturnRows(concertRow("concert-uuid-1", "EVT1"))

		repo := NewConcertRepository(db)
		c, err := repo.Patch(ctx, "concert-uuid-1", domain.ConcertPatch{MinPrice: &minPrice, TicketStatus: &status})
		require.NoError(t, err)
		assert.Equal(t, "concert-uuid-1", c.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch falls back to select", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM concerts WHERE id = \$1`).
			WithArgs("concert-uuid-1").
			WillReturnRows(concertRow("concert-uuid-1", "EVT1"))

		repo := NewConcertRepository(db)
		c, err := repo.Patch(ctx, "concert-uuid-1", domain.ConcertPatch{})
		require.NoError(t, err)
		assert.Equal(t, "EVT1", c.ExternalID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row returns ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		artist := "Nobody"
		mock.ExpectQuery(`UPDATE concerts SET artist = \$1`).
			WithArgs("Nobody", "missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewConcertRepository(db)
		_, err = repo.Patch(ctx, "missing", domain.ConcertPatch{Artist: &artist})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
