package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trackmygig/internal/domain"
)

type concertService struct {
	concertRepo    domain.ConcertRepository
	userRepo       domain.UserRepository
	fetcher        domain.EventFetcher
	completions    domain.CompletionClient
	contextTimeout time.Duration
}

// NewConcertService creates a ConcertService. completions may be nil, in
// which case Summary degrades to a canned blurb.
func NewConcertService(
	concertRepo domain.ConcertRepository,
	userRepo domain.UserRepository,
	fetcher domain.EventFetcher,
	completions domain.CompletionClient,
	timeout time.Duration,
) domain.ConcertService {
	return &concertService{
		concertRepo:    concertRepo,
		userRepo:       userRepo,
		fetcher:        fetcher,
		completions:    completions,
		contextTimeout: timeout,
	}
}

func (s *concertService) Search(ctx context.Context, query domain.TicketSearchQuery) ([]domain.ExternalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Genre doubles as a keyword hint so the provider ranks matching shows
	// first even when classification data is sparse.
	if query.Genre != "" {
		query.Keyword = strings.TrimSpace(query.Keyword + " " + query.Genre)
	}
	events, err := s.fetcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return events, nil
}

func (s *concertService) Recommended(ctx context.Context, userID string) ([]domain.ExternalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	artists := splitArtists(user.FavoriteArtists)
	keyword := user.FavoriteGenre
	if len(artists) > 0 {
		keyword = strings.Join(artists, " ")
	}
	events, err := s.fetcher.Search(ctx, domain.TicketSearchQuery{
		Keyword: keyword,
		City:    user.City,
		Genre:   user.FavoriteGenre,
	})
	if err != nil {
		return nil, fmt.Errorf("search recommended events: %w", err)
	}
	return events, nil
}

func splitArtists(list string) []string {
	var out []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *concertService) GetByID(ctx context.Context, id string) (*domain.Concert, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	concert, err := s.concertRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get concert: %w", err)
	}
	return concert, nil
}

// Reconcile upserts the stored concert for event.ExternalID and reports what
// changed. It is idempotent: replaying the same event returns the same
// concert id and writes nothing after the first application. Only fields the
// provider supplied (non-nil) and that differ from the stored value are
// written, so a sparse payload never erases previously stored data.
func (s *concertService) Reconcile(ctx context.Context, event domain.ExternalEvent) (*domain.ReconciliationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(event.ExternalID) == "" {
		return nil, domain.ErrMissingExternalID
	}

	existing, err := s.concertRepo.GetByExternalID(ctx, event.ExternalID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find concert: %w", err)
	}

	if existing == nil {
		concert := newConcertFromEvent(event)
		err := s.concertRepo.Create(ctx, concert)
		if err == nil {
			return &domain.ReconciliationResult{Current: concert}, nil
		}
		if !errors.Is(err, domain.ErrDuplicateExternalID) {
			return nil, fmt.Errorf("create concert: %w", err)
		}
		// Lost the insert race to a concurrent reconciliation; the unique
		// constraint on external_id guarantees a row now exists, so retry as
		// an update.
		existing, err = s.concertRepo.GetByExternalID(ctx, event.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("find concert after conflict: %w", err)
		}
	}

	previous := *existing
	patch := diffConcert(existing, event)
	if patch.Empty() {
		return &domain.ReconciliationResult{Current: existing, Previous: &previous}, nil
	}

	updated, err := s.concertRepo.Patch(ctx, existing.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("update concert: %w", err)
	}
	return &domain.ReconciliationResult{Current: updated, Previous: &previous}, nil
}

func newConcertFromEvent(event domain.ExternalEvent) *domain.Concert {
	c := &domain.Concert{
		ExternalID:   event.ExternalID,
		Source:       event.Source,
		Date:         event.Date,
		Genre:        event.Genre,
		MinPrice:     event.MinPrice,
		MaxPrice:     event.MaxPrice,
		TicketStatus: event.TicketStatus,
		CreatedAt:    time.Now(),
	}
	if event.Artist != nil {
		c.Artist = *event.Artist
	}
	if event.Title != nil {
		c.Title = *event.Title
	}
	if event.Location != nil {
		c.Location = *event.Location
	}
	if event.Venue != nil {
		c.Venue = *event.Venue
	}
	if event.Description != nil {
		c.Description = *event.Description
	}
	if event.TicketURL != nil {
		c.TicketURL = *event.TicketURL
	}
	return c
}

// diffConcert returns a patch of the fields that are both supplied by the
// event and different from the stored value.
func diffConcert(stored *domain.Concert, event domain.ExternalEvent) domain.ConcertPatch {
	var patch domain.ConcertPatch
	if event.Artist != nil && *event.Artist != stored.Artist {
		patch.Artist = event.Artist
	}
	if event.Title != nil && *event.Title != stored.Title {
		patch.Title = event.Title
	}
	if event.Location != nil && *event.Location != stored.Location {
		patch.Location = event.Location
	}
	if event.Venue != nil && *event.Venue != stored.Venue {
		patch.Venue = event.Venue
	}
	if event.Description != nil && *event.Description != stored.Description {
		patch.Description = event.Description
	}
	if event.TicketURL != nil && *event.TicketURL != stored.TicketURL {
		patch.TicketURL = event.TicketURL
	}
	if event.Date != nil && (stored.Date == nil || !stored.Date.Equal(*event.Date)) {
		patch.Date = event.Date
	}
	if event.Genre != nil && (stored.Genre == nil || *stored.Genre != *event.Genre) {
		patch.Genre = event.Genre
	}
	if event.MinPrice != nil && (stored.MinPrice == nil || *stored.MinPrice != *event.MinPrice) {
		patch.MinPrice = event.MinPrice
	}
	if event.MaxPrice != nil && (stored.MaxPrice == nil || *stored.MaxPrice != *event.MaxPrice) {
		patch.MaxPrice = event.MaxPrice
	}
	if event.TicketStatus != nil && (stored.TicketStatus == nil || *stored.TicketStatus != *event.TicketStatus) {
		patch.TicketStatus = event.TicketStatus
	}
	return patch
}

// DetectSignals derives notification candidates from a reconciliation.
// Status signals are re-emitted on every call while the status matches;
// deduplicating repeated alerts is the notification sink's concern, not the
// detector's. A first sighting (Previous == nil) can produce status signals
// but never PRICE_DROP, since there is no baseline to compare against.
func DetectSignals(result *domain.ReconciliationResult) []domain.Signal {
	if result == nil || result.Current == nil {
		return nil
	}
	current := result.Current

	var signals []domain.Signal
	status := ""
	if current.TicketStatus != nil {
		status = strings.ToLower(*current.TicketStatus)
	}
	switch {
	case strings.Contains(status, "sold"):
		signals = append(signals, domain.Signal{
			Kind:    domain.SignalSoldOut,
			Title:   "Sold out warning",
			Message: fmt.Sprintf("%s appears sold out. Watch for resale or venue releases.", current.Artist),
		})
	case strings.Contains(status, "low") || strings.Contains(status, "limited"):
		signals = append(signals, domain.Signal{
			Kind:    domain.SignalLowTickets,
			Title:   "Low tickets alert",
			Message: fmt.Sprintf("%s at %s is showing limited availability.", current.Artist, venueOrLocation(current)),
		})
	}

	if result.Previous != nil && result.Previous.MinPrice != nil && current.MinPrice != nil &&
		*current.MinPrice < *result.Previous.MinPrice {
		signals = append(signals, domain.Signal{
			Kind:    domain.SignalPriceDrop,
			Title:   "Price drop",
			Message: fmt.Sprintf("%s tickets dropped to $%.2f.", current.Artist, *current.MinPrice),
		})
	}
	return signals
}

func venueOrLocation(c *domain.Concert) string {
	if c.Venue != "" {
		return c.Venue
	}
	if c.Location != "" {
		return c.Location
	}
	return "TBD"
}

const summarySystemPrompt = "You are a concise concert hype writer."

func (s *concertService) Summary(ctx context.Context, concertID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	concert, err := s.concertRepo.GetByID(ctx, concertID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get concert: %w", err)
	}

	if s.completions == nil {
		return fmt.Sprintf("Summary unavailable without AI key. %s at %s. Expect a great vibe!",
			concert.Artist, venueOrLocation(concert)), nil
	}

	date := "TBD"
	if concert.Date != nil {
		date = concert.Date.Format("January 2, 2006")
	}
	prompt := fmt.Sprintf(
		"Give a short hype blurb for this concert in 2 sentences. Artist: %s. Title: %s. Venue: %s. Location: %s. Date: %s.",
		concert.Artist, concert.Title, concert.Venue, concert.Location, date,
	)
	summary, err := s.completions.Complete(ctx, summarySystemPrompt, prompt, 120)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return summary, nil
}
