package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trackmygig/internal/domain"
)

type journalService struct {
	journalRepo    domain.JournalRepository
	concertRepo    domain.ConcertRepository
	notifications  domain.NotificationService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewJournalService(
	journalRepo domain.JournalRepository,
	concertRepo domain.ConcertRepository,
	notifications domain.NotificationService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.JournalService {
	return &journalService{
		journalRepo:    journalRepo,
		concertRepo:    concertRepo,
		notifications:  notifications,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// AssignBadge picks the badge for a new entry from the user's history before
// the entry is written: totalEntries and sameArtistEntries count existing
// entries only. First entry ever wins First Gig; a third-or-later entry for
// the same artist wins Super Fan; anything else is Concert Explorer.
func AssignBadge(totalEntries, sameArtistEntries int) string {
	switch {
	case totalEntries == 0:
		return domain.BadgeFirstGig
	case sameArtistEntries >= 2:
		return domain.BadgeSuperFan
	default:
		return domain.BadgeExplorer
	}
}

func (s *journalService) Create(ctx context.Context, userID, concertID, entryText, mood string, attendedAt *time.Time) (*domain.JournalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(entryText) == "" {
		return nil, domain.ErrInvalidInput
	}

	concert, err := s.concertRepo.GetByID(ctx, concertID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get concert: %w", err)
	}

	total, err := s.journalRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count journal entries: %w", err)
	}
	sameArtist, err := s.journalRepo.CountByUserAndArtist(ctx, userID, concert.Artist)
	if err != nil {
		return nil, fmt.Errorf("count artist entries: %w", err)
	}

	entry := &domain.JournalEntry{
		UserID:     userID,
		ConcertID:  concertID,
		EntryText:  entryText,
		Mood:       mood,
		AttendedAt: attendedAt,
		BadgeType:  AssignBadge(total, sameArtist),
		CreatedAt:  time.Now(),
	}
	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}

	_, err = s.notifications.Notify(ctx, userID, domain.NotificationJournal, "Badge earned",
		fmt.Sprintf("You logged a concert with %s and earned %s.", concert.Artist, entry.BadgeType))
	if err != nil {
		s.logger.Warn("journal notification failed", "user_id", userID, "error", err)
	}
	return entry, nil
}

func (s *journalService) ListByUserID(ctx context.Context, userID string) ([]*domain.JournalEntryWithConcert, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	entries, err := s.journalRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

func (s *journalService) Update(ctx context.Context, id, userID string, patch domain.JournalPatch) (*domain.JournalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	entry, err := s.journalRepo.Update(ctx, id, userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	return entry, nil
}

func (s *journalService) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.journalRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}
