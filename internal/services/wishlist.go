package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"trackmygig/internal/domain"
)

type wishlistService struct {
	wishlistRepo   domain.WishlistRepository
	concerts       domain.ConcertService
	notifications  domain.NotificationService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewWishlistService(
	wishlistRepo domain.WishlistRepository,
	concerts domain.ConcertService,
	notifications domain.NotificationService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.WishlistService {
	return &wishlistService{
		wishlistRepo:   wishlistRepo,
		concerts:       concerts,
		notifications:  notifications,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Add mirrors the favorites pipeline; the save notification is a ticket-watch
// reminder instead of a plain save note.
func (s *wishlistService) Add(ctx context.Context, userID string, event domain.ExternalEvent) (*domain.Concert, *domain.WishlistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	result, err := s.concerts.Reconcile(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrMissingExternalID) {
			return nil, nil, domain.ErrMissingExternalID
		}
		return nil, nil, fmt.Errorf("reconcile concert: %w", err)
	}
	concert := result.Current

	item, err := s.wishlistRepo.Upsert(ctx, userID, concert.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("save wishlist item: %w", err)
	}

	s.notify(ctx, userID, domain.NotificationReminder, "Watching for tickets",
		fmt.Sprintf("We'll keep an eye on tickets for %s.", concert.Artist))
	for _, signal := range DetectSignals(result) {
		s.notify(ctx, userID, string(signal.Kind), signal.Title, signal.Message)
	}
	return concert, item, nil
}

func (s *wishlistService) notify(ctx context.Context, userID, notificationType, title, message string) {
	if _, err := s.notifications.Notify(ctx, userID, notificationType, title, message); err != nil {
		s.logger.Warn("wishlist notification failed", "user_id", userID, "type", notificationType, "error", err)
	}
}

func (s *wishlistService) ListByUserID(ctx context.Context, userID string) ([]*domain.WishlistConcert, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	items, err := s.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

func (s *wishlistService) Remove(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.wishlistRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}
