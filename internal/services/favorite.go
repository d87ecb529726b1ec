package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"trackmygig/internal/domain"
)

type favoriteService struct {
	favoriteRepo   domain.FavoriteRepository
	concerts       domain.ConcertService
	notifications  domain.NotificationService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewFavoriteService(
	favoriteRepo domain.FavoriteRepository,
	concerts domain.ConcertService,
	notifications domain.NotificationService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.FavoriteService {
	return &favoriteService{
		favoriteRepo:   favoriteRepo,
		concerts:       concerts,
		notifications:  notifications,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Add reconciles the incoming event into the concert store, links it to the
// user, and records the save plus any ticket signals as notifications.
// Notification failures are logged, not returned; the favorite is already
// saved.
func (s *favoriteService) Add(ctx context.Context, userID string, event domain.ExternalEvent) (*domain.Concert, *domain.Favorite, error) {
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

	favorite, err := s.favoriteRepo.Upsert(ctx, userID, concert.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("save favorite: %w", err)
	}

	s.notify(ctx, userID, domain.NotificationGeneral, "Added to favorites",
		fmt.Sprintf("%s was added to your favorites.", concert.Artist))
	for _, signal := range DetectSignals(result) {
		s.notify(ctx, userID, string(signal.Kind), signal.Title, signal.Message)
	}
	return concert, favorite, nil
}

func (s *favoriteService) notify(ctx context.Context, userID, notificationType, title, message string) {
	if _, err := s.notifications.Notify(ctx, userID, notificationType, title, message); err != nil {
		s.logger.Warn("favorite notification failed", "user_id", userID, "type", notificationType, "error", err)
	}
}

func (s *favoriteService) ListByUserID(ctx context.Context, userID string) ([]*domain.FavoriteConcert, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	favorites, err := s.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

func (s *favoriteService) Remove(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.favoriteRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}
