package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trackmygig/internal/domain"
)

type reviewService struct {
	reviewRepo     domain.ReviewRepository
	concertRepo    domain.ConcertRepository
	contextTimeout time.Duration
}

func NewReviewService(reviewRepo domain.ReviewRepository, concertRepo domain.ConcertRepository, timeout time.Duration) domain.ReviewService {
	return &reviewService{reviewRepo: reviewRepo, concertRepo: concertRepo, contextTimeout: timeout}
}

// Save validates and upserts a review. Saving twice for the same concert
// replaces the earlier rating and comment.
func (s *reviewService) Save(ctx context.Context, review *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if review.Rating < 1 || review.Rating > 5 {
		return domain.ErrInvalidInput
	}
	review.Comment = strings.TrimSpace(review.Comment)

	if _, err := s.concertRepo.GetByID(ctx, review.ConcertID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get concert: %w", err)
	}

	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	return nil
}

func (s *reviewService) ListByConcertID(ctx context.Context, concertID string) ([]*domain.ConcertReview, *domain.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reviews, err := s.reviewRepo.ListByConcertID(ctx, concertID)
	if err != nil {
		return nil, nil, fmt.Errorf("list reviews: %w", err)
	}
	summary, err := s.reviewRepo.AverageRating(ctx, concertID)
	if err != nil {
		return nil, nil, fmt.Errorf("aggregate rating: %w", err)
	}
	return reviews, summary, nil
}
