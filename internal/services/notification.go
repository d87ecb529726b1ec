package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"trackmygig/internal/domain"
)

type notificationService struct {
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewNotificationService creates a NotificationService. emailService may be
// nil; in-app notifications are then the only delivery channel.
func NewNotificationService(
	notificationRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID, notificationType, title, message string) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	notification := &domain.Notification{
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if s.emailService != nil && isTicketSignal(notificationType) {
		s.sendTicketAlert(ctx, userID, title, message)
	}
	return notification, nil
}

func isTicketSignal(notificationType string) bool {
	switch domain.SignalKind(notificationType) {
	case domain.SignalLowTickets, domain.SignalSoldOut, domain.SignalPriceDrop:
		return true
	}
	return false
}

// sendTicketAlert mirrors ticket-availability notifications to email.
// Failures are logged and swallowed; the in-app notification already
// persisted and email is best effort.
func (s *notificationService) sendTicketAlert(ctx context.Context, userID, title, message string) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("skipping ticket alert email", "user_id", userID, "error", err)
		return
	}
	err = s.emailService.SendTicketAlert(ctx, &domain.TicketAlertEmailData{
		Email:   user.Email,
		Title:   title,
		Message: message,
	})
	if err != nil {
		s.logger.Warn("ticket alert email failed", "user_id", userID, "error", err)
	}
}

func (s *notificationService) ListByUserID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	notifications, total, err := s.notificationRepo.ListByUserID(ctx, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, ids []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.notificationRepo.MarkRead(ctx, userID, ids); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, userID string, ids []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.notificationRepo.Delete(ctx, userID, ids); err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}
