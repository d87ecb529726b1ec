package services

import (
	"context"
	"fmt"

	"trackmygig/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

func (s *emailService) SendWelcomeMessage(_ context.Context, data *domain.WelcomeMessageEmailData) error {
	subject, html, text, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendTicketAlert(_ context.Context, data *domain.TicketAlertEmailData) error {
	subject, html, text, err := s.renderer.Render("ticket_alert", data)
	if err != nil {
		return fmt.Errorf("render ticket alert email: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send ticket alert email: %w", err)
	}
	return nil
}
