package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"newsletter-api/internal/domain"
	"newsletter-api/internal/email"
	"newsletter-api/internal/repository"
)

// Issue es una edición del boletín lista para enviarse.
type Issue struct {
	Title string
	HTML  string
	Text  string
}

// NewsletterService reparte una edición entre los suscriptores confirmados.
type NewsletterService struct {
	logger       *zap.Logger
	subscribers  repository.SubscriberRepository
	emailSender  email.Sender
	emailTimeout time.Duration
}

func NewNewsletterService(
	logger *zap.Logger,
	subscribers repository.SubscriberRepository,
	emailSender email.Sender,
	emailTimeout time.Duration,
) *NewsletterService {
	if emailTimeout <= 0 {
		emailTimeout = 10 * time.Second
	}
	return &NewsletterService{
		logger:       logger,
		subscribers:  subscribers,
		emailSender:  emailSender,
		emailTimeout: emailTimeout,
	}
}

// Publish envía la edición a cada suscriptor confirmado. Una dirección
// almacenada inválida o un envío fallido se loguea y se salta; un
// suscriptor problemático no bloquea la entrega al resto.
func (s *NewsletterService) Publish(ctx context.Context, issue Issue) (int, error) {
	addresses, err := s.subscribers.ListConfirmedEmails(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching confirmed subscribers: %w", err)
	}

	delivered := 0
	for _, addr := range addresses {
		parsed, err := domain.ParseSubscriberEmail(addr)
		if err != nil {
			s.logger.Warn("skipping subscriber with invalid stored email",
				zap.Error(err),
			)
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, s.emailTimeout)
		err = s.emailSender.Send(sendCtx, parsed.String(), issue.Title, issue.HTML, issue.Text)
		cancel()
		if err != nil {
			s.logger.Warn("newsletter delivery failed for subscriber",
				zap.Error(err),
				zap.String("email", parsed.String()),
			)
			continue
		}
		delivered++
	}

	return delivered, nil
}
