package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"newsletter-api/internal/domain"
	"newsletter-api/internal/email"
	"newsletter-api/internal/repository"
)

// SubscriptionService coordina el alta con doble opt-in y la confirmación.
type SubscriptionService struct {
	logger       *zap.Logger
	subscribers  repository.SubscriberRepository
	emailSender  email.Sender
	baseURL      string
	emailTimeout time.Duration
}

var (
	ErrInvalidSubscriber = errors.New("invalid subscriber data")
	ErrEmailSend         = errors.New("confirmation email send failed")
	ErrTokenMissing      = errors.New("subscription token missing")
	ErrTokenUnknown      = errors.New("subscription token unknown")
)

func NewSubscriptionService(
	logger *zap.Logger,
	subscribers repository.SubscriberRepository,
	emailSender email.Sender,
	baseURL string,
	emailTimeout time.Duration,
) *SubscriptionService {
	if emailTimeout <= 0 {
		emailTimeout = 10 * time.Second
	}
	return &SubscriptionService{
		logger:       logger,
		subscribers:  subscribers,
		emailSender:  emailSender,
		baseURL:      strings.TrimRight(baseURL, "/"),
		emailTimeout: emailTimeout,
	}
}

type SignupInput struct {
	Name  string
	Email string
}

// Signup inserta el suscriptor en estado pending_confirmation junto con su
// token, en una sola transacción, y recién después envía el correo de
// confirmación. Un fallo del envío no revierte las filas ya confirmadas:
// el suscriptor queda pendiente y puede recibir un reenvío.
func (s *SubscriptionService) Signup(ctx context.Context, input SignupInput) (domain.Subscriber, error) {
	name, err := domain.ParseSubscriberName(input.Name)
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("%w: %v", ErrInvalidSubscriber, err)
	}
	emailAddr, err := domain.ParseSubscriberEmail(input.Email)
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("%w: %v", ErrInvalidSubscriber, err)
	}

	sub := domain.Subscriber{
		ID:           uuid.NewString(),
		Email:        emailAddr.String(),
		Name:         name.String(),
		SubscribedAt: time.Now().UTC(),
		Status:       domain.StatusPendingConfirmation,
	}

	token, err := GenerateSubscriptionToken()
	if err != nil {
		return domain.Subscriber{}, fmt.Errorf("generating subscription token: %w", err)
	}

	if err := s.subscribers.CreateWithToken(ctx, sub, token); err != nil {
		if repository.IsUniqueViolation(err) {
			s.logger.Warn("duplicate subscription attempt",
				zap.String("email", sub.Email),
			)
		}
		return domain.Subscriber{}, fmt.Errorf("storing new subscriber: %w", err)
	}

	if err := s.sendConfirmationEmail(ctx, sub.Email, token); err != nil {
		s.logger.Error("send confirmation email failed",
			zap.Error(err),
			zap.String("subscriber_id", sub.ID),
		)
		return sub, fmt.Errorf("%w: %v", ErrEmailSend, err)
	}

	return sub, nil
}

func (s *SubscriptionService) sendConfirmationEmail(ctx context.Context, recipient, token string) error {
	link := fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", s.baseURL, token)
	htmlBody := fmt.Sprintf(
		"Welcome to our newsletter!<br />Click <a href=\"%s\">here</a> to confirm your subscription.",
		link,
	)
	textBody := fmt.Sprintf(
		"Welcome to our newsletter!\nVisit %s to confirm your subscription.",
		link,
	)

	sendCtx, cancel := context.WithTimeout(ctx, s.emailTimeout)
	defer cancel()
	return s.emailSender.Send(sendCtx, recipient, "Welcome!", htmlBody, textBody)
}

// Confirm canjea un token y marca al suscriptor como confirmado. La
// operación es idempotente: confirmar dos veces con el mismo token no
// es un error y el estado final es confirmed.
func (s *SubscriptionService) Confirm(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrTokenMissing
	}

	id, err := s.subscribers.GetIDByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTokenUnknown
		}
		return fmt.Errorf("looking up subscription token: %w", err)
	}

	if err := s.subscribers.MarkConfirmed(ctx, id); err != nil {
		return fmt.Errorf("confirming subscriber: %w", err)
	}
	return nil
}
