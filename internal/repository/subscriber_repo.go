package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsletter-api/internal/domain"
)

// SubscriberRepository define el contrato de persistencia para suscriptores
// y sus tokens de confirmación.
type SubscriberRepository interface {
	CreateWithToken(ctx context.Context, sub domain.Subscriber, token string) error
	GetByEmail(ctx context.Context, email string) (domain.Subscriber, error)
	GetIDByToken(ctx context.Context, token string) (string, error)
	MarkConfirmed(ctx context.Context, id string) error
	ListConfirmedEmails(ctx context.Context) ([]string, error)
}

// PgSubscriberRepository implementa SubscriberRepository usando pgxpool.
type PgSubscriberRepository struct {
	pool *pgxpool.Pool
}

func NewPgSubscriberRepository(pool *pgxpool.Pool) *PgSubscriberRepository {
	return &PgSubscriberRepository{pool: pool}
}

// CreateWithToken inserta el suscriptor y su token en una sola transacción;
// si cualquiera de los dos inserts falla no queda fila alguna.
func (r *PgSubscriberRepository) CreateWithToken(ctx context.Context, sub domain.Subscriber, token string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertSubscriber = `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, insertSubscriber,
		sub.ID,
		sub.Email,
		sub.Name,
		sub.SubscribedAt,
		sub.Status,
	); err != nil {
		return err
	}

	const insertToken = `
		INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, insertToken, token, sub.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PgSubscriberRepository) GetByEmail(ctx context.Context, email string) (domain.Subscriber, error) {
	const query = `
		SELECT id, email, name, subscribed_at, status
		FROM subscriptions
		WHERE email = $1
	`
	var s domain.Subscriber
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&s.ID,
		&s.Email,
		&s.Name,
		&s.SubscribedAt,
		&s.Status,
	)
	if err != nil {
		return domain.Subscriber{}, err
	}
	return s, nil
}

func (r *PgSubscriberRepository) GetIDByToken(ctx context.Context, token string) (string, error) {
	const query = `
		SELECT subscriber_id
		FROM subscription_tokens
		WHERE subscription_token = $1
	`
	var id string
	if err := r.pool.QueryRow(ctx, query, token).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// MarkConfirmed es idempotente: confirmar un suscriptor ya confirmado
// no es un error.
func (r *PgSubscriberRepository) MarkConfirmed(ctx context.Context, id string) error {
	const query = `
		UPDATE subscriptions
		SET status = $1
		WHERE id = $2
	`
	_, err := r.pool.Exec(ctx, query, domain.StatusConfirmed, id)
	return err
}

func (r *PgSubscriberRepository) ListConfirmedEmails(ctx context.Context) ([]string, error) {
	const query = `
		SELECT email
		FROM subscriptions
		WHERE status = $1
	`
	rows, err := r.pool.Query(ctx, query, domain.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// IsUniqueViolation indica si el error proviene de una restricción UNIQUE.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
