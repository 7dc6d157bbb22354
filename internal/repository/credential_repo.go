package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"newsletter-api/internal/domain"
)

// CredentialRepository define el contrato de persistencia para credenciales.
type CredentialRepository interface {
	GetByUsername(ctx context.Context, username string) (domain.Credential, error)
}

// PgCredentialRepository implementa CredentialRepository usando pgxpool.
type PgCredentialRepository struct {
	pool *pgxpool.Pool
}

func NewPgCredentialRepository(pool *pgxpool.Pool) *PgCredentialRepository {
	return &PgCredentialRepository{pool: pool}
}

func (r *PgCredentialRepository) GetByUsername(ctx context.Context, username string) (domain.Credential, error) {
	const query = `
		SELECT user_id, username, password_hash
		FROM users
		WHERE username = $1
	`
	var (
		cred domain.Credential
		hash string
	)
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&cred.UserID,
		&cred.Username,
		&hash,
	)
	if err != nil {
		return domain.Credential{}, err
	}
	cred.PasswordHash = domain.Secret(hash)
	return cred, nil
}
