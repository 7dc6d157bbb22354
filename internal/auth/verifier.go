package auth

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"newsletter-api/internal/domain"
	"newsletter-api/internal/repository"
)

// ErrInvalidCredentials cubre tanto usuario desconocido como contraseña
// incorrecta; ambos casos deben ser indistinguibles hacia afuera.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Hash PHC fijo contra el que se verifica cuando el usuario no existe,
// para que el costo del camino "usuario desconocido" sea el mismo que el
// de "contraseña incorrecta". Usa los mismos parámetros que los hashes
// reales; el digest nunca coincide con candidata alguna.
const fallbackHash = domain.Secret(
	"$argon2id$v=19$m=15360,t=2,p=1" +
		"$2NBtEJzIl4Qko4ofMCXmsw" +
		"$hhMdFMMNfuzCYfePfEBTYN9lJzIONRSJDejFhAYyHcs",
)

// Verifier valida credenciales contra el almacén. La verificación del hash
// es CPU-intensiva y corre en un pool acotado de workers para no bloquear
// las goroutines que atienden requests.
type Verifier struct {
	logger      *zap.Logger
	credentials repository.CredentialRepository
	workers     chan struct{}
}

func NewVerifier(logger *zap.Logger, credentials repository.CredentialRepository) *Verifier {
	return &Verifier{
		logger:      logger,
		credentials: credentials,
		workers:     make(chan struct{}, runtime.GOMAXPROCS(0)),
	}
}

// Verify busca la credencial almacenada y compara la contraseña candidata.
// Usuario desconocido y contraseña incorrecta devuelven ErrInvalidCredentials;
// un hash almacenado corrupto o un fallo del almacén son errores internos.
func (v *Verifier) Verify(ctx context.Context, username string, password domain.Secret) (domain.AuthenticatedUser, error) {
	storedHash := fallbackHash
	known := false

	cred, err := v.credentials.GetByUsername(ctx, username)
	switch {
	case err == nil:
		known = true
		storedHash = cred.PasswordHash
	case errors.Is(err, pgx.ErrNoRows):
		// Se sigue verificando contra el hash de respaldo.
	default:
		return domain.AuthenticatedUser{}, fmt.Errorf("querying stored credentials: %w", err)
	}

	if err := v.verifyOnWorker(ctx, password, storedHash); err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			return domain.AuthenticatedUser{}, ErrInvalidCredentials
		case errors.Is(err, ErrMalformedHash):
			if !known {
				// El hash de respaldo no parsea: bug de este paquete.
				return domain.AuthenticatedUser{}, fmt.Errorf("verifying fallback hash: %w", err)
			}
			v.logger.Error("stored password hash is corrupted", zap.String("username", username))
			return domain.AuthenticatedUser{}, fmt.Errorf("parsing stored password hash: %w", err)
		default:
			return domain.AuthenticatedUser{}, err
		}
	}

	if !known {
		return domain.AuthenticatedUser{}, ErrInvalidCredentials
	}

	return domain.AuthenticatedUser{
		UserID:   cred.UserID,
		Username: cred.Username,
	}, nil
}

// verifyOnWorker ejecuta la comparación en el pool acotado. Si el contexto
// se cancela, la verificación en curso corre hasta completarse; no deja
// estado parcial.
func (v *Verifier) verifyOnWorker(ctx context.Context, candidate, stored domain.Secret) error {
	done := make(chan error, 1)

	go func() {
		v.workers <- struct{}{}
		defer func() { <-v.workers }()
		done <- VerifyPassword(candidate, stored)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
