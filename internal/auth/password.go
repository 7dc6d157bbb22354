package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"newsletter-api/internal/domain"
)

// Parámetros Argon2id usados para hashes nuevos.
const (
	argonTime    = 2
	argonMemory  = 15 * 1024 // 15 MiB
	argonThreads = 1
	argonKeyLen  = 32
	argonSaltLen = 16
)

var (
	// ErrPasswordMismatch indica que la contraseña no coincide con el hash.
	ErrPasswordMismatch = errors.New("password does not match stored hash")
	// ErrMalformedHash indica que el hash almacenado no es PHC Argon2id válido.
	ErrMalformedHash = errors.New("stored password hash is malformed")
)

// HashPassword genera un hash Argon2id en formato PHC.
func HashPassword(password domain.Secret) (domain.Secret, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password.Expose()), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	phc := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return domain.Secret(phc), nil
}

// VerifyPassword compara una contraseña candidata contra un hash PHC Argon2id.
// La comparación del digest es de tiempo constante.
func VerifyPassword(candidate, stored domain.Secret) error {
	parts := strings.Split(stored.Expose(), "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return ErrMalformedHash
	}

	var memory, time uint32
	var threads uint8
	if n, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil || n != 3 {
		return ErrMalformedHash
	}
	if memory == 0 || time == 0 || threads == 0 {
		return ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrMalformedHash
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return ErrMalformedHash
	}

	computed := argon2.IDKey([]byte(candidate.Expose()), salt, time, memory, threads, uint32(len(expected)))
	if subtle.ConstantTimeCompare(computed, expected) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
