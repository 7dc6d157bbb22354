package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"newsletter-api/internal/domain"
)

// BasicChallenge es el valor del header WWW-Authenticate para rechazos.
const BasicChallenge = `Basic realm="publish"`

// BasicCredentials son las credenciales decodificadas del header Authorization.
type BasicCredentials struct {
	Username string
	Password domain.Secret
}

// ErrMissingCredentials agrupa todo header ausente o malformado; el cliente
// debe reintentar con credenciales Basic.
var ErrMissingCredentials = errors.New("missing or malformed basic credentials")

// ParseBasicAuth decodifica un header Authorization con esquema Basic.
// La contraseña puede contener ':'; solo el primer separador divide.
func ParseBasicAuth(header string) (BasicCredentials, error) {
	if header == "" {
		return BasicCredentials{}, ErrMissingCredentials
	}

	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return BasicCredentials{}, ErrMissingCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return BasicCredentials{}, ErrMissingCredentials
	}
	if !utf8.Valid(decoded) {
		return BasicCredentials{}, ErrMissingCredentials
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return BasicCredentials{}, ErrMissingCredentials
	}

	return BasicCredentials{
		Username: username,
		Password: domain.Secret(password),
	}, nil
}
