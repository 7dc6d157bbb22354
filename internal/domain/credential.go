package domain

// Credential es la fila de credenciales tal como vive en la base.
type Credential struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash Secret `json:"-"`
}

// AuthenticatedUser es la identidad efimera producida por el verificador.
// Nunca se persiste.
type AuthenticatedUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
