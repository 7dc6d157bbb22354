package migrations

import "embed"

// FS contiene las migraciones SQL embebidas.
//
//go:embed *.sql
var FS embed.FS
