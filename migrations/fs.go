// Package migrations embebe los scripts SQL de goose.
package migrations

import "embed"

// FS contiene las migraciones *.sql.
//
//go:embed *.sql
var FS embed.FS
