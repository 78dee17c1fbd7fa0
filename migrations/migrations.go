// Package migrations embeds the SQL schema files so the server binary can
// migrate a fresh database without a checkout next to it.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
