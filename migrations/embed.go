// Package migrations embeds the goose SQL migrations so the binary can apply them at start.
package migrations

import "embed"

// Dir is the directory inside FS holding the goose migrations.
const Dir = "goose_sql"

//go:embed goose_sql/*.sql
var FS embed.FS
