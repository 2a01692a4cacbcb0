// Package migrations embeds the SQL schema migrations applied by
// internal/migration.Runner, grouped by backend the way the teacher's own
// embedded migrations tree is laid out.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
