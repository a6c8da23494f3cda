// Package migrations embeds the goose migrations for every supported
// dialect. Each dialect lives in its own directory of the embedded FS.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Dir returns the directory inside Migrations holding the given dialect's files.
func Dir(dialect string) string {
	if dialect == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
