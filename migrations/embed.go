// Package migrations embeds the SQL schema migrations for the local SQLite
// store and the Postgres catalog.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
