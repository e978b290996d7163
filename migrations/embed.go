// Package migrations embeds the versioned schema migrations for both storage
// backends. Files follow the NNN_name.sql convention consumed by
// internal/migration.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
