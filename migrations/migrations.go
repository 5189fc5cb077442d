// Package migrations embeds the schema files for the SQL storage backends.
package migrations

import "embed"

// FS holds one sub-directory per SQL dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
