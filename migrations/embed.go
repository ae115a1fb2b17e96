// Package migrations embeds the versioned schema scripts for each supported
// database dialect.
package migrations

import "embed"

// FS holds one subdirectory per dialect (sqlite, postgres) of NNN_name.sql files.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
