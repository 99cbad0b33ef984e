// Package migrations embeds the archive schema scripts.
package migrations

import "embed"

// FS holds one directory per driver, each with NNN_name.sql scripts.
//
//go:embed sqlite/*.sql
var FS embed.FS
