// Package migrations embeds the PostgreSQL schema migrations.
package migrations

import "embed"

// FS holds the golang-migrate versioned SQL files.
//
//go:embed *.sql
var FS embed.FS
