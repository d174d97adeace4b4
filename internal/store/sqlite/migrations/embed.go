package migrations

import "embed"

// FS contains embedded SQLite migrations for automaton storage.
//
//go:embed *.sql
var FS embed.FS
