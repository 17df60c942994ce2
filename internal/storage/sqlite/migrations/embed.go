package migrations

import "embed"

// SQLite schema migrations for the chat log, applied in file name order.
//
//go:embed *.sql
var FS embed.FS
