package migrations

import "embed"

// FS holds the SQL migrations applied by database.AutoMigrate.
//
//go:embed *.sql
var FS embed.FS
