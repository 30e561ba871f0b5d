// Package migrations embeds the goose SQL migrations. The statements stay
// within the SQL subset shared by Postgres and SQLite so one set serves both
// backends.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
