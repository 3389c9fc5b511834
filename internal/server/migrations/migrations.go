// Package migrations embeds the goose SQL migrations for the server schema.
package migrations

import "embed"

// Migrations holds the ordered, reversible schema scripts.
//
//go:embed *.sql
var Migrations embed.FS
