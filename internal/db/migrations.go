// Package db holds the ledger schema and its sqlc-generated accessors.
package db

import "embed"

// MigrationsDir is the directory inside Migrations that holds the goose files
const MigrationsDir = "migrations"

// Migrations embeds the goose migrations so cmd/migrate runs from any directory
//
//go:embed migrations/*.sql
var Migrations embed.FS
