package db

import "embed"

// Migrations holds one directory of golang-migrate files per SQL dialect.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var Migrations embed.FS
