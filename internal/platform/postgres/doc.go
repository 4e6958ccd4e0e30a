// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver, and ships the embedded schema migrations for it.
package postgres
