// Package sqlite implements the store interfaces on an embedded SQLite
// database through the pure Go modernc.org/sqlite driver. It backs local
// development, single-node deployments and the end-to-end test suite.
package sqlite
