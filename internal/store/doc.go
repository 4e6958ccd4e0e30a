// Package store defines the persistence contracts of the application and
// the helpers shared by its database backends: sentinel errors, the DBTX
// abstraction over connections and transactions, transaction execution,
// and password hashing.
//
// Concrete implementations live under internal/platform (postgres, sqlite).
package store
