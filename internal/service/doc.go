// Package service contains the application's use cases. It orchestrates the
// account store, token service and mail transport to implement account
// management, sessions and password resets.
//
// Error handling principles:
//  1. Expected conditions surface as sentinel errors from domain, store,
//     auth and this package, wrapped with context via fmt.Errorf("%w").
//  2. Callers use errors.Is/errors.As to classify them.
//  3. The API layer maps the classes to HTTP status codes.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete storage or transport implementation.
package service
