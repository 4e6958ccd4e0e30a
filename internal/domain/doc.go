// Package domain contains the core business entities and validation rules
// of the account service. It is independent of any storage or transport.
package domain
