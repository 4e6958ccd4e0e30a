// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the account and session services
// and maps every service error to exactly one response.
package api
