// Package logger configures the application's structured JSON logger and
// carries request-scoped loggers through context.Context.
//
// Request handlers and stores should log through FromContext so that every
// entry emitted while serving a request carries the same trace fields.
package logger
