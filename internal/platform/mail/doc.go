// Package mail delivers the application's transactional email. The smtp
// driver sends through gomail; the log driver writes messages to the
// structured log for local development.
package mail
