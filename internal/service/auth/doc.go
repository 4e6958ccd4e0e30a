// Package auth issues and verifies the signed tokens used for sessions and
// password resets, compares password hashes, and tracks redeemed reset tokens.
package auth
