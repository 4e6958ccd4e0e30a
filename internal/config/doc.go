// Package config loads, parses and validates application settings from
// defaults, an optional YAML file, a .env file and environment variables.
package config
