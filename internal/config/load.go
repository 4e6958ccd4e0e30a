package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment.
// For example, server.port is read from USERHUB_SERVER_PORT.
const EnvPrefix = "USERHUB"

// ConfigFileEnv names the variable that points at an explicit config file.
const ConfigFileEnv = "USERHUB_CONFIG"

// legacyEnvNames maps configuration keys to the unprefixed variable names
// existing deployments already export. The prefixed name always wins.
var legacyEnvNames = map[string]string{
	"server.public_base_url":            "BASE_URL",
	"database.url":                      "DATABASE_URL",
	"auth.jwt_secret":                   "APP_SECRET",
	"auth.reset_token_lifetime_minutes": "TOKEN_EXPIRATION_MINUTES",
	"mail.smtp_host":                    "SMTP_HOST",
	"mail.smtp_port":                    "SMTP_PORT",
	"mail.smtp_user":                    "SMTP_USER",
	"mail.smtp_password":                "SMTP_PASS",
	"redis.url":                         "REDIS_URL",
}

var defaults = map[string]any{
	"server.port":                       8080,
	"server.log_level":                  "info",
	"server.public_base_url":            "http://localhost:8080",
	"server.allowed_origins":            []string{},
	"database.driver":                   "postgres",
	"database.url":                      "",
	"auth.jwt_secret":                   "",
	"auth.token_lifetime_minutes":       60,
	"auth.reset_token_lifetime_minutes": 30,
	"auth.bcrypt_cost":                  10,
	"auth.reset_single_use":             false,
	"mail.driver":                       "smtp",
	"mail.smtp_host":                    "",
	"mail.smtp_port":                    587,
	"mail.smtp_user":                    "",
	"mail.smtp_password":                "",
	"mail.from":                         "no-reply@userhub.local",
	"redis.url":                         "",
}

// Load reads configuration from, in increasing order of precedence,
// built-in defaults, an optional config.yaml, a .env file and the process
// environment. The result is validated before it is returned.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key := range defaults {
		names := []string{envName(key)}
		if legacy, ok := legacyEnvNames[key]; ok {
			names = append(names, legacy)
		}
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
