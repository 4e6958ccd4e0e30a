package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"     validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// PublicBaseURL is the externally reachable origin used to build
	// the password reset links sent by email.
	PublicBaseURL string `mapstructure:"public_base_url" validate:"required,url"`
	// AllowedOrigins lists the CORS origins accepted by the API.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig defines database connection settings.
type DatabaseConfig struct {
	// Driver selects the backend: postgres or sqlite.
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a PostgreSQL connection string or a SQLite DSN.
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig defines credential and token settings.
type AuthConfig struct {
	// JWTSecret signs session and password reset tokens.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// TokenLifetimeMinutes is the lifetime of a session access token.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"`
	// ResetTokenLifetimeMinutes is the lifetime of a password reset token.
	ResetTokenLifetimeMinutes int `mapstructure:"reset_token_lifetime_minutes" validate:"required,gt=0,lt=10080"`
	// BcryptCost is the work factor used when hashing passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,min=4,max=31"`
	// ResetSingleUse rejects a reset token after its first successful use.
	ResetSingleUse bool `mapstructure:"reset_single_use"`
}

// MailConfig defines outbound email settings.
type MailConfig struct {
	// Driver is smtp for real delivery or log to write messages to the log.
	Driver       string `mapstructure:"driver"        validate:"required,oneof=smtp log"`
	SMTPHost     string `mapstructure:"smtp_host"     validate:"required_if=Driver smtp"`
	SMTPPort     int    `mapstructure:"smtp_port"     validate:"omitempty,gt=0,lt=65536"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	From         string `mapstructure:"from"          validate:"required,email"`
}

// RedisConfig defines the optional Redis connection used for the
// consumed reset token list. Leave URL empty to keep that list in memory.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}
