package config

import (
	"fmt"

	pkgconfig "github.com/utafrali/ProfileGo/pkg/config"
)

// Config holds all configuration for the profile service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"PROFILE_HTTP_PORT" envDefault:"8007"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"profile"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"profile_secret"`
	PostgresDB   string `env:"PROFILE_DB_NAME" envDefault:"profile_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      string `env:"CUSTOMER_CACHE_TTL" envDefault:"5m"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// JWT
	JWTSecret       string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTAccessExpiry string `env:"JWT_ACCESS_TOKEN_EXPIRY" envDefault:"15m"`

	// Password lifecycle
	TokenExpiredMinutes int    `env:"TOKEN_EXPIRED_MINUTES" envDefault:"30"`
	PasswordTokenLength int    `env:"PASSWORD_TOKEN_LENGTH" envDefault:"22"`
	BcryptCost          int    `env:"BCRYPT_COST" envDefault:"12"`
	ResetPasswordURL    string `env:"RESET_PASSWORD_URL" envDefault:"http://localhost:3000/reset-password"`

	// Email
	EmailFromAddress string `env:"EMAIL_FROM_ADDRESS" envDefault:"noreply@localhost"`
	SMTPHost         string `env:"SMTP_HOST" envDefault:""`
	SMTPPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername     string `env:"SMTP_USERNAME" envDefault:""`
	SMTPPassword     string `env:"SMTP_PASSWORD" envDefault:""`
	SMTPTLS          bool   `env:"SMTP_TLS" envDefault:"true"`

	// Tracing
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSample    float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load profile config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.PasswordTokenLength < 8 {
		return nil, fmt.Errorf("PASSWORD_TOKEN_LENGTH must be at least 8, got %d", cfg.PasswordTokenLength)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == "change-this-to-a-secure-secret" {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
	}

	return cfg, nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}
