package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Link     LinkConfig
	Issuer   IssuerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// LinkConfig holds one-time token and exchange policy
type LinkConfig struct {
	// RedeemBaseURL is the fixed base the issued token is embedded into,
	// e.g. https://auth.example.com/auth/redeem
	RedeemBaseURL string
	// SignInURL is where failed redemptions are redirected with ?error=<reason>
	SignInURL string
	// TokenTTL bounds how long an unredeemed token stays valid
	TokenTTL time.Duration
	// TokenRetention bounds how long token rows are kept before cleanup
	TokenRetention time.Duration
	// LinkRetention bounds how long correlation records are kept
	LinkRetention time.Duration
	// RecentConsumptionWindow is the elevated-trust window after a redemption
	RecentConsumptionWindow time.Duration
	// PollAttempts and PollInterval bound the correlation lookup retries
	PollAttempts int
	PollInterval time.Duration
	// CleanupInterval drives the background retention job
	CleanupInterval time.Duration
}

// IssuerConfig holds credential issuer configuration
type IssuerConfig struct {
	// Mode selects the in-process dev issuer or an external webhook issuer
	Mode string
	// WebhookURL is the external issuer endpoint when Mode is "webhook"
	WebhookURL string
	// VerifyBaseURL is the base the dev issuer builds artifact URLs against
	VerifyBaseURL string
	// CallbackSecret guards the verification-link callback endpoint
	CallbackSecret string
	// SigningSecret signs dev-issuer artifacts
	SigningSecret string
	// ArtifactTTL is the expiry window of a generated verification link
	ArtifactTTL time.Duration
	// DevDelay simulates the out-of-process write gap in dev mode
	DevDelay time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "passlink"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Link: LinkConfig{
			RedeemBaseURL:           getEnv("LINK_REDEEM_BASE_URL", "http://localhost:8080/auth/redeem"),
			SignInURL:               getEnv("LINK_SIGNIN_URL", "http://localhost:3000/signin"),
			TokenTTL:                getEnvAsDuration("LINK_TOKEN_TTL", 24*time.Hour),
			TokenRetention:          getEnvAsDuration("LINK_TOKEN_RETENTION", 7*24*time.Hour),
			LinkRetention:           getEnvAsDuration("LINK_RETENTION", time.Hour),
			RecentConsumptionWindow: getEnvAsDuration("LINK_RECENT_CONSUMPTION_WINDOW", 5*time.Minute),
			PollAttempts:            getEnvAsInt("LINK_POLL_ATTEMPTS", 5),
			PollInterval:            getEnvAsDuration("LINK_POLL_INTERVAL", 50*time.Millisecond),
			CleanupInterval:         getEnvAsDuration("LINK_CLEANUP_INTERVAL", 10*time.Minute),
		},
		Issuer: IssuerConfig{
			Mode:           getEnv("ISSUER_MODE", "dev"),
			WebhookURL:     getEnv("ISSUER_WEBHOOK_URL", ""),
			VerifyBaseURL:  getEnv("ISSUER_VERIFY_BASE_URL", "http://localhost:8080/auth/verify"),
			CallbackSecret: getEnv("ISSUER_CALLBACK_SECRET", "change-this-in-production"),
			SigningSecret:  getEnv("ISSUER_SIGNING_SECRET", "change-this-in-production"),
			ArtifactTTL:    getEnvAsDuration("ISSUER_ARTIFACT_TTL", 5*time.Minute),
			DevDelay:       getEnvAsDuration("ISSUER_DEV_DELAY", 20*time.Millisecond),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
