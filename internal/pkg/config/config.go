package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// HostURL is the public base URL embedded in activation links.
	HostURL string `env:"HOST_URL, default=http://localhost:8080"`
	// TokenExpirationHours bounds registration token age at redemption time.
	TokenExpirationHours int `env:"TOKEN_EXPIRATION_HOURS, default=24"`

	Mongo MongoConfig
	Redis RedisConfig
	Email EmailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shop"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type EmailConfig struct {
	From         string `env:"EMAIL_DEFAULT_FROM, default=noreply@localhost"`
	SMTPHost     string `env:"SMTP_HOST, default=localhost"`
	SMTPPort     int    `env:"SMTP_PORT, default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	// Workers sizes the delivery worker pool.
	Workers int `env:"MAIL_WORKERS, default=4"`
}

// TokenTTL returns the registration token expiry window as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenExpirationHours) * time.Hour
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
