package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Scraper  ScraperConfig
	Postmark PostmarkConfig
	Breaker  BreakerConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=catalog_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type ScraperConfig struct {
	URL     string        `env:"SCRAPER_URL, default=http://localhost:5000"`
	Timeout time.Duration `env:"SCRAPER_TIMEOUT, default=30s"`
}

type PostmarkConfig struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	From         string `env:"MAIL_FROM, default=contact@casa-moreno.com"`
	ResetBaseURL string `env:"RESET_BASE_URL, default=https://casa-moreno.com"`
}

type BreakerConfig struct {
	FailureThreshold int           `env:"BREAKER_FAILURE_THRESHOLD, default=5"`
	SuccessThreshold int           `env:"BREAKER_SUCCESS_THRESHOLD, default=2"`
	RecoveryTimeout  time.Duration `env:"BREAKER_RECOVERY_TIMEOUT,  default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
