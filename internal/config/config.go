package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAPIURL           = "http://localhost:5000"
	DefaultLogLevel         = "info"
	DefaultLogFile          = "predictor.log"
	DefaultTelegramSendRate = 30
)

// Config holds all application configuration
type Config struct {
	APIURL           string  `env:"API_URL" envDefault:"http://localhost:5000"`
	RequestTimeout   int     `env:"REQUEST_TIMEOUT" envDefault:"0"` // seconds, 0 disables the client timeout
	LogLevel         string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFile          string  `env:"LOG_FILE" envDefault:"predictor.log"`
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN"`
	TelegramSendRate float64 `env:"TELEGRAM_SEND_RATE" envDefault:"30"` // messages per second
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	return FromEnv()
}

// FromEnv reads the configuration from the process environment only
func FromEnv() (*Config, error) {
	var cfg Config

	cfg.APIURL = getEnvWithDefault("API_URL", DefaultAPIURL)
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 0)
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", DefaultLogLevel)
	cfg.LogFile = getEnvWithDefault("LOG_FILE", DefaultLogFile)
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramSendRate = getEnvFloatWithDefault("TELEGRAM_SEND_RATE", DefaultTelegramSendRate)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API_URL value: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API_URL value %q: expected http(s)://host[:port]", c.APIURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid REQUEST_TIMEOUT value %d: must not be negative", c.RequestTimeout)
	}
	if c.TelegramSendRate <= 0 {
		return fmt.Errorf("invalid TELEGRAM_SEND_RATE value %v: must be positive", c.TelegramSendRate)
	}
	return nil
}

// Timeout returns the HTTP client timeout; zero means none
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
