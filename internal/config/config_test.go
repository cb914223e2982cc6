package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"API_URL", "REQUEST_TIMEOUT", "LOG_LEVEL", "LOG_FILE", "TELEGRAM_BOT_TOKEN", "TELEGRAM_SEND_RATE"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 0, cfg.RequestTimeout)
	assert.Equal(t, time.Duration(0), cfg.Timeout())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Empty(t, cfg.TelegramBotToken)
	assert.Equal(t, float64(DefaultTelegramSendRate), cfg.TelegramSendRate)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("API_URL", "https://predict.example.com")
	t.Setenv("REQUEST_TIMEOUT", "15")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_SEND_RATE", "2.5")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://predict.example.com", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "123:abc", cfg.TelegramBotToken)
	assert.Equal(t, 2.5, cfg.TelegramSendRate)
}

func TestFromEnv_UnparsableNumbersFallBack(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("TELEGRAM_SEND_RATE", "fast")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.RequestTimeout)
	assert.Equal(t, float64(DefaultTelegramSendRate), cfg.TelegramSendRate)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{APIURL: "http://localhost:5000", TelegramSendRate: 30}, false},
		{"no scheme", Config{APIURL: "localhost:5000", TelegramSendRate: 30}, true},
		{"ftp scheme", Config{APIURL: "ftp://example.com", TelegramSendRate: 30}, true},
		{"no host", Config{APIURL: "http://", TelegramSendRate: 30}, true},
		{"negative timeout", Config{APIURL: "http://localhost:5000", RequestTimeout: -1, TelegramSendRate: 30}, true},
		{"zero send rate", Config{APIURL: "http://localhost:5000"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
