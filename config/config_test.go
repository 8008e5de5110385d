package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "development", AppConfig.Env)
	assert.Equal(t, 5, AppConfig.PollIntervalSeconds)
	assert.Equal(t, "localhost:6379", AppConfig.RedisAddr)
	assert.False(t, IsProduction())
}

func TestLoadConfigReadsEnvOnlyKeys(t *testing.T) {
	// Every key must unmarshal from the environment alone, JWT_SECRET
	// included, with no config file present.
	t.Setenv("JWT_SECRET", "super-secret-from-env")
	t.Setenv("VENUE_API_BASE_URL", "http://upstream:9000")
	t.Setenv("POLL_INTERVAL_SECONDS", "3")

	LoadConfig()

	assert.Equal(t, "super-secret-from-env", AppConfig.JWTSecret)
	assert.Equal(t, "http://upstream:9000", AppConfig.VenueAPIBaseURL)
	assert.Equal(t, 3, AppConfig.PollIntervalSeconds)
}

func TestPollInterval(t *testing.T) {
	orig := AppConfig.PollIntervalSeconds
	defer func() { AppConfig.PollIntervalSeconds = orig }()

	AppConfig.PollIntervalSeconds = 7
	assert.Equal(t, 7*time.Second, PollInterval())

	// Zero or negative falls back to the 5 second default.
	AppConfig.PollIntervalSeconds = 0
	assert.Equal(t, 5*time.Second, PollInterval())
}
