package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "docs", cfg.Docs.Dir)
	assert.Equal(t, "http://localhost:3000/api/chat", cfg.Chat.URL)
	assert.Empty(t, cfg.Chat.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Chat.Timeout)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 2.0, cfg.RateLimit.RPS)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AIWIKI_HOST", "127.0.0.1")
	t.Setenv("AIWIKI_PORT", "9001")
	t.Setenv("AIWIKI_DOCS_DIR", "/srv/docs")
	t.Setenv("AIWIKI_CHAT_URL", "https://chat.example.com/api")
	t.Setenv("AIWIKI_CHAT_API_KEY", "k-123")
	t.Setenv("AIWIKI_CHAT_TIMEOUT", "5")
	t.Setenv("AIWIKI_RATE_LIMIT_ENABLED", "true")
	t.Setenv("AIWIKI_RATE_LIMIT_RPS", "10")
	t.Setenv("AIWIKI_RATE_LIMIT_BURST", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "/srv/docs", cfg.Docs.Dir)
	assert.Equal(t, "https://chat.example.com/api", cfg.Chat.URL)
	assert.Equal(t, "k-123", cfg.Chat.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Chat.Timeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}
