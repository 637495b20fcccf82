package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process-wide dashboard configuration. It is fixed at
// startup and passed explicitly to the server construction; nothing mutates
// it afterwards.
type Config struct {
	Server    ServerConfig
	Docs      DocsConfig
	Chat      ChatConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type DocsConfig struct {
	// Dir is the documentation directory read on every request,
	// relative to the working directory unless absolute.
	Dir string
}

type ChatConfig struct {
	// URL of the remote chat service the /ask endpoint forwards to.
	URL string
	// APIKey is sent as x-api-key when set.
	APIKey string
	// Timeout bounds the single outbound request.
	Timeout time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Load reads configuration from environment variables and an optional .env
// file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("AIWIKI_HOST", "0.0.0.0")
	viper.SetDefault("AIWIKI_PORT", "8000")
	viper.SetDefault("AIWIKI_DOCS_DIR", "docs")
	viper.SetDefault("AIWIKI_CHAT_URL", "http://localhost:3000/api/chat")
	viper.SetDefault("AIWIKI_CHAT_TIMEOUT", 30)
	viper.SetDefault("AIWIKI_RATE_LIMIT_ENABLED", false)
	viper.SetDefault("AIWIKI_RATE_LIMIT_RPS", 2.0)
	viper.SetDefault("AIWIKI_RATE_LIMIT_BURST", 5)

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("AIWIKI_HOST"),
			Port: viper.GetString("AIWIKI_PORT"),
		},
		Docs: DocsConfig{
			Dir: viper.GetString("AIWIKI_DOCS_DIR"),
		},
		Chat: ChatConfig{
			URL:     viper.GetString("AIWIKI_CHAT_URL"),
			APIKey:  viper.GetString("AIWIKI_CHAT_API_KEY"),
			Timeout: time.Duration(viper.GetInt("AIWIKI_CHAT_TIMEOUT")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled: viper.GetBool("AIWIKI_RATE_LIMIT_ENABLED"),
			RPS:     viper.GetFloat64("AIWIKI_RATE_LIMIT_RPS"),
			Burst:   viper.GetInt("AIWIKI_RATE_LIMIT_BURST"),
		},
	}
	return cfg, nil
}
