package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Participants is the fixed membership of the mailbox router,
	// established once at startup.
	Participants []string
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present and falls back to a
// small default participant set. In production, it panics on missing
// required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),
	}

	// Parse participants (comma-separated IDs)
	if list := os.Getenv("PARTICIPANTS"); list != "" {
		for _, entry := range strings.Split(list, ",") {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				cfg.Participants = append(cfg.Participants, entry)
			}
		}
	}

	// In production, membership must be configured explicitly
	if cfg.Env == "production" {
		if len(cfg.Participants) == 0 {
			panic("PARTICIPANTS is required in production")
		}
	} else if len(cfg.Participants) == 0 {
		cfg.Participants = []string{"agent-1", "agent-2", "agent-3"}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
