package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required,notEmpty"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`
	GitHubToken   string `env:"GITHUB_TOKEN"`
	DeveloperID   string `env:"DEVELOPER_ID"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	LogFile       string `env:"LOG_FILE"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.CommandPrefix == "" {
		return nil, fmt.Errorf("COMMAND_PREFIX must not be empty")
	}
	return &cfg, nil
}

// IsDeveloper reports whether userID is the configured developer.
func (c *Config) IsDeveloper(userID string) bool {
	return c.DeveloperID != "" && c.DeveloperID == userID
}
