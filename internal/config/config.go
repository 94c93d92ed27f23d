// Package config loads memora settings from MEMORA_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/naveenspark/memora/pkg/domain"
)

// Config is the full client configuration.
type Config struct {
	APIURL         string        `env:"MEMORA_API_URL" envDefault:"http://localhost:5000"`
	WebURL         string        `env:"MEMORA_WEB_URL"`
	Difficulty     string        `env:"MEMORA_DIFFICULTY" envDefault:"easy"`
	Theme          string        `env:"MEMORA_THEME" envDefault:"animals"`
	StatsPath      string        `env:"MEMORA_STATS_PATH"`
	Sound          bool          `env:"MEMORA_SOUND" envDefault:"true"`
	NATSURL        string        `env:"MEMORA_NATS_URL"`
	NATSSubject    string        `env:"MEMORA_NATS_SUBJECT" envDefault:"memora.events"`
	LogFile        string        `env:"MEMORA_LOG_FILE"`
	RequestTimeout time.Duration `env:"MEMORA_REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment and fills path defaults under ~/.memora.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StatsPath == "" {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		cfg.StatsPath = filepath.Join(dir, "stats.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server would not accept.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("MEMORA_API_URL is required")
	}
	if !domain.ValidDifficulty(c.Difficulty) {
		return fmt.Errorf("MEMORA_DIFFICULTY %q: want one of %s", c.Difficulty, strings.Join(domain.Difficulties, ", "))
	}
	if !domain.ValidTheme(c.Theme) {
		return fmt.Errorf("MEMORA_THEME %q: want one of %s", c.Theme, strings.Join(domain.Themes, ", "))
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("MEMORA_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// BrowserURL is the page opened by the "open web" key: MEMORA_WEB_URL when
// set, otherwise the API host itself.
func (c Config) BrowserURL() string {
	if c.WebURL != "" {
		return c.WebURL
	}
	return c.APIURL
}

// Dir returns ~/.memora.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".memora"), nil
}
