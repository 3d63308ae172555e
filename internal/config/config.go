// Package config builds the environment-provided configuration for one run.
// The value is constructed once at process start and passed by parameter so
// the aggregation core never reads the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kei-arima/github-contrib-tracker/internal/domain"
)

// Config holds the settings required to talk to GitHub.
type Config struct {
	Token    string
	Username string
}

// Load reads configuration from the environment, honoring a .env file in the
// working directory when present. It fails fast, before any fetch is
// attempted, naming every missing variable.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Token:    os.Getenv("GITHUB_TOKEN"),
		Username: os.Getenv("GITHUB_USERNAME"),
	}

	var missing []string
	if cfg.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if cfg.Username == "" {
		missing = append(missing, "GITHUB_USERNAME")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", domain.ErrMissingConfig, strings.Join(missing, ", "))
	}
	return cfg, nil
}
