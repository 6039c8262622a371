// Package config loads the backend configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full backend configuration. Every value has a default
// that works for local development.
type Config struct {
	// Path of the SQLite database file
	DBFile string `env:"DB_FILE" envDefault:"data/gorm.db"`

	// Gin mode, one of "debug", "release" or "test"
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	// Log format, "human" forces the console writer. When unset, the
	// format follows the gin mode
	LogFormat string `env:"LOG_FORMAT"`

	// Origins allowed for CORS requests. Supports glob patterns,
	// e.g. "https://*.example.com"
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:" "`

	// Base URL the API is reachable on, used to build resource links
	APIURL string `env:"API_URL" envDefault:"http://localhost:8080"`

	// Serve go pprof profiles under /debug/pprof
	EnablePprof bool `env:"ENABLE_PPROF" envDefault:"false"`

	// Address the HTTP server listens on
	ListenAddress string `env:"LISTEN_ADDRESS" envDefault:":8080"`
}

// Load reads the configuration from the environment. A .env file in
// the working directory is loaded first when present.
func Load() (Config, error) {
	// A missing .env file is fine, every setting has a default
	_ = godotenv.Load()

	var cfg Config
	err := env.Parse(&cfg)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}
