// Package config provides functionality for managing configuration
// options for the application using command-line flags, environment
// variables and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the database connection string.
	DatabaseDSN string

	// OIDCIssuer is the discovery URL of the external identity provider.
	OIDCIssuer string

	// OIDCClientID is the audience expected in verified tokens.
	OIDCClientID string

	// AuthDisabled switches the server to trusting the X-User-Id header.
	// Local development only.
	AuthDisabled bool

	// LogLevel sets the zap logging level ("debug", "info", ...).
	LogLevel string

	// Config is the path to the config file.
	Config string
}

var options = &Options{}

func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.LogLevel, "l", "info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses command-line flags, the optional config file and
// environment variables (highest precedence) and returns the resulting
// Options.
func Parse() *Options {
	// A missing .env file is fine; env vars may come from the host.
	_ = godotenv.Load()

	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Addr = addr
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if issuer := os.Getenv("OIDC_ISSUER"); issuer != "" {
		options.OIDCIssuer = issuer
	}
	if clientID := os.Getenv("OIDC_CLIENT_ID"); clientID != "" {
		options.OIDCClientID = clientID
	}
	if os.Getenv("AUTH_DISABLED") == "true" {
		options.AuthDisabled = true
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
