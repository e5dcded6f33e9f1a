// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. A .env file in the working directory (loaded into the environment)
//  2. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  3. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the registrations CSV file.
	// The file is created (with a header row) on the first registration.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// HTTPServer is embedded (not a pointer) so its fields are accessible
	// directly on Config:  cfg.HTTPServer.Addr  or after promotion cfg.Addr
	HTTPServer `yaml:"http_server"`

	// Mail holds the outbound notification settings.
	Mail Mail `yaml:"mail"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// Mail holds the delivery parameters for the admin notification email.
// Injected into the mailer at construction time so tests (and local
// runs with enabled: false) never touch a real SMTP server.
//
// The password has no yaml key on purpose: credentials belong in the
// environment (or a git-ignored .env file), never in a checked-in file.
type Mail struct {
	// Enabled selects the real SMTP mailer. When false the service
	// logs each would-be notification instead of sending it.
	Enabled bool `yaml:"enabled" env:"MAIL_ENABLED" env-default:"false"`

	// Host and Port identify the mail-submission endpoint.
	// Port 465 is implicit TLS (SMTPS); that is the only mode used.
	Host string `yaml:"host" env:"MAIL_HOST" env-default:"smtp.gmail.com"`
	Port int    `yaml:"port" env:"MAIL_PORT" env-default:"465"`

	// Sender doubles as the SMTP username.
	Sender    string `yaml:"sender" env:"MAIL_SENDER"`
	Password  string `env:"MAIL_PASSWORD"`
	Recipient string `yaml:"recipient" env:"MAIL_RECIPIENT"`

	// Timeout bounds the whole dial+auth+send exchange. Env-only:
	// yaml.v3 cannot decode duration strings into time.Duration.
	Timeout time.Duration `env:"MAIL_TIMEOUT" env-default:"10s"`
}

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error — if this function returns, the config is valid.
func MustLoad() *Config {
	// A .env file is optional — when the variables come from the real
	// environment (Docker, CI) there is nothing to load.
	_ = godotenv.Load()

	var configPath string

	// ── Source 1: environment variable ───────────────────────────────
	// Useful in Docker / Kubernetes where env vars are the standard way
	// to pass config to a container.
	configPath = os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	// Useful when running locally:
	//   go run ./cmd/registrations-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	// Neither source provided a path — we cannot continue.
	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	// Verify the file exists before trying to read it, so the operator
	// gets a clear message rather than a cryptic "open: no such file".
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// and validates env-required:"true" constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
