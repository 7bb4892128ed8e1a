// Package config loads banter settings. Values are layered: built-in
// defaults, then an optional YAML file, then a .env file, then BANTER_*
// environment variables. Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/fwojciec/banter"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultEndpoint = "http://127.0.0.1:5000"
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "info"
	DefaultEnvFile  = ".env"
)

// Environment variable names.
const (
	EnvEndpoint  = "BANTER_ENDPOINT"
	EnvTimeout   = "BANTER_TIMEOUT"
	EnvGreeting  = "BANTER_GREETING"
	EnvLogFile   = "BANTER_LOG_FILE"
	EnvLogLevel  = "BANTER_LOG_LEVEL"
	EnvAltScreen = "BANTER_ALT_SCREEN"
)

// Config holds client settings.
type Config struct {
	// Endpoint is the chat service base URL. Turns are posted to Endpoint/chat.
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	// Greeting opens the conversation. Empty disables it.
	Greeting  string `yaml:"greeting"`
	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level"`
	AltScreen bool   `yaml:"alt_screen"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Timeout:  DefaultTimeout,
		Greeting: banter.DefaultGreeting,
		LogLevel: DefaultLogLevel,
	}
}

// Sources names where Load reads settings from. Empty paths are skipped.
type Sources struct {
	// File is a YAML config file. It must exist when set.
	File string
	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds a Config from defaults and the given sources. Process
// environment variables take precedence over the dotenv file.
func Load(src Sources) (Config, error) {
	cfg := Default()

	if src.File != "" {
		if err := loadFile(src.File, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv := map[string]string{}
	if src.EnvFile != "" {
		m, err := godotenv.Read(src.EnvFile)
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("failed to read env file: %w", err)
		}
	}

	lookup := src.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, get); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, get func(string) (string, bool)) error {
	if v, ok := get(EnvEndpoint); ok && v != "" {
		cfg.Endpoint = v
	}
	if v, ok := get(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v, ok := get(EnvGreeting); ok {
		cfg.Greeting = v
	}
	if v, ok := get(EnvLogFile); ok && v != "" {
		cfg.LogFile = v
	}
	if v, ok := get(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvAltScreen); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAltScreen, err)
		}
		cfg.AltScreen = b
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: want http(s)://host[:port]", c.Endpoint)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the zerolog level named by LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
