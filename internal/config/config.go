// Package config loads client and dev-server settings from an optional YAML
// file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Result formats served by the dev backend.
const (
	FormatStructured = "structured"
	FormatText       = "text"
)

// Client holds the settings of the tripbook CLI.
type Client struct {
	BackendURL string        `mapstructure:"backend_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	LogLevel   string        `mapstructure:"log_level"`
	LogFile    string        `mapstructure:"log_file"`
	Plain      bool          `mapstructure:"plain"`
}

// Server holds the settings of the dev backend.
type Server struct {
	Port            string        `mapstructure:"port"`
	ResultFormat    string        `mapstructure:"result_format"`
	ProviderURLs    []string      `mapstructure:"provider_urls"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
	RateLimit       int           `mapstructure:"rate_limit"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	LogLevel        string        `mapstructure:"log_level"`
}

// Provider holds the settings of the mock upstream provider.
type Provider struct {
	Port     string `mapstructure:"port"`
	Profile  string `mapstructure:"provider_type"`
	LogLevel string `mapstructure:"log_level"`
}

// clientFlags maps flag names to config keys.
var clientFlags = map[string]string{
	"backend":   "backend_url",
	"timeout":   "timeout",
	"log-level": "log_level",
	"log-file":  "log_file",
	"plain":     "plain",
}

// LoadClient reads the client configuration. Environment variables use the
// BOOKING_ prefix (BOOKING_BACKEND_URL, BOOKING_TIMEOUT, BOOKING_LOG_LEVEL).
// Flags that were set on the command line win over everything else.
func LoadClient(path string, flags *pflag.FlagSet) (Client, error) {
	v := newViper("booking", path)
	v.SetEnvPrefix("BOOKING")
	v.AutomaticEnv()

	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("plain", false)

	if flags != nil {
		for name, key := range clientFlags {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Client{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readInConfig(v, path); err != nil {
		return Client{}, err
	}

	var cfg Client
	if err := v.Unmarshal(&cfg); err != nil {
		return Client{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.BackendURL = strings.TrimSpace(cfg.BackendURL)
	if cfg.BackendURL == "" {
		return Client{}, errors.New("backend URL must not be empty")
	}
	if cfg.Timeout <= 0 {
		return Client{}, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// LoadServer reads the dev backend configuration from booking-server.yaml and
// unprefixed environment variables (PORT, RESULT_FORMAT, PROVIDER_URLS,
// RATE_LIMIT, CACHE_TTL, LOG_LEVEL).
func LoadServer(path string) (Server, error) {
	v := newViper("booking-server", path)
	v.AutomaticEnv()

	v.SetDefault("port", "8000")
	v.SetDefault("result_format", FormatText)
	v.SetDefault("provider_urls", []string{})
	v.SetDefault("provider_timeout", 2*time.Second)
	v.SetDefault("rate_limit", 30)
	v.SetDefault("cache_ttl", 30*time.Second)
	v.SetDefault("log_level", "info")

	if err := readInConfig(v, path); err != nil {
		return Server{}, err
	}

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return Server{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.ResultFormat = strings.ToLower(strings.TrimSpace(cfg.ResultFormat))
	if cfg.ResultFormat != FormatStructured && cfg.ResultFormat != FormatText {
		return Server{}, fmt.Errorf("unknown result format %q", cfg.ResultFormat)
	}
	urls := cfg.ProviderURLs[:0]
	for _, u := range cfg.ProviderURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	cfg.ProviderURLs = urls
	if cfg.RateLimit <= 0 {
		return Server{}, fmt.Errorf("rate limit must be positive, got %d", cfg.RateLimit)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// LoadProvider reads the mock provider configuration from booking-provider.yaml
// and unprefixed environment variables (PORT, PROVIDER_TYPE, LOG_LEVEL).
func LoadProvider(path string) (Provider, error) {
	v := newViper("booking-provider", path)
	v.AutomaticEnv()

	v.SetDefault("port", "9001")
	v.SetDefault("provider_type", "mock1")
	v.SetDefault("log_level", "info")

	if err := readInConfig(v, path); err != nil {
		return Provider{}, err
	}

	var cfg Provider
	if err := v.Unmarshal(&cfg); err != nil {
		return Provider{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Provider{}, err
	}
	return cfg, nil
}

func newViper(name, path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		return v
	}
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "booking-agent"))
	}
	return v
}

// readInConfig loads the config file. A missing file is only an error when
// it was named explicitly.
func readInConfig(v *viper.Viper, path string) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("failed to read config: %w", err)
}
