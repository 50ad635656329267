// Package config loads service settings from an optional YAML file and
// ONBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"

	"github.com/janisto/echo-onboarding/internal/platform/validate"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ONBOARD_"

const (
	defaultPort        = "8080"
	defaultEnvironment = "production"
)

// ErrMissingEndpoint is returned when no submission endpoint is configured.
var ErrMissingEndpoint = errors.New("submission endpoint is not configured (set ONBOARD_URL)")

// Config holds the merged settings.
type Config struct {
	// URL is the endpoint that accepted records are POSTed to.
	URL            string   `koanf:"url"             validate:"omitempty,http_url"`
	Port           string   `koanf:"port"            validate:"required,numeric"`
	Environment    string   `koanf:"environment"     validate:"oneof=development production"`
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// Development reports whether verbose diagnostics are wanted.
func (c *Config) Development() bool { return c.Environment == "development" }

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }

// Option overrides a loaded value. Options are the highest-precedence layer.
type Option func(*koanf.Koanf) error

// WithEndpoint overrides the submission endpoint when u is not empty.
func WithEndpoint(u string) Option {
	return func(k *koanf.Koanf) error {
		if u == "" {
			return nil
		}
		return k.Set("url", u)
	}
}

// envKey maps ONBOARD_ALLOWED_ORIGINS to allowed_origins. Comma-separated
// origins become a list.
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "allowed_origins" {
		var origins []string
		for o := range strings.SplitSeq(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return key, origins
	}
	return key, value
}

// Load merges, in increasing precedence, the YAML file at path (skipped when
// path is empty), ONBOARD_* variables, and opts. PORT is used when no port is
// configured. The result is validated; a missing URL yields
// ErrMissingEndpoint.
func Load(path string, opts ...Option) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	for _, opt := range opts {
		if err := opt(k); err != nil {
			return nil, fmt.Errorf("apply config override: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()

	if err := validate.New().Validate(&cfg); err != nil {
		return nil, err
	}
	if cfg.URL == "" {
		return &cfg, ErrMissingEndpoint
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = os.Getenv("PORT")
	}
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.Environment == "" {
		c.Environment = defaultEnvironment
	}
}
