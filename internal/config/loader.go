package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if KILLER_CONFIG is set
//  3. env (prefix KILLER_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("KILLER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: KILLER_API_BASE_URL, KILLER_MODE, ...
	// Map env keys like KILLER_ADMIN_NAME -> admin_name (flat keys),
	// preserving underscores to match the koanf tags on the struct.
	envProvider := env.Provider("KILLER_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "killer_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Mode {
	case ModeAPI:
		if cfg.APIBaseURL == "" {
			return fmt.Errorf("%w: api_base_url must not be empty in api mode", ErrInvalidConfig)
		}
	case ModeStatic:
		if cfg.StaticDir == "" {
			return fmt.Errorf("%w: static_dir must not be empty in static mode", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, cfg.Mode)
	}
	if cfg.MissionTimeoutSec <= 0 {
		return fmt.Errorf("%w: mission_timeout_sec must be positive", ErrInvalidConfig)
	}
	if cfg.HTTPTimeoutSec <= 0 {
		return fmt.Errorf("%w: http_timeout_sec must be positive", ErrInvalidConfig)
	}
	return nil
}
