package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables that override the config file.
// A double underscore separates nesting levels: PORTFOLIO_AUTH__STRATEGY.
const EnvPrefix = "PORTFOLIO_"

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	AuthConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetLogLevel() string
	GetDataFolder() string
	GetPreferDark() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

// Settings is the loaded configuration. It satisfies Config.
type Settings struct {
	App      AppSettings      `koanf:"app" yaml:"app"`
	Cors     CorsSettings     `koanf:"cors" yaml:"cors"`
	Security SecuritySettings `koanf:"security" yaml:"security"`
	Auth     AuthSettings     `koanf:"auth" yaml:"auth"`
	Storage  StorageSettings  `koanf:"storage" yaml:"storage"`
}

var _ Config = (*Settings)(nil)

// Load starts from Default, overlays the YAML file at path when it exists
// and then any PORTFOLIO_* environment variables.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("[config Load] reading %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("[config Load] accessing %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("[config Load] env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("[config Load] unmarshalling: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps PORTFOLIO_AUTH__TOKEN_SECRET to auth.token_secret.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks the combined settings.
func (s *Settings) Validate() error {
	var errs []error
	if s.App.Port == "" {
		errs = append(errs, errors.New("app.port is required"))
	}
	if err := s.Security.validate(); err != nil {
		errs = append(errs, err)
	}
	if err := s.Auth.validate(s.IsProduction()); err != nil {
		errs = append(errs, err)
	}
	if err := s.Storage.validate(s.IsProduction()); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("[config Validate] %w", err)
	}
	return nil
}
