package config

import (
	"strings"

	"github.com/rs/zerolog"
)

const DevEnv = "DEV"

type AppSettings struct {
	Port       string `koanf:"port" yaml:"port"`
	Name       string `koanf:"name" yaml:"name"`
	Env        string `koanf:"env" yaml:"env"`
	BaseURL    string `koanf:"base_url" yaml:"base_url"`
	LogLevel   string `koanf:"log_level" yaml:"log_level"`
	DataFolder string `koanf:"data_folder" yaml:"data_folder"`
	// PreferDark stands in for the platform colour preference where no
	// browser is asking, such as the CLI.
	PreferDark bool `koanf:"prefer_dark" yaml:"prefer_dark"`
}

func (s *Settings) GetPort() string {
	port := s.App.Port
	if port != "" && port[0] != ':' {
		port = ":" + port
	}
	return port
}

func (s *Settings) GetAppName() string {
	return s.App.Name
}

func (s *Settings) GetEnv() string {
	if s.App.Env == "" {
		return DevEnv
	}
	return strings.ToUpper(s.App.Env)
}

func (s *Settings) IsProduction() bool {
	return s.GetEnv() != DevEnv
}

// GetBaseURL returns the externally visible URL of the site, e.g.
// "https://lab.example.com". Token issuers and the default remote
// credential-check URL hang off it.
func (s *Settings) GetBaseURL() string {
	return strings.TrimRight(s.App.BaseURL, "/")
}

func (s *Settings) GetLogLevel() string {
	if _, err := zerolog.ParseLevel(s.App.LogLevel); err != nil || s.App.LogLevel == "" {
		return zerolog.InfoLevel.String()
	}
	return s.App.LogLevel
}

func (s *Settings) GetDataFolder() string {
	return s.App.DataFolder
}

func (s *Settings) GetPreferDark() bool {
	return s.App.PreferDark
}
