package config

import (
	"slices"
	"strings"
)

type CorsSettings struct {
	AllowedOrigins []string `koanf:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods []string `koanf:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders []string `koanf:"allowed_headers" yaml:"allowed_headers"`
}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

// List returns the origins in a stable order.
func (a AllowedOrigins) List() []string {
	origins := make([]string, 0, len(a))
	for k := range a {
		origins = append(origins, k)
	}
	slices.Sort(origins)
	return origins
}

func (a AllowedOrigins) String() string {
	return strings.Join(a.List(), ", ")
}

func (s *Settings) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range s.Cors.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

func (s *Settings) GetAllowedMethods() []string {
	return s.Cors.AllowedMethods
}

func (s *Settings) GetAllowedHeaders() []string {
	return s.Cors.AllowedHeaders
}
