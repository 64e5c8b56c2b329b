package config

import (
	"net/http"
	"time"
)

// devSecret is only accepted outside production.
const devSecret = "portfolio-lab-dev-secret"

// Default returns the settings used when neither a file nor the
// environment says otherwise.
func Default() *Settings {
	return &Settings{
		App: AppSettings{
			Port:       "8080",
			Name:       "Portfolio Lab",
			Env:        DevEnv,
			BaseURL:    "http://localhost:8080",
			LogLevel:   "info",
			DataFolder: "./data",
		},
		Cors: CorsSettings{
			AllowedOrigins: []string{"http://localhost:8080"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-API-Key"},
		},
		Security: SecuritySettings{
			LoginAttempts: 5,
			LoginWindow:   time.Minute,
			CookieMaxAge:  30 * 24 * time.Hour,
		},
		Auth: AuthSettings{
			Strategy:       AuthStrategyLocal,
			RemoteClientID: "portfolio-lab",
			RemoteTimeout:  5 * time.Second,
			TokenSecret:    devSecret,
			TokenExpiry:    time.Hour,
		},
		Storage: StorageSettings{
			Driver:       StorageCookie,
			CookieSecret: devSecret,
		},
	}
}
