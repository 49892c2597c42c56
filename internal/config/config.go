package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	AuthSecret  string `env:"AUTH_SECRET"`

	Paystack   Paystack   `envPrefix:"PAYSTACK_"`
	GoogleMaps GoogleMaps `envPrefix:"GOOGLE_MAPS_"`
}

type Paystack struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.paystack.co"`
	SecretKey  string `env:"SECRET_KEY"`
	PublicKey  string `env:"PUBLIC_KEY"`
}

// GoogleMaps is optional: without an API key the frontend falls back to
// manual address entry, everything server-side keeps working.
type GoogleMaps struct {
	APIKey string `env:"API_KEY"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

// Validate reports every missing required variable at once so a bad deploy
// fails with a single actionable message instead of one variable per restart.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.AuthSecret == "" {
		missing = append(missing, "AUTH_SECRET")
	}
	if c.Paystack.SecretKey == "" {
		missing = append(missing, "PAYSTACK_SECRET_KEY")
	}
	if c.Paystack.PublicKey == "" {
		missing = append(missing, "PAYSTACK_PUBLIC_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
