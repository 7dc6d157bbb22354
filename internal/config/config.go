package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://127.0.0.1:8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Backend de correo: "ses", "smtp" o "disabled".
	EmailBackend       string `env:"EMAIL_BACKEND" envDefault:"disabled"`
	EmailSender        string `env:"EMAIL_SENDER"`
	EmailSenderName    string `env:"EMAIL_SENDER_NAME"`
	EmailTimeoutMillis int    `env:"EMAIL_TIMEOUT_MILLIS" envDefault:"10000"`

	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPPass   string `env:"SMTP_PASS"`
	SMTPUseTLS bool   `env:"SMTP_USE_TLS" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction indica si el servicio corre en ambiente productivo.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
