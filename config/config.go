package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port                 string        `env:"PORT" envDefault:"8080"`
	DatabaseURL          string        `env:"DB_URL,required"`
	JWTSecret            string        `env:"JWT_SECRET,required"`
	JWTExpiryHours       int           `env:"JWT_EXPIRY_HOURS" envDefault:"24"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogComponent         string        `env:"LOG_COMPONENT" envDefault:"api"`
	Timezone             string        `env:"TIMEZONE" envDefault:"UTC"`
	CORSOrigins          []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	SlowRequestThreshold time.Duration `env:"SLOW_REQUEST_THRESHOLD" envDefault:"200ms"`

	ReminderSchedule string `env:"REMINDER_SCHEDULE" envDefault:"0 9 * * *"`
	RemindersEnabled bool   `env:"REMINDERS_ENABLED" envDefault:"false"`

	TwilioAccountSID     string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `env:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}
	return cfg, nil
}

// Location resolves TIMEZONE, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}
