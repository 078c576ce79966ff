package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the sync needs, loaded from the environment
// (optionally seeded from a .env file). It is built and validated exactly
// once at startup and passed by reference into the components that need it.
type Config struct {
	Portal struct {
		// BaseURL is the root of the HR portal, without a trailing slash.
		BaseURL    string `env:"BASE_URL" envDefault:"https://fiteco.rhsuite.silae.fr"`
		Username   string `env:"USERNAME,required,notEmpty"`
		Password   string `env:"PASSWORD,required,notEmpty"`
		EmployeeID string `env:"EMPLOYEE_ID,required,notEmpty"`
	} `envPrefix:"SILAE_"`

	Google struct {
		// CredentialsFile is the OAuth client secrets JSON downloaded from
		// the Google Cloud console (installed application type).
		CredentialsFile string `env:"CREDENTIALS_FILE" envDefault:"credentials/google_credentials.json"`
		// TokenFile is where the cached OAuth token blob is persisted.
		TokenFile string `env:"TOKEN_FILE" envDefault:"credentials/token.json"`
		// CalendarID is the destination calendar. It must be dedicated to
		// shift events: reconciliation empties every synced day before
		// repopulating it, regardless of who created the existing events.
		CalendarID string `env:"CALENDAR_ID,required,notEmpty"`
	} `envPrefix:"GOOGLE_"`

	Timezone string `env:"TIMEZONE" envDefault:"Europe/Paris"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Location is Timezone resolved via time.LoadLocation.
	Location *time.Location `env:"-"`
	// Level is LogLevel parsed into a logrus level.
	Level logrus.Level `env:"-"`
}

// Load reads the environment (after an optional .env file) into a Config
// and validates it eagerly. A missing required variable, an unknown
// timezone or an unknown log level is fatal before any component starts.
func Load() (*Config, error) {
	// A missing .env file is fine; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) {
			// Return only the first error to keep the failure message readable.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	cfg.Level = level

	return cfg, nil
}
