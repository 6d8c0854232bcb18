package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Settings holds the runtime configuration. Every field can be overridden by
// an environment variable named after its koanf tag, upper-cased and prefixed
// with EnvPrefix (e.g. CONTACTBOOK_COUNTRY_CODE).
type Settings struct {
	// CountryCode completes 10-digit local phone numbers.
	CountryCode string `koanf:"country_code" validate:"required,len=2,number"`

	// Language selects the reply catalog.
	Language string `koanf:"language" validate:"required,oneof=en uk"`

	// DataFile is the vCard file holding the address book. Empty disables persistence.
	DataFile string `koanf:"data_file"`

	// Port is the local port of the feed server (serve command).
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// PageSize is used by "page" when no count is given.
	PageSize int `koanf:"page_size" validate:"min=1,max=1000"`

	// ReminderDays adds a calendar alarm this many days before each birthday. 0 disables it.
	ReminderDays int `koanf:"reminder_days" validate:"min=0,max=30"`

	// SourceURL is an optional remote vCard address book merged at startup.
	SourceURL  string `koanf:"source_url" validate:"omitempty,url"`
	SourceUser string `koanf:"source_user"`

	// RefreshMin re-imports SourceURL periodically while serving. 0 disables it.
	RefreshMin int `koanf:"refresh_min" validate:"min=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultSettings returns the compiled defaults.
func DefaultSettings() *Settings {
	return &Settings{
		CountryCode:  DefaultCountryCode,
		Language:     DefaultLanguage,
		Port:         DefaultPort,
		PageSize:     DefaultPageSize,
		ReminderDays: DefaultReminderDays,
		RefreshMin:   DefaultRefreshMin,
	}
}

// LoadSettings resolves the configuration with the following precedence:
//  1. Environment variables (highest)
//  2. Variables from a .env file in the working directory
//  3. Compiled defaults (lowest)
//
// When no data file is configured, the user config directory is used.
func LoadSettings() (*Settings, error) {
	loadDotEnv()

	cfg := DefaultSettings()
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	if cfg.DataFile == "" {
		if path, err := DefaultDataFile(); err == nil {
			cfg.DataFile = path
		} else {
			slog.Warn(ErrConfigDir,
				LogKeyComponent, CompConfig,
				LogKeyError, err,
			)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	return nil
}

// ReminderTrigger converts ReminderDays into an ISO8601 alarm trigger
// ("-P2D"). It returns "" when reminders are disabled.
func (s *Settings) ReminderTrigger() string {
	if s.ReminderDays <= 0 {
		return ""
	}
	return fmt.Sprintf("%s%d%s", ISONegativePrefix, s.ReminderDays, ISODay)
}

// DefaultDataFile returns the platform-specific location of the address book.
func DefaultDataFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID, DataFileName), nil
}

// loadDotEnv loads .env from the working directory. Existing variables win.
func loadDotEnv() {
	err := godotenv.Load(EnvFileName)
	switch {
	case err == nil:
		slog.Debug(MsgEnvLoaded, LogKeyComponent, CompConfig, LogKeyFile, EnvFileName)
	case errors.Is(err, fs.ErrNotExist):
	default:
		slog.Warn(ErrSettingsLoad,
			LogKeyComponent, CompConfig,
			LogKeyFile, EnvFileName,
			LogKeyError, err,
		)
	}
}
