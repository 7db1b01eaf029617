package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Locale    LocaleConfig
	Reminders ReminderConfig
	Reporting ReportingConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// DatabaseConfig selects and addresses the relational store.
type DatabaseConfig struct {
	Driver     string
	URL        string
	DSN        string
	SQLitePath string
}

// LocaleConfig controls dates and UI language.
type LocaleConfig struct {
	Timezone        string
	DefaultLanguage string

	location *time.Location
}

// ReminderConfig drives the vaccination reminder sweep.
type ReminderConfig struct {
	CronSchedule string
	LeadDays     int
}

// ReportingConfig holds herd snapshot scheduling.
type ReportingConfig struct {
	CronSchedule string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
// The integration is disabled when AccessToken is empty.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	BaseURL       string
	APIVersion    string
	NotifyTo      string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether the WhatsApp integration is configured.
func (c WhatsAppConfig) Enabled() bool { return c.AccessToken != "" }

// Enabled reports whether the Sheets export is configured.
func (c SheetsConfig) Enabled() bool { return c.CredentialsPath != "" && c.SpreadsheetID != "" }

// Enabled reports whether the snapshot archive is configured.
func (c MongoDBConfig) Enabled() bool { return c.URI != "" }

// Location returns the configured time zone, UTC when it was never resolved.
func (c LocaleConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	leadDays, err := getenvInt("REMINDER_LEAD_DAYS", 7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(os.Getenv("DB_DRIVER")),
			URL:        os.Getenv("DATABASE_URL"),
			DSN:        os.Getenv("DB_DSN"),
			SQLitePath: getenvWithDefault("SQLITE_PATH", "db.sqlite3"),
		},
		Locale: LocaleConfig{
			Timezone:        getenvWithDefault("TIMEZONE", "Asia/Bangkok"),
			DefaultLanguage: getenvWithDefault("DEFAULT_LANGUAGE", "th"),
		},
		Reminders: ReminderConfig{
			CronSchedule: getenvWithDefault("REMINDER_CRON_SCHEDULE", "0 7 * * *"),
			LeadDays:     leadDays,
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			VerifyToken:   os.Getenv("META_VERIFY_TOKEN"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			NotifyTo:      os.Getenv("WHATSAPP_NOTIFY_TO"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "herd"),
		},
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
		if cfg.Database.URL != "" {
			cfg.Database.Driver = DriverPostgres
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and
// resolves the configured time zone.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	case DriverMySQL:
		if c.Database.DSN == "" {
			return errors.New("DB_DSN must be provided for mysql")
		}
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.DSN == "" {
			return errors.New("DATABASE_URL or DB_DSN must be provided for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	loc, err := time.LoadLocation(c.Locale.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Locale.Timezone, err)
	}
	c.Locale.location = loc

	switch c.Locale.DefaultLanguage {
	case "th", "en":
	default:
		return fmt.Errorf("DEFAULT_LANGUAGE must be th or en, got %q", c.Locale.DefaultLanguage)
	}

	if c.Reminders.CronSchedule == "" {
		return errors.New("REMINDER_CRON_SCHEDULE must be provided")
	}
	if c.Reminders.LeadDays < 0 {
		return errors.New("REMINDER_LEAD_DAYS must not be negative")
	}
	if c.Reporting.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.VerifyToken == "":
			return errors.New("META_VERIFY_TOKEN must be provided")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
