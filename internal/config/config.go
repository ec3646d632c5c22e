// Package config loads syllabo configuration from an optional YAML file
// with environment-variable overrides. A .env file in the working
// directory is honored before the environment is read.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "5s" or "1h".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"5s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds all syllabo settings.
type Config struct {
	// DataDir is where the store file (or sqlite database) lives.
	DataDir string `yaml:"data_dir"`

	// Intervals override the review ladder, in days. Must be strictly
	// increasing when set.
	Intervals []int `yaml:"intervals"`

	Storage       StorageConfig      `yaml:"storage"`
	Notifications NotificationConfig `yaml:"notifications"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// StorageConfig selects and parameterizes the store backend.
type StorageConfig struct {
	// Driver is one of "json", "sqlite", "postgres".
	Driver string `yaml:"driver"`
	// DSN is the postgres connection string; unused for json and sqlite.
	DSN string `yaml:"dsn"`
	// LockTimeout bounds the wait for the store lock.
	LockTimeout Duration `yaml:"lock_timeout"`
}

// NotificationConfig controls the background reminder loop.
type NotificationConfig struct {
	// StartHour and EndHour bound the local hours during which
	// reminders may fire.
	StartHour int `yaml:"start_hour"`
	EndHour   int `yaml:"end_hour"`
	// CheckInterval is how often the daemon looks for due topics.
	CheckInterval Duration `yaml:"check_interval"`
	// UpcomingDays is the window for the "due soon" view.
	UpcomingDays int `yaml:"upcoming_days"`

	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig enables the Telegram notifier when both fields are set.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Storage: StorageConfig{
			Driver:      "json",
			LockTimeout: Duration(5 * time.Second),
		},
		Notifications: NotificationConfig{
			StartHour:     8,
			EndHour:       22,
			CheckInterval: Duration(time.Hour),
			UpcomingDays:  7,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// at path (or $SYLLABO_CONFIG, or <data_dir>/config.yaml) when present,
// then environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	// Optional .env, same as the environment if absent.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("SYLLABO_CONFIG")
	}
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SYLLABO_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("SYLLABO_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("SYLLABO_STORAGE_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("SYLLABO_DEBUG"); v != "" {
		c.Debug = v == "1" || v == "true"
	}
	if v := os.Getenv("NOTIFICATION_START_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			c.Notifications.StartHour = h
		}
	}
	if v := os.Getenv("NOTIFICATION_END_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			c.Notifications.EndHour = h
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Notifications.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Notifications.Telegram.ChatID = id
		}
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "json", "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return fmt.Errorf("postgres driver requires storage.dsn")
	}
	if c.Storage.LockTimeout <= 0 {
		return fmt.Errorf("storage.lock_timeout must be positive")
	}
	if c.Notifications.CheckInterval <= 0 {
		return fmt.Errorf("notifications.check_interval must be positive")
	}
	return nil
}

// StorePath is the JSON store file location.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "spaced_repetition.json")
}

// SQLitePath is the sqlite database location.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "syllabo.db")
}
