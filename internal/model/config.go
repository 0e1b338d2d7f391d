package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DatabaseConfig holds settings for the SQLite database.
type DatabaseConfig struct {
	// Path is the filesystem location of the database file.
	Path string `mapstructure:"path" yaml:"path"`
}

// ReminderConfig holds settings for the reminder due-date scanner.
type ReminderConfig struct {
	// PollIntervalSec is how often (in seconds) to scan for due reminders.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// LookbackDays is how far behind "now" the scan window starts, so
	// reminders missed while the process was down are still delivered.
	LookbackDays int `mapstructure:"lookback_days" yaml:"lookback_days"`

	// LookaheadDays is how far ahead of "now" the scan window ends.
	LookaheadDays int `mapstructure:"lookahead_days" yaml:"lookahead_days"`
}

// SMTPConfig holds settings for outbound notification mail.
type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	From     string `mapstructure:"from" yaml:"from"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration. It is assembled
// once at process start and passed by reference; nothing mutates it
// afterwards.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Reminder ReminderConfig `mapstructure:"reminder" yaml:"reminder"`
	SMTP     SMTPConfig     `mapstructure:"smtp" yaml:"smtp"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dayplan/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "dayplan", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration. The reminder
// window defaults match the historical behavior: one week back, three
// months (90 days) ahead.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{
			Path: filepath.Join(".", "dayplan.db"),
		},
		Reminder: ReminderConfig{
			PollIntervalSec: 60,
			LookbackDays:    7,
			LookaheadDays:   90,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", filepath.Join(".", "dayplan.db"))
	v.SetDefault("reminder.poll_interval_sec", 60)
	v.SetDefault("reminder.lookback_days", 7)
	v.SetDefault("reminder.lookahead_days", 90)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("reminder", cfg.Reminder)
	v.Set("smtp", cfg.SMTP)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
