package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvaldez/dayplan/internal/model"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Reminder.PollIntervalSec)
	assert.Equal(t, 7, cfg.Reminder.LookbackDays)
	assert.Equal(t, 90, cfg.Reminder.LookaheadDays)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &model.AppConfig{
		Database: model.DatabaseConfig{Path: "/var/lib/dayplan/data.db"},
		Reminder: model.ReminderConfig{PollIntervalSec: 30, LookbackDays: 3, LookaheadDays: 14},
		SMTP: model.SMTPConfig{
			Host: "mail.example.com",
			Port: 465,
			From: "planner@example.com",
		},
		Log: model.LogConfig{Level: "debug"},
	}

	require.NoError(t, model.SaveConfig(path, want))

	got, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	got, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", got.Log.Level)
	assert.Equal(t, 7, got.Reminder.LookbackDays, "unset keys fall back to defaults")
}
