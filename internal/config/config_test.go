package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/timer"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "off", cfg.Quiz.TimerMode)

	ts, err := cfg.TimerSettings()
	require.NoError(t, err)
	assert.Equal(t, timer.Settings{Mode: timer.ModeOff}, ts)
}

func TestLoad_LayerPriority(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "flashquiz", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://file.example.com
  timeout: 5s
log:
  level: debug
quiz:
  timer_mode: per-question
  timer_seconds: 20
`), 0o644))

	t.Setenv("FLASHQUIZ_API__BASE_URL", "https://env.example.com")
	t.Setenv("FLASHQUIZ_API__MAX_RETRIES", "5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--timer", "whole-test", "--timer-seconds", "90"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL, "env beats file")
	assert.Equal(t, 5, cfg.API.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout, "file beats defaults")
	assert.Equal(t, "debug", cfg.Log.Level)

	ts, err := cfg.TimerSettings()
	require.NoError(t, err)
	assert.Equal(t, timer.Settings{Mode: timer.ModeWholeTest, Duration: 90 * time.Second}, ts, "flags beat everything")
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	isolate(t)
	t.Setenv("FLASHQUIZ_LOG__LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Quiz.TimerSeconds)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad level":        {"FLASHQUIZ_LOG__LEVEL": "loud"},
		"bad timer mode":   {"FLASHQUIZ_QUIZ__TIMER_MODE": "sometimes"},
		"timer needs secs": {"FLASHQUIZ_QUIZ__TIMER_MODE": "per-question", "FLASHQUIZ_QUIZ__TIMER_SECONDS": "0"},
		"bad url":          {"FLASHQUIZ_API__BASE_URL": "not a url"},
		"negative retries": {"FLASHQUIZ_API__MAX_RETRIES": "-1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}
}

func TestDecksDir(t *testing.T) {
	dir := isolate(t)
	cfg := &Config{}
	got, err := cfg.DecksDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flashquiz", "decks"), got)

	cfg.Decks.Dir = "/srv/decks"
	got, err = cfg.DecksDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/decks", got)
}
