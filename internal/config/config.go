// Package config loads flashquiz settings from defaults, a YAML file, the
// environment and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/flashquiz/internal/timer"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// levels: FLASHQUIZ_API__BASE_URL sets api.base_url.
const EnvPrefix = "FLASHQUIZ_"

// Config is the resolved application configuration.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
	Quiz    QuizConfig    `koanf:"quiz"`
	Decks   DecksConfig   `koanf:"decks"`
}

type APIConfig struct {
	BaseURL    string        `koanf:"base_url" validate:"omitempty,http_url"`
	Timeout    time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRetries int           `koanf:"max_retries" validate:"gte=0,lte=10"`
}

type StorageConfig struct {
	DBPath string `koanf:"db_path"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"`
}

type QuizConfig struct {
	TimerMode    string `koanf:"timer_mode" validate:"oneof=off per-question whole-test"`
	TimerSeconds int    `koanf:"timer_seconds" validate:"gte=0,lte=86400,required_unless=TimerMode off"`
}

type DecksConfig struct {
	Dir    string `koanf:"dir"`
	GitURL string `koanf:"git_url"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":       "",
		"api.timeout":        "15s",
		"api.max_retries":    3,
		"storage.db_path":    "",
		"log.level":          "info",
		"log.file":           "",
		"quiz.timer_mode":    "off",
		"quiz.timer_seconds": 30,
		"decks.dir":          "",
		"decks.git_url":      "",
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"api-url":       "api.base_url",
	"db":            "storage.db_path",
	"log-level":     "log.level",
	"timer":         "quiz.timer_mode",
	"timer-seconds": "quiz.timer_seconds",
	"decks-dir":     "decks.dir",
}

// RegisterFlags adds the configuration flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/flashquiz/config.yaml)")
	flags.String("api-url", "", "Backend base URL")
	flags.String("db", "", "Path to SQLite database file")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("timer", "", "Default timer: off, per-question or whole-test")
	flags.Int("timer-seconds", 0, "Default timer duration in seconds")
	flags.String("decks-dir", "", "Directory of offline set files")
}

// Load builds the configuration. An explicit path must exist; the default
// path is optional. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	for key, val := range Defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		switch {
		case err == nil:
		case !explicit && errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey turns FLASHQUIZ_QUIZ__TIMER_MODE into quiz.timer_mode.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TimerSettings converts the quiz defaults into timer settings.
func (c *Config) TimerSettings() (timer.Settings, error) {
	mode, err := timer.ParseMode(c.Quiz.TimerMode)
	if err != nil {
		return timer.Settings{}, err
	}
	s := timer.Settings{Mode: mode}
	if mode != timer.ModeOff {
		s.Duration = time.Duration(c.Quiz.TimerSeconds) * time.Second
	}
	return s, nil
}

// DefaultPath is $XDG_CONFIG_HOME/flashquiz/config.yaml.
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "flashquiz", "config.yaml"), nil
}

// DefaultDecksDir is $XDG_DATA_HOME/flashquiz/decks.
func DefaultDecksDir() (string, error) {
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "flashquiz", "decks"), nil
}

// DecksDir returns the configured deck directory or the default one.
func (c *Config) DecksDir() (string, error) {
	if c.Decks.Dir != "" {
		return c.Decks.Dir, nil
	}
	return DefaultDecksDir()
}

func xdgDir(envVar, fallback string) (string, error) {
	if d := os.Getenv(envVar); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, fallback), nil
}
