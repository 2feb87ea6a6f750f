package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashquiz/internal/config"
	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/decksource"
	"github.com/abhisek/flashquiz/internal/identity"
	"github.com/abhisek/flashquiz/internal/logging"
	"github.com/abhisek/flashquiz/internal/results"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/setapi"
	"github.com/abhisek/flashquiz/internal/store"
	"github.com/abhisek/flashquiz/internal/timer"
)

// appEnv is everything a command needs, built from configuration.
type appEnv struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	users    *identity.Resolver
	results  *results.Store
	sets     decksource.Chain
	decks    *deck.Loader
	timer    timer.Settings
	closeLog func() error
}

// openEnv loads configuration, opens the log file and the store, and wires
// the deck sources. Callers must Close the result.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		logger, closeLog = logging.Discard(), func() error { return nil }
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	env := &appEnv{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		closeLog: closeLog,
	}
	env.users = identity.NewResolver(st)
	env.results = results.NewStore(st, env.users, logger)

	timerSettings, err := cfg.TimerSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ignoring timer default:", err)
	}
	env.timer = timerSettings

	if dir, err := cfg.DecksDir(); err == nil {
		env.sets = append(env.sets, decksource.NewDir(dir))
	} else {
		fmt.Fprintln(os.Stderr, "Offline decks unavailable:", err)
	}
	if cfg.API.BaseURL != "" {
		client, err := setapi.New(cfg.API.BaseURL, env.users,
			setapi.WithTimeout(cfg.API.Timeout),
			setapi.WithRetry(cfg.API.MaxRetries, setapi.DefaultRetryBase, setapi.DefaultRetryMax),
			setapi.WithLogger(logger),
		)
		if err != nil {
			env.Close()
			return nil, fmt.Errorf("set API client: %w", err)
		}
		env.sets = append(env.sets, client)
	} else {
		fmt.Fprintln(os.Stderr, "Backend not configured: only offline decks are available.")
	}
	env.decks = deck.NewLoader(env.sets)

	logger.Debug("environment ready", "db", dbPath, "sources", len(env.sets))
	return env, nil
}

// resolveDBPath returns the configured database path (--db flag or
// storage.db_path), then FLASHQUIZ_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Storage.DBPath; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// deps builds the screen dependencies.
func (e *appEnv) deps() *screen.Deps {
	return &screen.Deps{
		Sets:    e.sets,
		Decks:   e.decks,
		Results: e.results,
		Timer:   e.timer,
		Logger:  e.logger,
	}
}

// userLabel describes the signed-in user for the header.
func (e *appEnv) userLabel(ctx context.Context) string {
	id, ok := e.users.UserID(ctx)
	if !ok {
		return ""
	}
	return id
}

func (e *appEnv) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", "error", err)
	}
	_ = e.closeLog()
}
