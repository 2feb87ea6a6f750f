package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/config"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("FLASHQUIZ_DB", "")

	cmd := &cobra.Command{Use: "test"}
	config.RegisterFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse(args))
	cmd.SetContext(context.Background())
	return cmd
}

func TestOpenEnv_OfflineOnly(t *testing.T) {
	cmd := newTestCommand(t)
	env, err := openEnv(cmd)
	require.NoError(t, err)
	defer env.Close()

	assert.Len(t, env.sets, 1, "only the deck directory without a base URL")
	assert.Empty(t, env.userLabel(cmd.Context()))
	assert.NotNil(t, env.deps().Decks)
}

func TestOpenEnv_WithBackendAndDBFlag(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nested", "quiz.db")
	cmd := newTestCommand(t, "--api-url", "https://example.test", "--db", db, "--timer", "whole-test", "--timer-seconds", "90")

	env, err := openEnv(cmd)
	require.NoError(t, err)
	defer env.Close()

	assert.Len(t, env.sets, 2)
	assert.Equal(t, 90, int(env.timer.Duration.Seconds()))
	_, err = os.Stat(filepath.Dir(db))
	assert.NoError(t, err, "database directory is created")
}

func TestOpenEnv_SignedInLabel(t *testing.T) {
	cmd := newTestCommand(t)
	env, err := openEnv(cmd)
	require.NoError(t, err)
	defer env.Close()

	require.NoError(t, env.users.SignIn(cmd.Context(), "opaque", `{"id":"ada"}`))
	assert.Equal(t, "ada", env.userLabel(cmd.Context()))
}

func TestOpenEnv_InvalidConfig(t *testing.T) {
	cmd := newTestCommand(t, "--timer", "sometimes")
	_, err := openEnv(cmd)
	assert.Error(t, err)
}
