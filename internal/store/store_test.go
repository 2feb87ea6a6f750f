package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestKV_GetMissing(t *testing.T) {
	s := openTestStore(t)
	v, ok, err := s.GetItem(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestKV_SetGetOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetItem(ctx, "user", `{"id":1}`))
	v, ok, err := s.GetItem(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)

	require.NoError(t, s.SetItem(ctx, "user", `{"id":2}`))
	v, _, err = s.GetItem(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":2}`, v)
}

func TestKV_Remove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetItem(ctx, "token", "abc"))
	require.NoError(t, s.RemoveItem(ctx, "token"))
	require.NoError(t, s.RemoveItem(ctx, "token"))

	_, ok, err := s.GetItem(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKV_Keys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetItem(ctx, "quizRecords_2", "[]"))
	require.NoError(t, s.SetItem(ctx, "quizRecords_1", "[]"))
	require.NoError(t, s.SetItem(ctx, "user", "{}"))

	keys, err := s.Keys(ctx, "quizRecords_")
	require.NoError(t, err)
	assert.Equal(t, []string{"quizRecords_1", "quizRecords_2"}, keys)
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "c.db")
	require.NoError(t, EnsureDir(p))
	assert.DirExists(t, filepath.Dir(p))
}
