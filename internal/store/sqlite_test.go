package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, path string) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSQLiteKV_GetSet(t *testing.T) {
	kv := openTestSQLite(t, filepath.Join(t.TempDir(), "colorlab.db"))
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))

	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", v)
}

func TestSQLiteKV_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colorlab.db")
	ctx := context.Background()

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	s := New(first, zerolog.Nop())
	_, err = s.TogglePin(ctx, "#00ff88")
	require.NoError(t, err)
	_, err = s.SetTheme(ctx, ThemeLight)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTestSQLite(t, path)
	st, err := New(second, zerolog.Nop()).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"#00FF88"}, st.Pins)
	require.Equal(t, ThemeLight, st.Theme)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	require.Error(t, err)
}
