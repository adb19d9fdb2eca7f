package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/colorlab-mcp/internal/colormath"
)

func newTestStore(t *testing.T) (*Store, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	return New(kv, zerolog.Nop()), kv
}

func storedState(t *testing.T, kv KV) State {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), StateKey)
	require.NoError(t, err)
	require.True(t, ok, "state key should be written")

	var st State
	require.NoError(t, json.Unmarshal([]byte(raw), &st))
	return st
}

func TestLoad_FreshDefault(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	st, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, &State{Version: 2, History: []string{}, Theme: ThemeAuto, Pins: []string{}}, st)

	// The default is persisted, arrays included.
	raw, _, _ := kv.Get(ctx, StateKey)
	require.JSONEq(t, `{"version":2,"history":[],"theme":"auto","pins":[]}`, raw)

	theme, ok, _ := kv.Get(ctx, LegacyThemeKey)
	require.True(t, ok)
	require.Equal(t, "auto", theme)
}

func TestLoad_V2ReturnedAsIs(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	doc := `{"version":2,"history":["#abcdef","junk"],"theme":"dark","pins":["#123456"]}`
	require.NoError(t, kv.Set(ctx, StateKey, doc))

	st, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"#abcdef", "junk"}, st.History)
	require.Equal(t, ThemeDark, st.Theme)
	require.Equal(t, []string{"#123456"}, st.Pins)

	// Loading a valid document does not rewrite it.
	raw, _, _ := kv.Get(ctx, StateKey)
	require.Equal(t, doc, raw)
}

func TestLoad_MigratesV1(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	doc := `{"version":1,"history":["#abcdef","nope","#FF0000"],"theme":"light"}`
	require.NoError(t, kv.Set(ctx, StateKey, doc))

	st, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, st.Version)
	require.Equal(t, []string{"#ABCDEF", "#FF0000"}, st.History)
	require.Equal(t, ThemeLight, st.Theme)
	require.Equal(t, []string{}, st.Pins)

	raw, _, _ := kv.Get(ctx, StateKey)
	require.Equal(t, doc, raw, "migration alone does not write back")
}

func TestLoad_InvalidDocuments(t *testing.T) {
	docs := []string{
		`not json`,
		`{"version":3,"history":[],"theme":"auto","pins":[]}`,
		`{"version":2,"history":[],"theme":"sepia","pins":[]}`,
		`{"version":2,"history":[],"theme":"auto"}`,
		`{"version":2,"history":[1,2],"theme":"auto","pins":[]}`,
		`{"version":1,"theme":"auto"}`,
		`{"version":"2","history":[],"theme":"auto","pins":[]}`,
		`null`,
	}

	for i, doc := range docs {
		t.Run(fmt.Sprintf("doc%d", i), func(t *testing.T) {
			s, kv := newTestStore(t)
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, StateKey, doc))

			st, err := s.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, defaultState(), st)
			require.Equal(t, *defaultState(), storedState(t, kv))
		})
	}
}

func TestLoad_LegacyKeys(t *testing.T) {
	tests := []struct {
		name        string
		history     *string
		theme       *string
		wantHistory []string
		wantTheme   ThemeMode
	}{
		{"history and theme", strPtr(`["#aabbcc","bad","#112233"]`), strPtr("dark"), []string{"#AABBCC", "#112233"}, ThemeDark},
		{"history only", strPtr(`["#aabbcc"]`), nil, []string{"#AABBCC"}, ThemeAuto},
		{"theme only", nil, strPtr("light"), []string{}, ThemeLight},
		{"corrupt history", strPtr(`[oops`), strPtr("dark"), []string{}, ThemeDark},
		{"mixed types", strPtr(`["#abc123",5,null,{"hex":"#000000"},"#DDDDDD"]`), nil, []string{"#ABC123", "#DDDDDD"}, ThemeAuto},
		{"not an array", strPtr(`{"history":["#abc123"]}`), strPtr("light"), []string{}, ThemeLight},
		{"unknown theme", strPtr(`[]`), strPtr("neon"), []string{}, ThemeAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kv := newTestStore(t)
			ctx := context.Background()
			if tt.history != nil {
				require.NoError(t, kv.Set(ctx, LegacyHistoryKey, *tt.history))
			}
			if tt.theme != nil {
				require.NoError(t, kv.Set(ctx, LegacyThemeKey, *tt.theme))
			}

			st, err := s.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, tt.wantHistory, st.History)
			require.Equal(t, tt.wantTheme, st.Theme)
			require.Equal(t, []string{}, st.Pins)

			// Imported state is saved under the new key.
			require.Equal(t, *st, storedState(t, kv))
		})
	}
}

func TestLoad_RebuildsFromLegacyMirror(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := s.PushHistory(ctx, fmt.Sprintf("#0000%02X", i))
		require.NoError(t, err)
	}
	_, err := s.SetTheme(ctx, ThemeDark)
	require.NoError(t, err)
	_, err = s.TogglePin(ctx, "#FFFFFF")
	require.NoError(t, err)

	// Losing the document leaves only what older readers see.
	kv.Delete(StateKey)

	st, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.History, LegacyHistoryLimit)
	require.Equal(t, "#00000B", st.History[0])
	require.Equal(t, ThemeDark, st.Theme)
	require.Equal(t, []string{}, st.Pins)
	require.Equal(t, *st, storedState(t, kv))
}

func TestSave_Sanitizes(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	history := make([]string, 0, 130)
	for i := 0; i < 120; i++ {
		history = append(history, fmt.Sprintf("#%06x", i))
	}
	history = append(history, "bogus")

	st, err := s.Save(ctx, &State{
		Version: 1,
		History: history,
		Theme:   ThemeMode("purple"),
		Pins:    []string{"#abcdef", "#GGGGGG"},
	})
	require.NoError(t, err)

	require.Equal(t, 2, st.Version)
	require.Len(t, st.History, SavedLimit)
	require.Equal(t, "#000000", st.History[0])
	require.Equal(t, "#000063", st.History[99])
	require.Equal(t, ThemeAuto, st.Theme)
	require.Equal(t, []string{"#ABCDEF"}, st.Pins)
	require.Equal(t, *st, storedState(t, kv))

	legacy, ok, _ := kv.Get(ctx, LegacyHistoryKey)
	require.True(t, ok)
	var mirrored []string
	require.NoError(t, json.Unmarshal([]byte(legacy), &mirrored))
	require.Equal(t, st.History[:LegacyHistoryLimit], mirrored)
}

func TestPushHistory(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.PushHistory(ctx, "#111111")
	require.NoError(t, err)
	_, err = s.PushHistory(ctx, "#222222")
	require.NoError(t, err)
	st, err := s.PushHistory(ctx, "#111111")
	require.NoError(t, err)
	require.Equal(t, []string{"#111111", "#222222"}, st.History)

	st, err = s.PushHistory(ctx, "#abcdef")
	require.NoError(t, err)
	require.Equal(t, []string{"#ABCDEF", "#111111", "#222222"}, st.History)

	// Invalid input is dropped by the sanitizing save.
	st, err = s.PushHistory(ctx, "nope")
	require.NoError(t, err)
	require.Equal(t, []string{"#ABCDEF", "#111111", "#222222"}, st.History)
}

func TestPushHistory_KeepLimit(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var st *State
	var err error
	for i := 0; i < KeepLimit+10; i++ {
		st, err = s.PushHistory(ctx, fmt.Sprintf("#%06X", i))
		require.NoError(t, err)
	}
	require.Len(t, st.History, KeepLimit)
	require.Equal(t, fmt.Sprintf("#%06X", KeepLimit+9), st.History[0])
}

func TestClearHistory(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.PushHistory(ctx, "#111111")
	require.NoError(t, err)
	_, err = s.TogglePin(ctx, "#222222")
	require.NoError(t, err)

	st, err := s.ClearHistory(ctx)
	require.NoError(t, err)
	require.Empty(t, st.History)
	require.Equal(t, []string{"#222222"}, st.Pins, "pins survive clearing history")
}

func TestTogglePin(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	st, err := s.TogglePin(ctx, "#abcdef")
	require.NoError(t, err)
	require.Equal(t, []string{"#ABCDEF"}, st.Pins)

	pinned, err := s.IsPinned(ctx, "#AbCdEf")
	require.NoError(t, err)
	require.True(t, pinned)

	st, err = s.TogglePin(ctx, "#123456")
	require.NoError(t, err)
	require.Equal(t, []string{"#123456", "#ABCDEF"}, st.Pins)

	st, err = s.TogglePin(ctx, "#ABCDEF")
	require.NoError(t, err)
	require.Equal(t, []string{"#123456"}, st.Pins)

	pinned, err = s.IsPinned(ctx, "#abcdef")
	require.NoError(t, err)
	require.False(t, pinned)

	_, err = s.TogglePin(ctx, "abcdef")
	require.True(t, errors.Is(err, colormath.ErrInvalidFormat))
}

func TestTogglePin_KeepLimit(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var st *State
	var err error
	for i := 0; i < KeepLimit+5; i++ {
		st, err = s.TogglePin(ctx, fmt.Sprintf("#%06X", i))
		require.NoError(t, err)
	}
	require.Len(t, st.Pins, KeepLimit)
}

func TestSetTheme(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	st, err := s.SetTheme(ctx, ThemeDark)
	require.NoError(t, err)
	require.Equal(t, ThemeDark, st.Theme)

	theme, _, _ := kv.Get(ctx, LegacyThemeKey)
	require.Equal(t, "dark", theme)

	_, err = s.SetTheme(ctx, ThemeMode("sepia"))
	require.True(t, errors.Is(err, ErrInvalidTheme))
}

func TestToggleTheme(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	want := []ThemeMode{ThemeDark, ThemeLight, ThemeAuto, ThemeDark}
	for i, w := range want {
		st, err := s.ToggleTheme(ctx)
		require.NoError(t, err)
		require.Equal(t, w, st.Theme, "toggle %d", i)
	}
}

func TestNextTheme(t *testing.T) {
	require.Equal(t, ThemeDark, NextTheme(ThemeAuto))
	require.Equal(t, ThemeLight, NextTheme(ThemeDark))
	require.Equal(t, ThemeAuto, NextTheme(ThemeLight))
	require.Equal(t, ThemeDark, NextTheme(ThemeMode("")))
}

func TestParseTheme(t *testing.T) {
	m, err := ParseTheme("light")
	require.NoError(t, err)
	require.Equal(t, ThemeLight, m)

	_, err = ParseTheme("Light")
	require.ErrorIs(t, err, ErrInvalidTheme)
}

func TestInitial(t *testing.T) {
	require.Equal(t, colormath.Black, Initial(nil))
	require.Equal(t, colormath.Black, Initial(defaultState()))
	require.Equal(t, colormath.Hex("#111111"), Initial(&State{History: []string{"#111111"}}))
	require.Equal(t, colormath.Hex("#222222"), Initial(&State{History: []string{"#111111"}, Pins: []string{"#222222"}}))
}

func TestStore_ConcurrentPushes(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.PushHistory(ctx, fmt.Sprintf("#0000%02X", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	st, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.History, 20)
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error        { return f.err }

func TestStore_BackendErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	s := New(failingKV{err: boom}, zerolog.Nop())

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = s.PushHistory(context.Background(), "#000000")
	require.ErrorIs(t, err, boom)
}

func strPtr(s string) *string { return &s }
