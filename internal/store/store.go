// Package store persists colorlab preferences: color history, pinned colors
// and the theme mode.
//
// State is kept as a JSON document under a single key of a KV backend. Older
// layouts are read transparently: a version 1 document (no pins) is migrated
// on load, and the legacy per-field keys are imported when no document exists
// yet. Every save also mirrors a short history and the theme to the legacy
// keys so that older readers keep working.
//
// All Store methods serialize on an internal mutex, so concurrent callers
// never lose each other's updates.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ironsheep/colorlab-mcp/internal/colormath"
)

// Keys used in the KV backend.
const (
	StateKey         = "colorlab_state"
	LegacyHistoryKey = "colorlab_history"
	LegacyThemeKey   = "colorlab_theme"
)

// List limits.
const (
	// SavedLimit caps history and pins in the persisted document.
	SavedLimit = 100
	// KeepLimit caps history and pins after a push or pin.
	KeepLimit = 50
	// LegacyHistoryLimit caps the history mirrored to LegacyHistoryKey.
	LegacyHistoryLimit = 10
)

// Store reads and writes State through a KV backend.
type Store struct {
	kv     KV
	logger zerolog.Logger
	mu     sync.Mutex
}

// New creates a store over kv.
func New(kv KV, logger zerolog.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Load returns the current state.
//
// Resolution order:
//  1. A valid document under StateKey (version 2 as is, version 1 migrated;
//     a migrated document is not written back).
//  2. Legacy keys, if either exists: history is sanitized (unparseable JSON
//     yields an empty history), an invalid theme becomes auto. The result is
//     saved.
//  3. A fresh default state, which is saved.
//
// A corrupt document is not an error; it falls through to step 2.
func (s *Store) Load(ctx context.Context) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save sanitizes and writes st. See Store.save for the rules.
func (s *Store) Save(ctx context.Context, st *State) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, st)
}

// SetTheme stores a new theme mode.
func (s *Store) SetTheme(ctx context.Context, mode ThemeMode) (*State, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTheme, mode)
	}
	return s.update(ctx, func(st *State) error {
		st.Theme = mode
		return nil
	})
}

// ToggleTheme advances the theme with NextTheme.
func (s *Store) ToggleTheme(ctx context.Context) (*State, error) {
	return s.update(ctx, func(st *State) error {
		st.Theme = NextTheme(st.Theme)
		return nil
	})
}

// PushHistory moves hex to the front of the history, removing an earlier
// occurrence, and keeps at most KeepLimit entries. Invalid colors are
// discarded by the sanitizing save.
func (s *Store) PushHistory(ctx context.Context, hex string) (*State, error) {
	hx := strings.ToUpper(hex)
	return s.update(ctx, func(st *State) error {
		st.History = truncate(append([]string{hx}, without(st.History, hx)...), KeepLimit)
		return nil
	})
}

// ClearHistory empties the history.
func (s *Store) ClearHistory(ctx context.Context) (*State, error) {
	return s.update(ctx, func(st *State) error {
		st.History = []string{}
		return nil
	})
}

// TogglePin unpins hex if pinned, otherwise pins it at the front, keeping at
// most KeepLimit pins.
func (s *Store) TogglePin(ctx context.Context, hex string) (*State, error) {
	canon, err := colormath.Canonical(hex)
	if err != nil {
		return nil, err
	}
	hx := string(canon)
	return s.update(ctx, func(st *State) error {
		if contains(st.Pins, hx) {
			st.Pins = without(st.Pins, hx)
		} else {
			st.Pins = truncate(append([]string{hx}, st.Pins...), KeepLimit)
		}
		return nil
	})
}

// IsPinned reports whether hex (compared case-insensitively) is pinned.
func (s *Store) IsPinned(ctx context.Context, hex string) (bool, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return contains(st.Pins, strings.ToUpper(hex)), nil
}

func (s *Store) update(ctx context.Context, fn func(*State) error) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	return s.save(ctx, st)
}

func (s *Store) load(ctx context.Context) (*State, error) {
	raw, ok, err := s.kv.Get(ctx, StateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	if ok && raw != "" {
		st, migrated := decodeState(raw)
		if st != nil {
			if migrated {
				s.logger.Debug().Int("history", len(st.History)).Msg("migrated v1 state")
			}
			return st, nil
		}
		s.logger.Warn().Str("key", StateKey).Msg("ignoring unreadable state document")
	}

	histRaw, histOK, err := s.kv.Get(ctx, LegacyHistoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy history: %w", err)
	}
	themeRaw, themeOK, err := s.kv.Get(ctx, LegacyThemeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy theme: %w", err)
	}

	if (histOK && histRaw != "") || (themeOK && themeRaw != "") {
		st := defaultState()
		if histRaw != "" {
			var hist []interface{}
			if err := json.Unmarshal([]byte(histRaw), &hist); err == nil {
				st.History = sanitizeHexList(stringsOf(hist))
			}
		}
		if ThemeMode(themeRaw).Valid() {
			st.Theme = ThemeMode(themeRaw)
		}
		s.logger.Debug().Int("history", len(st.History)).Str("theme", string(st.Theme)).Msg("imported legacy state")
		return s.save(ctx, st)
	}

	return s.save(ctx, defaultState())
}

// save writes a sanitized copy of st: only valid hex entries (upper-cased)
// are kept, history and pins are capped at SavedLimit and an invalid theme
// becomes auto. The first LegacyHistoryLimit history entries and the theme
// are mirrored to the legacy keys.
func (s *Store) save(ctx context.Context, st *State) (*State, error) {
	clean := &State{
		Version: CurrentVersion,
		History: truncate(sanitizeHexList(st.History), SavedLimit),
		Theme:   st.Theme,
		Pins:    truncate(sanitizeHexList(st.Pins), SavedLimit),
	}
	if !clean.Theme.Valid() {
		clean.Theme = ThemeAuto
	}

	doc, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	legacy, err := json.Marshal(truncate(clean.History, LegacyHistoryLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to encode legacy history: %w", err)
	}

	if err := s.kv.Set(ctx, StateKey, string(doc)); err != nil {
		return nil, fmt.Errorf("failed to write state: %w", err)
	}
	if err := s.kv.Set(ctx, LegacyHistoryKey, string(legacy)); err != nil {
		return nil, fmt.Errorf("failed to write legacy history: %w", err)
	}
	if err := s.kv.Set(ctx, LegacyThemeKey, string(clean.Theme)); err != nil {
		return nil, fmt.Errorf("failed to write legacy theme: %w", err)
	}

	return clean, nil
}
