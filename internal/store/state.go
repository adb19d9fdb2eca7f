package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/colorlab-mcp/internal/colormath"
)

// ErrInvalidTheme is returned for a theme mode other than auto, light or dark.
var ErrInvalidTheme = errors.New("invalid theme mode")

// ThemeMode is the user's theme preference.
type ThemeMode string

const (
	ThemeAuto  ThemeMode = "auto"
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Valid reports whether m is one of the known modes.
func (m ThemeMode) Valid() bool {
	return m == ThemeAuto || m == ThemeLight || m == ThemeDark
}

// ParseTheme validates s as a theme mode.
func ParseTheme(s string) (ThemeMode, error) {
	m := ThemeMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
	return m, nil
}

// NextTheme cycles auto -> dark -> light -> auto. Unknown modes restart at dark.
func NextTheme(m ThemeMode) ThemeMode {
	switch m {
	case ThemeDark:
		return ThemeLight
	case ThemeLight:
		return ThemeAuto
	default:
		return ThemeDark
	}
}

// CurrentVersion is the schema version written by Save.
const CurrentVersion = 2

// State is the persisted preference document (schema version 2).
type State struct {
	Version int       `json:"version"`
	History []string  `json:"history"`
	Theme   ThemeMode `json:"theme"`
	Pins    []string  `json:"pins"`
}

func defaultState() *State {
	return &State{Version: CurrentVersion, History: []string{}, Theme: ThemeAuto, Pins: []string{}}
}

// Initial picks the color to show first: the newest pin, else the newest
// history entry, else black.
func Initial(s *State) colormath.Hex {
	if s != nil {
		if len(s.Pins) > 0 {
			return colormath.Hex(s.Pins[0])
		}
		if len(s.History) > 0 {
			return colormath.Hex(s.History[0])
		}
	}
	return colormath.Black
}

// rawState mirrors State with optional fields so that missing or mistyped
// members can be told apart from empty ones.
type rawState struct {
	Version int       `json:"version"`
	History *[]string `json:"history"`
	Theme   *string   `json:"theme"`
	Pins    *[]string `json:"pins"`
}

// decodeState parses a stored document. It returns nil when the document is
// not a valid v1 or v2 state. A v1 document is migrated.
func decodeState(data string) (*State, bool) {
	var raw rawState
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, false
	}
	if raw.History == nil || raw.Theme == nil || !ThemeMode(*raw.Theme).Valid() {
		return nil, false
	}

	switch raw.Version {
	case 2:
		if raw.Pins == nil {
			return nil, false
		}
		return &State{
			Version: 2,
			History: *raw.History,
			Theme:   ThemeMode(*raw.Theme),
			Pins:    *raw.Pins,
		}, false
	case 1:
		return &State{
			Version: CurrentVersion,
			History: sanitizeHexList(*raw.History),
			Theme:   ThemeMode(*raw.Theme),
			Pins:    []string{},
		}, true
	default:
		return nil, false
	}
}

// sanitizeHexList keeps only valid hex entries, upper-cased, in order.
func sanitizeHexList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		if colormath.IsHex(h) {
			out = append(out, strings.ToUpper(h))
		}
	}
	return out
}

// stringsOf returns the string members of a decoded JSON array, dropping
// every other type.
func stringsOf(in []interface{}) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func truncate(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func without(in []string, v string) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		if h != v {
			out = append(out, h)
		}
	}
	return out
}

func contains(in []string, v string) bool {
	for _, h := range in {
		if h == v {
			return true
		}
	}
	return false
}
