// Package colornames finds the closest CSS/SVG named color for a hex value.
//
// Candidates come from golang.org/x/image/colornames. Distances are CIEDE2000
// in CIE L*a*b* as computed by go-colorful, so "close" means perceptually
// close rather than close in RGB.
package colornames

import (
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/ironsheep/colorlab-mcp/internal/colormath"
)

// Match is the named color closest to a query.
type Match struct {
	Name     string        `json:"name"`     // CSS/SVG color keyword
	Hex      colormath.Hex `json:"hex"`      // Hex value of the named color
	Distance float64       `json:"distance"` // CIEDE2000 distance (0 = exact)
	Exact    bool          `json:"exact"`    // True when the query equals the named color
}

type entry struct {
	name  string
	hex   colormath.Hex
	color colorful.Color
}

var (
	tableOnce sync.Once
	table     []entry
)

// candidates returns the named colors in name order, built on first use.
func candidates() []entry {
	tableOnce.Do(func() {
		table = make([]entry, 0, len(colornames.Names))
		for _, name := range colornames.Names {
			c := colornames.Map[name]
			rgb := colormath.RGB{R: c.R, G: c.G, B: c.B}
			cf, _ := colorful.MakeColor(c)
			table = append(table, entry{name: name, hex: colormath.RGBToHex(rgb), color: cf})
		}
	})
	return table
}

// Nearest returns the named color closest to hex.
//
// Ties keep the alphabetically first name, so "#00FFFF" is reported as
// "aqua" rather than "cyan".
func Nearest(hex string) (*Match, error) {
	canon, err := colormath.Canonical(hex)
	if err != nil {
		return nil, err
	}
	q, err := colorful.Hex(string(canon))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", canon, err)
	}

	var best *entry
	bestDist := 0.0
	for i := range candidates() {
		e := &table[i]
		d := q.DistanceCIEDE2000(e.color)
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}

	return &Match{
		Name:     best.name,
		Hex:      best.hex,
		Distance: colormath.Round(bestDist, 4),
		Exact:    best.hex == canon,
	}, nil
}
