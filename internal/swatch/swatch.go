// Package swatch renders lists of colors as PNG strips and terminal blocks.
package swatch

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/colorlab-mcp/internal/colormath"
)

// MaxCells bounds the number of colors in one strip.
const MaxCells = 256

// MaxCellSize bounds the edge length of one cell in pixels.
const MaxCellSize = 512

// Image contains an encoded swatch strip.
type Image struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Cells       int    `json:"cells"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderPNG draws one cell x cell square per color, left to right, and
// returns the strip as a base64 PNG.
//
// The strip is first built at one pixel per color and then scaled with a
// nearest-neighbor filter, so cell edges stay sharp.
func RenderPNG(colors []string, cell int) (*Image, error) {
	if len(colors) == 0 {
		return nil, errors.New("at least one color is required")
	}
	if len(colors) > MaxCells {
		return nil, fmt.Errorf("too many colors: %d (max %d)", len(colors), MaxCells)
	}
	if cell <= 0 || cell > MaxCellSize {
		return nil, fmt.Errorf("cell size must be between 1 and %d, got %d", MaxCellSize, cell)
	}

	strip := imaging.New(len(colors), 1, color.Transparent)
	for i, h := range colors {
		c, err := parse(h)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		strip.Set(i, 0, c)
	}

	scaled := transform.Resize(strip, len(colors)*cell, cell, transform.NearestNeighbor)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, scaled, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}

	return &Image{
		Width:       scaled.Bounds().Dx(),
		Height:      scaled.Bounds().Dy(),
		Cells:       len(colors),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Terminal renders each color as a block labelled with its hex code, using
// the best text color for the label. Invalid entries are rendered as plain
// text.
func Terminal(colors []string) string {
	blocks := make([]string, 0, len(colors))
	for _, h := range colors {
		blocks = append(blocks, Block(h))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// Block renders a single labelled color block.
func Block(hex string) string {
	canon, err := colormath.Canonical(hex)
	if err != nil {
		return lipgloss.NewStyle().Padding(0, 1).Render(hex)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(string(canon))).
		Foreground(lipgloss.Color(string(colormath.BestTextOn(string(canon))))).
		Padding(0, 1).
		Render(string(canon))
}

func parse(h string) (colorful.Color, error) {
	canon, err := colormath.Canonical(h)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Hex(string(canon))
}
