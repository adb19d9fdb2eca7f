package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ironsheep/colorlab-mcp/internal/colormath"
	"github.com/ironsheep/colorlab-mcp/internal/colornames"
	"github.com/ironsheep/colorlab-mcp/internal/store"
	"github.com/ironsheep/colorlab-mcp/internal/swatch"
)

// Defaults applied when a tool call omits optional arguments.
const (
	defaultGradientTo   = colormath.Hex("#0000FF")
	defaultHistoryLimit = 10
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_convert", "pin_toggle").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug().Str("tool", params.Name).Err(err).Msg("tool call failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool call")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Validates color arguments
//  4. Calls the appropriate colormath/store/swatch function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Color Generation and Conversion
	case "color_random":
		return s.handleColorRandom(ctx, args)
	case "color_validate":
		return s.handleColorValidate(args)
	case "color_convert":
		return s.handleColorConvert(args)
	case "color_from_rgb":
		return s.handleColorFromRGB(args)
	case "color_from_hsl":
		return s.handleColorFromHSL(args)
	case "color_nearest_name":
		return s.handleColorNearestName(args)

	// Contrast
	case "color_contrast":
		return s.handleColorContrast(args)
	case "color_preview":
		return s.handleColorPreview(ctx, args)

	// Gradients and Swatches
	case "color_gradient":
		return s.handleColorGradient(ctx, args)
	case "color_swatch":
		return s.handleColorSwatch(args)

	// History
	case "history_list":
		return s.handleHistoryList(ctx, args)
	case "history_push":
		return s.handleHistoryPush(ctx, args)
	case "history_clear":
		return s.stateResult(s.store.ClearHistory(ctx))

	// Pins
	case "pins_list":
		return s.handlePinsList(ctx)
	case "pin_toggle":
		return s.handlePinToggle(ctx, args)
	case "pin_status":
		return s.handlePinStatus(ctx, args)

	// Theme
	case "theme_get":
		return s.handleThemeGet(ctx)
	case "theme_set":
		return s.handleThemeSet(ctx, args)
	case "theme_toggle":
		return s.themeResult(s.store.ToggleTheme(ctx))

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing or null arguments leave v
// untouched so that optional-only tools can be called without any.
func decodeArgs(args json.RawMessage, v interface{}) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Result Types ===

// ColorInfo describes one color in every supported encoding.
type ColorInfo struct {
	Hex colormath.Hex `json:"hex"`
	RGB colormath.RGB `json:"rgb"`
	HSL colormath.HSL `json:"hsl"`
}

func describe(c colormath.RGB) ColorInfo {
	hsl := colormath.RGBToHSL(c)
	return ColorInfo{
		Hex: colormath.RGBToHex(c),
		RGB: c,
		HSL: colormath.HSL{
			H: colormath.Round(hsl.H, colormath.DefaultDigits),
			S: colormath.Round(hsl.S, colormath.DefaultDigits),
			L: colormath.Round(hsl.L, colormath.DefaultDigits),
		},
	}
}

// StateResult is returned by tools that modify the history or pins.
type StateResult struct {
	History []string        `json:"history"`
	Pins    []string        `json:"pins"`
	Theme   store.ThemeMode `json:"theme"`
}

func (s *Server) stateResult(st *store.State, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return &StateResult{History: st.History, Pins: st.Pins, Theme: st.Theme}, nil
}

// ThemeResult is returned by the theme tools.
type ThemeResult struct {
	Theme store.ThemeMode `json:"theme"`
}

func (s *Server) themeResult(st *store.State, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return &ThemeResult{Theme: st.Theme}, nil
}

// === Color Generation and Conversion Handlers ===

type colorRandomArgs struct {
	Record *bool `json:"record"`
}

// RandomResult is the output of color_random.
type RandomResult struct {
	ColorInfo
	Recorded bool `json:"recorded"`
}

func (s *Server) handleColorRandom(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a colorRandomArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	record := a.Record == nil || *a.Record

	h := colormath.RandomHex()
	c, err := colormath.HexToRGB(string(h))
	if err != nil {
		return nil, err
	}
	if record {
		if _, err := s.store.PushHistory(ctx, string(h)); err != nil {
			return nil, err
		}
	}
	return &RandomResult{ColorInfo: describe(c), Recorded: record}, nil
}

type hexArgs struct {
	Hex string `json:"hex"`
}

// ValidateResult is the output of color_validate.
type ValidateResult struct {
	Input     string        `json:"input"`
	Valid     bool          `json:"valid"`
	Canonical colormath.Hex `json:"canonical,omitempty"`
}

func (s *Server) handleColorValidate(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	res := &ValidateResult{Input: a.Hex, Valid: colormath.IsHex(a.Hex)}
	if res.Valid {
		res.Canonical, _ = colormath.Canonical(a.Hex)
	}
	return res, nil
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := colormath.HexToRGB(a.Hex)
	if err != nil {
		return colormath.NewResult(ColorInfo{}, err), nil
	}
	return colormath.NewResult(describe(c), nil), nil
}

type rgbArgs struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

func (s *Server) handleColorFromRGB(args json.RawMessage) (interface{}, error) {
	var a rgbArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return describe(colormath.ClampRGB(a.R, a.G, a.B)), nil
}

type hslArgs struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

func (s *Server) handleColorFromHSL(args json.RawMessage) (interface{}, error) {
	var a hslArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return describe(colormath.HSLToRGB(colormath.HSL{H: a.H, S: a.S, L: a.L})), nil
}

func (s *Server) handleColorNearestName(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return colornames.Nearest(a.Hex)
}

// === Contrast Handlers ===

type contrastArgs struct {
	A string `json:"a"`
	B string `json:"b"`
}

// ContrastResult is the output of color_contrast.
type ContrastResult struct {
	A        colormath.Hex   `json:"a"`
	B        colormath.Hex   `json:"b"`
	Ratio    float64         `json:"ratio"`     // Rounded to 2 decimals
	RatioRaw float64         `json:"ratio_raw"` // Unrounded
	Level    colormath.Level `json:"level"`
}

func (s *Server) handleColorContrast(args json.RawMessage) (interface{}, error) {
	var a contrastArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ca, err := colormath.HexToRGB(a.A)
	if err != nil {
		return nil, fmt.Errorf("a: %w", err)
	}
	cb, err := colormath.HexToRGB(a.B)
	if err != nil {
		return nil, fmt.Errorf("b: %w", err)
	}

	ratio := colormath.Contrast(ca, cb)
	return &ContrastResult{
		A:        colormath.RGBToHex(ca),
		B:        colormath.RGBToHex(cb),
		Ratio:    colormath.Round(ratio, colormath.DefaultDigits),
		RatioRaw: ratio,
		Level:    colormath.LevelFor(ratio),
	}, nil
}

// PreviewResult is the output of color_preview.
type PreviewResult struct {
	ColorInfo
	BestText colormath.Hex     `json:"best_text"`
	Contrast float64           `json:"contrast"`
	Level    colormath.Level   `json:"level"`
	Badge    string            `json:"badge"`
	Pinned   bool              `json:"pinned"`
	Name     *colornames.Match `json:"nearest_name,omitempty"`
}

// Badge formats a level and ratio as "AA • 4.69:1".
func Badge(level colormath.Level, ratio float64) string {
	r := strconv.FormatFloat(colormath.Round(ratio, colormath.DefaultDigits), 'f', -1, 64)
	return fmt.Sprintf("%s • %s:1", level, r)
}

func (s *Server) handleColorPreview(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := colormath.HexToRGB(a.Hex)
	if err != nil {
		return nil, err
	}
	info := describe(c)

	ratio, err := colormath.TextContrast(string(info.Hex))
	if err != nil {
		return nil, err
	}
	level := colormath.WCAGLevel(string(info.Hex))

	pinned, err := s.store.IsPinned(ctx, string(info.Hex))
	if err != nil {
		return nil, err
	}
	name, err := colornames.Nearest(string(info.Hex))
	if err != nil {
		return nil, err
	}

	return &PreviewResult{
		ColorInfo: info,
		BestText:  colormath.BestTextOn(string(info.Hex)),
		Contrast:  colormath.Round(ratio, colormath.DefaultDigits),
		Level:     level,
		Badge:     Badge(level, ratio),
		Pinned:    pinned,
		Name:      name,
	}, nil
}

// === Gradient and Swatch Handlers ===

type gradientArgs struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Steps *float64 `json:"steps"` // Floored; nil uses the configured default
}

// GradientResult is the output of color_gradient.
type GradientResult struct {
	From   colormath.Hex   `json:"from"`
	To     colormath.Hex   `json:"to"`
	Steps  int             `json:"steps"`
	Colors []colormath.Hex `json:"colors"`
}

func (s *Server) handleColorGradient(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a gradientArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	if a.From == "" {
		st, err := s.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		a.From = string(store.Initial(st))
	}
	if a.To == "" {
		a.To = string(defaultGradientTo)
	}
	steps := s.cfg.GradientSteps
	if a.Steps != nil {
		steps = colormath.FloorSteps(*a.Steps)
	}

	from, err := colormath.Canonical(a.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := colormath.Canonical(a.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	colors, err := colormath.InterpolateHSLStrict(string(from), string(to), steps)
	if err != nil {
		return nil, err
	}

	return &GradientResult{From: from, To: to, Steps: len(colors), Colors: colors}, nil
}

type swatchArgs struct {
	Colors   []string `json:"colors"`
	CellSize int      `json:"cell_size"`
}

func (s *Server) handleColorSwatch(args json.RawMessage) (interface{}, error) {
	var a swatchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.CellSize == 0 {
		a.CellSize = s.cfg.SwatchSize
	}
	return swatch.RenderPNG(a.Colors, a.CellSize)
}

// === History Handlers ===

type historyListArgs struct {
	Limit int `json:"limit"`
}

// HistoryResult is the output of history_list.
type HistoryResult struct {
	History []string `json:"history"`
	Total   int      `json:"total"`
}

func (s *Server) handleHistoryList(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a historyListArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Limit <= 0 {
		a.Limit = defaultHistoryLimit
	}

	st, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	hist := st.History
	if len(hist) > a.Limit {
		hist = hist[:a.Limit]
	}
	return &HistoryResult{History: hist, Total: len(st.History)}, nil
}

func (s *Server) handleHistoryPush(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if _, err := colormath.Canonical(a.Hex); err != nil {
		return nil, err
	}
	return s.stateResult(s.store.PushHistory(ctx, a.Hex))
}

// === Pin Handlers ===

// PinsResult is the output of pins_list.
type PinsResult struct {
	Pins []string `json:"pins"`
}

func (s *Server) handlePinsList(ctx context.Context) (interface{}, error) {
	st, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &PinsResult{Pins: st.Pins}, nil
}

// PinResult is the output of pin_toggle and pin_status.
type PinResult struct {
	Hex    colormath.Hex `json:"hex"`
	Pinned bool          `json:"pinned"`
	Pins   []string      `json:"pins,omitempty"`
}

func (s *Server) handlePinToggle(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	hex, err := colormath.Canonical(a.Hex)
	if err != nil {
		return nil, err
	}
	st, err := s.store.TogglePin(ctx, string(hex))
	if err != nil {
		return nil, err
	}
	pinned := false
	for _, p := range st.Pins {
		if p == string(hex) {
			pinned = true
			break
		}
	}
	return &PinResult{Hex: hex, Pinned: pinned, Pins: st.Pins}, nil
}

func (s *Server) handlePinStatus(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	hex, err := colormath.Canonical(a.Hex)
	if err != nil {
		return nil, err
	}
	pinned, err := s.store.IsPinned(ctx, string(hex))
	if err != nil {
		return nil, err
	}
	return &PinResult{Hex: hex, Pinned: pinned}, nil
}

// === Theme Handlers ===

func (s *Server) handleThemeGet(ctx context.Context) (interface{}, error) {
	return s.themeResult(s.store.Load(ctx))
}

type themeSetArgs struct {
	Mode string `json:"mode"`
}

func (s *Server) handleThemeSet(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a themeSetArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	mode, err := store.ParseTheme(a.Mode)
	if err != nil {
		return nil, err
	}
	return s.themeResult(s.store.SetTheme(ctx, mode))
}
