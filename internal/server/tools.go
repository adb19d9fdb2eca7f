package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func hexProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"pattern":     "^#[0-9A-Fa-f]{6}$",
		"description": description,
	}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Color Generation and Conversion
		{
			Name:        "color_random",
			Description: "Generate a uniformly random color. By default the color is also recorded in the history.",
			InputSchema: objectSchema(map[string]interface{}{
				"record": map[string]interface{}{
					"type":        "boolean",
					"description": "Push the new color to the history. Default true",
					"default":     true,
				},
			}),
		},
		{
			Name:        "color_validate",
			Description: "Check whether a string is a #RRGGBB hex color and return its canonical upper-case form.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": map[string]interface{}{
					"type":        "string",
					"description": "Candidate color string",
				},
			}, "hex"),
		},
		{
			Name:        "color_convert",
			Description: "Convert a hex color to RGB and HSL. Returns {ok, value, error}; ok is false for malformed input.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp("Color as #RRGGBB (case-insensitive)"),
			}, "hex"),
		},
		{
			Name:        "color_from_rgb",
			Description: "Build a color from RGB channels. Channels are rounded and clamped to 0-255.",
			InputSchema: objectSchema(map[string]interface{}{
				"r": map[string]interface{}{"type": "number", "description": "Red (0-255)"},
				"g": map[string]interface{}{"type": "number", "description": "Green (0-255)"},
				"b": map[string]interface{}{"type": "number", "description": "Blue (0-255)"},
			}, "r", "g", "b"),
		},
		{
			Name:        "color_from_hsl",
			Description: "Build a color from HSL. Hue wraps around 360; saturation and lightness are clamped to 0-100.",
			InputSchema: objectSchema(map[string]interface{}{
				"h": map[string]interface{}{"type": "number", "description": "Hue in degrees"},
				"s": map[string]interface{}{"type": "number", "description": "Saturation percent (0-100)"},
				"l": map[string]interface{}{"type": "number", "description": "Lightness percent (0-100)"},
			}, "h", "s", "l"),
		},
		{
			Name:        "color_nearest_name",
			Description: "Find the closest CSS named color (CIEDE2000 distance).",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp("Color as #RRGGBB"),
			}, "hex"),
		},

		// Contrast
		{
			Name:        "color_contrast",
			Description: "Compute the WCAG 2.x contrast ratio between two colors and classify it (AAA >= 7, AA >= 4.5).",
			InputSchema: objectSchema(map[string]interface{}{
				"a": hexProp("First color"),
				"b": hexProp("Second color"),
			}, "a", "b"),
		},
		{
			Name:        "color_preview",
			Description: "Describe a color as a preview card: RGB/HSL, best text color (black or white), contrast with it, WCAG level, badge text, pinned state and nearest name.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp("Color to preview"),
			}, "hex"),
		},

		// Gradients and Swatches
		{
			Name:        "color_gradient",
			Description: "Interpolate between two colors in HSL along the shorter hue arc. Both endpoints are included. Steps are clamped to 2-64.",
			InputSchema: objectSchema(map[string]interface{}{
				"from": hexProp("Start color. Default: newest pin, else newest history entry, else #000000"),
				"to":   hexProp("End color. Default #0000FF"),
				"steps": map[string]interface{}{
					"type":        "number",
					"minimum":     2,
					"maximum":     64,
					"description": "Number of colors including both endpoints. Fractions are floored; out-of-range values are clamped. Default from server config",
				},
			}),
		},
		{
			Name:        "color_swatch",
			Description: "Render colors as a horizontal strip of square cells and return it as base64-encoded PNG.",
			InputSchema: objectSchema(map[string]interface{}{
				"colors": map[string]interface{}{
					"type":        "array",
					"items":       hexProp("Color"),
					"description": "Colors, left to right",
				},
				"cell_size": map[string]interface{}{
					"type":        "integer",
					"description": "Cell edge in pixels. Default from server config",
				},
			}, "colors"),
		},

		// History
		{
			Name:        "history_list",
			Description: "List recently generated colors, newest first.",
			InputSchema: objectSchema(map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum entries to return. Default 10",
					"default":     10,
				},
			}),
		},
		{
			Name:        "history_push",
			Description: "Record a color at the front of the history, removing an earlier occurrence.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp("Color to record"),
			}, "hex"),
		},
		{
			Name:        "history_clear",
			Description: "Remove all history entries. Pins are kept.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},

		// Pins
		{
			Name:        "pins_list",
			Description: "List pinned colors, newest first.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "pin_toggle",
			Description: "Pin a color, or unpin it if it is already pinned.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp("Color to pin or unpin"),
			}, "hex"),
		},
		{
			Name:        "pin_status",
			Description: "Report whether a color is pinned.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp("Color to check"),
			}, "hex"),
		},

		// Theme
		{
			Name:        "theme_get",
			Description: "Get the stored theme mode (auto, light or dark).",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "theme_set",
			Description: "Set the theme mode.",
			InputSchema: objectSchema(map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"auto", "light", "dark"},
					"description": "Theme mode",
				},
			}, "mode"),
		},
		{
			Name:        "theme_toggle",
			Description: "Cycle the theme mode: auto -> dark -> light -> auto.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
