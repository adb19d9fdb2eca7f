// Package server implements the MCP (Model Context Protocol) server for the
// color tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Generation and Conversion:
//   - color_random: Random color, optionally recorded in history
//   - color_validate: Check and canonicalize a hex string
//   - color_convert: Hex to RGB and HSL, as a {ok, value, error} result
//   - color_from_rgb / color_from_hsl: Build a color from channels
//   - color_nearest_name: Closest CSS named color
//
// Contrast:
//   - color_contrast: WCAG ratio and level for a color pair
//   - color_preview: Best text color, badge, pinned state
//
// Gradients and Swatches:
//   - color_gradient: HSL interpolation along the shorter hue arc
//   - color_swatch: PNG strip of colors, base64-encoded
//
// Preferences:
//   - history_list, history_push, history_clear
//   - pins_list, pin_toggle, pin_status
//   - theme_get, theme_set, theme_toggle
//
// # Persistence
//
// History, pins and theme live in a [store.Store]. The backing key-value
// store is either in memory or a SQLite file, selected by configuration.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	st := store.New(store.NewMemoryKV(), logger)
//	srv := server.New(st, cfg, logger)
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal().Err(err).Msg("server stopped")
//	}
package server
