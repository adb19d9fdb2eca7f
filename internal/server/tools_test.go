package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"color_random",
		"color_validate",
		"color_convert",
		"color_from_rgb",
		"color_from_hsl",
		"color_nearest_name",
		"color_contrast",
		"color_preview",
		"color_gradient",
		"color_swatch",
		"history_list",
		"history_push",
		"history_clear",
		"pins_list",
		"pin_toggle",
		"pin_status",
		"theme_get",
		"theme_set",
		"theme_toggle",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required field must be declared
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, r := range required {
					if _, ok := props[r]; !ok {
						t.Errorf("required field %q is not a property", r)
					}
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredHex(t *testing.T) {
	toolsRequiringHex := []string{
		"color_validate",
		"color_convert",
		"color_nearest_name",
		"color_preview",
		"history_push",
		"pin_toggle",
		"pin_status",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range toolsRequiringHex {
		t.Run(name, func(t *testing.T) {
			tool, ok := toolMap[name]
			if !ok {
				t.Fatalf("tool %s not found", name)
			}
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != 1 || required[0] != "hex" {
				t.Errorf("required: got %v, want [hex]", required)
			}
		})
	}
}

func TestToolDefinitions_GradientStepsBounds(t *testing.T) {
	var tool Tool
	for _, tt := range GetToolDefinitions() {
		if tt.Name == "color_gradient" {
			tool = tt
			break
		}
	}
	if tool.Name == "" {
		t.Fatal("color_gradient tool not found")
	}

	props := tool.InputSchema["properties"].(map[string]interface{})
	steps := props["steps"].(map[string]interface{})
	if steps["minimum"] != 2 || steps["maximum"] != 64 {
		t.Errorf("steps bounds: got [%v, %v], want [2, 64]", steps["minimum"], steps["maximum"])
	}
	if _, ok := tool.InputSchema["required"]; ok {
		t.Error("color_gradient arguments should all be optional")
	}
}

func TestToolDefinitions_ThemeEnum(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "theme_set" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		mode := props["mode"].(map[string]interface{})
		enum, ok := mode["enum"].([]string)
		if !ok || len(enum) != 3 {
			t.Fatalf("mode enum: got %v", mode["enum"])
		}
		return
	}
	t.Fatal("theme_set tool not found")
}
