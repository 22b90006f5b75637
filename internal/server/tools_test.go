package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"particle_convert",
		"particle_convert_batch",
		"svg_export",
		"svg_info",
	}

	if len(tools) != len(expectedTools) {
		t.Fatalf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("tool %s defined twice", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || len(props) == 0 {
				t.Fatal("InputSchema missing 'properties'")
			}

			// every required parameter must be described
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_SettingsDefaults(t *testing.T) {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	want := map[string]interface{}{
		"particle_size":    2,
		"particle_density": 50,
		"blur":             0,
		"save":             false,
	}

	for _, name := range []string{"particle_convert", "particle_convert_batch"} {
		props := toolMap[name].InputSchema["properties"].(map[string]interface{})
		for param, def := range want {
			p, ok := props[param].(map[string]interface{})
			if !ok {
				t.Errorf("%s: missing parameter %s", name, param)
				continue
			}
			if p["default"] != def {
				t.Errorf("%s.%s: default got %v, want %v", name, param, p["default"], def)
			}
		}

		size := props["particle_size"].(map[string]interface{})
		if size["minimum"] != 0.05 {
			t.Errorf("%s.particle_size: minimum got %v, want 0.05", name, size["minimum"])
		}
	}
}

func TestToolDefinitions_ExportDefaults(t *testing.T) {
	var exportTool Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "svg_export" {
			exportTool = tool
		}
	}

	props := exportTool.InputSchema["properties"].(map[string]interface{})
	if d := props["scale"].(map[string]interface{})["default"]; d != 2.0 {
		t.Errorf("scale default: got %v", d)
	}
	if d := props["quality"].(map[string]interface{})["default"]; d != 0.95 {
		t.Errorf("quality default: got %v", d)
	}
	enum := props["format"].(map[string]interface{})["enum"].([]string)
	if len(enum) != 4 {
		t.Errorf("format enum: got %v", enum)
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
