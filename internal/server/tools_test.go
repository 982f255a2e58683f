package server

import (
	"context"
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"sim_scan_screenshot",
		"sim_parse_text",
		"ocr_text",
		"image_load",
		"vocabulary_list",
		"vocabulary_translate",
		"family_add_world",
		"family_list_worlds",
		"family_add_house",
		"family_list_houses",
		"family_add_sim",
		"family_list_sims",
		"family_sim_overview",
		"family_update_sim",
		"family_delete_sim",
		"family_delete_house",
		"family_add_relationship",
		"family_delete_relationship",
		"family_add_diary_entry",
		"family_delete_diary_entry",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("expected %d tools, got %d", len(expectedTools), len(tools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
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
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required argument must be described.
			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required argument %s has no property", name)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	toolsRequiringPath := []string{
		"sim_scan_screenshot",
		"ocr_text",
		"image_load",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range toolsRequiringPath {
		tool, ok := toolMap[name]
		if !ok {
			t.Errorf("tool %s not found", name)
			continue
		}
		required, _ := tool.InputSchema["required"].([]string)
		found := false
		for _, r := range required {
			if r == "path" {
				found = true
			}
		}
		if !found {
			t.Errorf("tool %s should require 'path'", name)
		}
	}
}

func TestToolDefinitions_RegionEnum(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		props := tool.InputSchema["properties"].(map[string]interface{})
		region, ok := props["region"].(map[string]interface{})
		if !ok {
			continue
		}

		enum, ok := region["enum"].([]string)
		if !ok {
			t.Fatalf("%s: region enum should be a string slice", tool.Name)
		}
		want := map[string]bool{"auto": false, "full": false, "center": false, "top-left": false}
		for _, v := range enum {
			if _, ok := want[v]; ok {
				want[v] = true
			}
		}
		for v, seen := range want {
			if !seen {
				t.Errorf("%s: region enum missing %s", tool.Name, v)
			}
		}
	}
}

func TestToolDefinitions_SchemasCompile(t *testing.T) {
	s := New()
	for _, tool := range GetToolDefinitions() {
		if _, ok := s.schemas[tool.Name]; !ok {
			t.Errorf("schema for %s did not compile", tool.Name)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "list-1",
		Method:  "tools/list",
	}

	resp := s.handleRequest(context.Background(), req)
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	// The list must survive the wire format.
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var decoded struct {
		Result struct {
			Tools []Tool `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if len(decoded.Result.Tools) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools over the wire, want %d", len(decoded.Result.Tools), len(GetToolDefinitions()))
	}
	for _, tool := range decoded.Result.Tools {
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: inputSchema type lost: %v", tool.Name, tool.InputSchema["type"])
		}
	}
}
