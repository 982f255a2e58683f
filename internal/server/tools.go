package server

import (
	"github.com/ironsheep/simaja-mcp/internal/family"
	"github.com/ironsheep/simaja-mcp/internal/imaging"
	"github.com/ironsheep/simaja-mcp/internal/simdata"
	"github.com/ironsheep/simaja-mcp/internal/vocab"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionProperty describes the region argument shared by the image tools.
func regionProperty(defaultRegion string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Part of the screenshot to read. 'auto' finds the dark Simology panel; 'full' reads everything.",
		"enum":        append([]string{simdata.RegionAuto}, imaging.RegionNames()...),
		"default":     defaultRegion,
	}
}

func outputLanguageProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Language of returned labels: 'target' (Swedish, default) or 'source' (English)",
		"enum":        []string{"target", "source"},
	}
}

func relationshipTypeNames() []string {
	types := family.RelationshipTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Screenshot Reading
		{
			Name:        "sim_scan_screenshot",
			Description: "Read a Sims 4 Simology screenshot: OCR the panel and match name, age, traits, aspiration, career and skills against the game vocabulary. Optionally save the result as a Sim in a house.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot",
					},
					"region": regionProperty(simdata.RegionAuto),
					"preprocess": map[string]interface{}{
						"type":        "boolean",
						"description": "Upscale, grayscale and invert the panel before OCR. Default true",
						"default":     true,
					},
					"output_language": outputLanguageProperty(),
					"house_id": map[string]interface{}{
						"type":        "string",
						"description": "Save the Sim into this house when the result is valid",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sim_parse_text",
			Description: "Match already recognised text against the Sims 4 vocabulary and validate the result. Useful when OCR ran elsewhere.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Raw OCR text, one panel line per line",
					},
					"output_language": outputLanguageProperty(),
				},
				"required": []string{"text"},
			},
		},

		// Image and OCR
		{
			Name:        "ocr_text",
			Description: "Run OCR over a screenshot or part of it and return the text with word or block positions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"region": regionProperty(imaging.RegionFull),
					"preprocess": map[string]interface{}{
						"type":        "boolean",
						"description": "Prepare the image the way sim_scan_screenshot does. Default false",
						"default":     false,
					},
					"level": map[string]interface{}{
						"type":        "string",
						"description": "'word' returns text with word boxes, 'block' returns block boxes only",
						"enum":        []string{"word", "block"},
						"default":     "word",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum block confidence (0.0-1.0) for level 'block'. Default 0.5",
						"minimum":     0,
						"maximum":     1,
						"default":     0.5,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_load",
			Description: "Load a screenshot and report its size, format, brightness and where the Simology panel is.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Vocabulary
		{
			Name:        "vocabulary_list",
			Description: "List the labels of a vocabulary table for pickers, sorted in Swedish order. Aspirations are grouped by category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"table": map[string]interface{}{
						"type":        "string",
						"description": "Vocabulary table",
						"enum":        vocab.TableNames(),
					},
				},
				"required": []string{"table"},
			},
		},
		{
			Name:        "vocabulary_translate",
			Description: "Translate a label between English and Swedish using a vocabulary table. Aspirations also report their category.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"table": map[string]interface{}{
						"type":        "string",
						"description": "Vocabulary table",
						"enum":        vocab.TableNames(),
					},
					"label": map[string]interface{}{
						"type":        "string",
						"description": "Label to translate",
						"minLength":   1,
					},
					"to": map[string]interface{}{
						"type":        "string",
						"description": "'target' translates English to Swedish (default), 'source' Swedish to English",
						"enum":        []string{"target", "source"},
						"default":     "target",
					},
				},
				"required": []string{"table", "label"},
			},
		},

		// Family Tree
		{
			Name:        "family_add_world",
			Description: "Add a world to the family tree. Worlds are listed in the order they were added.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "World name, e.g. Willow Creek",
						"minLength":   1,
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "Optional notes about the world",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "family_list_worlds",
			Description: "List all worlds in display order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "family_add_house",
			Description: "Add a household to a world.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"world_id": map[string]interface{}{
						"type":        "string",
						"description": "World the house belongs to",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Household name",
						"minLength":   1,
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "Optional notes about the household",
					},
				},
				"required": []string{"world_id", "name"},
			},
		},
		{
			Name:        "family_list_houses",
			Description: "List households, optionally only those in one world.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"world_id": map[string]interface{}{
						"type":        "string",
						"description": "Only list houses in this world",
					},
				},
			},
		},
		{
			Name:        "family_add_sim",
			Description: "Add a Sim to a household. Labels are normally the Swedish ones returned by sim_scan_screenshot.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"house_id": map[string]interface{}{
						"type":        "string",
						"description": "Household the Sim lives in",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Full name",
						"minLength":   1,
					},
					"age": map[string]interface{}{
						"type":        "string",
						"description": "Life stage",
					},
					"traits": map[string]interface{}{
						"type":        "array",
						"description": "Up to three traits",
						"items":       map[string]interface{}{"type": "string"},
						"maxItems":    simdata.MaxTraits,
					},
					"aspiration": map[string]interface{}{
						"type":        "string",
						"description": "Current aspiration",
					},
					"career": map[string]interface{}{
						"type":        "string",
						"description": "Current career",
					},
					"skills": map[string]interface{}{
						"type":        "object",
						"description": "Skill levels by skill name",
						"additionalProperties": map[string]interface{}{
							"type":    "integer",
							"minimum": 1,
							"maximum": 15,
						},
					},
					"notes": map[string]interface{}{
						"type":        "string",
						"description": "Free-form notes",
					},
				},
				"required": []string{"house_id", "name"},
			},
		},
		{
			Name:        "family_list_sims",
			Description: "List Sims in a household or a whole world. With neither argument, lists every Sim.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"house_id": map[string]interface{}{
						"type":        "string",
						"description": "Only list Sims in this household",
					},
					"world_id": map[string]interface{}{
						"type":        "string",
						"description": "Only list Sims in this world (ignored when house_id is set)",
					},
				},
			},
		},
		{
			Name:        "family_sim_overview",
			Description: "Get a Sim with its household, world, relationships and diary.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sim_id": map[string]interface{}{
						"type":        "string",
						"description": "Sim to describe",
					},
				},
				"required": []string{"sim_id"},
			},
		},
		{
			Name:        "family_delete_sim",
			Description: "Delete a Sim together with its relationships and diary entries.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sim_id": map[string]interface{}{
						"type":        "string",
						"description": "Sim to delete",
					},
				},
				"required": []string{"sim_id"},
			},
		},
		{
			Name:        "family_update_sim",
			Description: "Change a Sim. Only the given fields change; traits and skills replace the stored values, and an empty list or object clears them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sim_id": map[string]interface{}{
						"type":        "string",
						"description": "Sim to change",
					},
					"house_id": map[string]interface{}{
						"type":        "string",
						"description": "Move the Sim to this household",
						"minLength":   1,
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "New name",
						"minLength":   1,
					},
					"age": map[string]interface{}{
						"type":        "string",
						"description": "Life stage",
					},
					"traits": map[string]interface{}{
						"type":        "array",
						"description": "Trait labels",
						"items":       map[string]interface{}{"type": "string", "minLength": 1},
						"maxItems":    simdata.MaxTraits,
					},
					"aspiration": map[string]interface{}{
						"type":        "string",
						"description": "Aspiration label",
					},
					"career": map[string]interface{}{
						"type":        "string",
						"description": "Career label",
					},
					"skills": map[string]interface{}{
						"type":        "object",
						"description": "Skill levels by skill name",
						"additionalProperties": map[string]interface{}{
							"type":    "integer",
							"minimum": 1,
							"maximum": 15,
						},
					},
					"notes": map[string]interface{}{
						"type":        "string",
						"description": "Free-form notes",
					},
				},
				"required": []string{"sim_id"},
			},
		},
		{
			Name:        "family_delete_house",
			Description: "Delete a household. Its Sims are kept and no longer belong to a household.",
			InputSchema: idSchema("Household to delete"),
		},
		{
			Name:        "family_delete_relationship",
			Description: "Delete one relationship. Both Sims are kept.",
			InputSchema: idSchema("Relationship to delete"),
		},
		{
			Name:        "family_delete_diary_entry",
			Description: "Delete one diary entry.",
			InputSchema: idSchema("Diary entry to delete"),
		},
		{
			Name:        "family_add_relationship",
			Description: "Link two Sims. For 'parent', the first Sim is the parent of the second.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sim1_id": map[string]interface{}{
						"type":        "string",
						"description": "First Sim",
					},
					"sim2_id": map[string]interface{}{
						"type":        "string",
						"description": "Second Sim",
					},
					"type": map[string]interface{}{
						"type":        "string",
						"description": "How the Sims are related",
						"enum":        relationshipTypeNames(),
					},
				},
				"required": []string{"sim1_id", "sim2_id", "type"},
			},
		},
		{
			Name:        "family_add_diary_entry",
			Description: "Write a dated diary entry for a Sim.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sim_id": map[string]interface{}{
						"type":        "string",
						"description": "Sim the entry is about",
					},
					"date": map[string]interface{}{
						"type":        "string",
						"description": "Date as YYYY-MM-DD",
						"pattern":     `^\d{4}-\d{2}-\d{2}$`,
					},
					"title": map[string]interface{}{
						"type":        "string",
						"description": "Optional title",
					},
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Entry text",
						"minLength":   1,
					},
				},
				"required": []string{"sim_id", "date", "text"},
			},
		},
	}
}

func idSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"id"},
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
