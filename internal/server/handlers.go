package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ironsheep/simaja-mcp/internal/detection"
	"github.com/ironsheep/simaja-mcp/internal/family"
	"github.com/ironsheep/simaja-mcp/internal/imaging"
	"github.com/ironsheep/simaja-mcp/internal/ocr"
	"github.com/ironsheep/simaja-mcp/internal/simdata"
	"github.com/ironsheep/simaja-mcp/internal/vocab"
)

// errNoEngine is returned by the image tools when the server has no OCR
// engine.
var errNoEngine = errors.New("OCR is not available: no Tesseract engine configured")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sim_scan_screenshot").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the optional progress token.
	Meta *struct {
		ProgressToken interface{} `json:"progressToken,omitempty"`
	} `json:"_meta,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Arguments that do not match the tool's input schema are rejected with
// -32602 before the tool runs. Tool execution errors return a JSON-RPC error
// response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	if err := s.validateArguments(params.Name, params.Arguments); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	var progress func(int)
	if params.Meta != nil && params.Meta.ProgressToken != nil {
		progress = s.progressReporter(params.Meta.ProgressToken)
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments, progress)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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

// compileSchemas compiles each tool's input schema. A tool whose schema
// does not compile is logged and runs unvalidated.
func compileSchemas(tools []Tool, logger *slog.Logger) map[string]*gojsonschema.Schema {
	schemas := make(map[string]*gojsonschema.Schema, len(tools))
	for _, tool := range tools {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.InputSchema))
		if err != nil {
			logger.Error("invalid tool schema", "tool", tool.Name, "error", err)
			continue
		}
		schemas[tool.Name] = schema
	}
	return schemas
}

// validateArguments checks args against the schema of the named tool.
// Unknown tools pass; executeTool reports them.
func (s *Server) validateArguments(name string, args json.RawMessage) error {
	schema, ok := s.schemas[name]
	if !ok {
		return nil
	}
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid arguments for %s: %s", name, strings.Join(msgs, "; "))
}

// progressReporter sends notifications/progress for token.
func (s *Server) progressReporter(token interface{}) func(int) {
	return func(percent int) {
		s.sendNotification(MCPNotification{
			JSONRPC: "2.0",
			Method:  "notifications/progress",
			Params: map[string]interface{}{
				"progressToken": token,
				"progress":      percent,
				"total":         100,
			},
		})
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate simdata/ocr/vocab/family function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage, progress func(int)) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Screenshot Reading
	case "sim_scan_screenshot":
		return s.handleSimScanScreenshot(ctx, args, progress)
	case "sim_parse_text":
		return s.handleSimParseText(args)

	// Image and OCR
	case "ocr_text":
		return s.handleOCRText(ctx, args, progress)
	case "image_load":
		return s.handleImageLoad(args)

	// Vocabulary
	case "vocabulary_list":
		return s.handleVocabularyList(args)
	case "vocabulary_translate":
		return s.handleVocabularyTranslate(args)

	// Family Tree
	case "family_add_world":
		return s.handleFamilyAddWorld(ctx, args)
	case "family_list_worlds":
		return s.handleFamilyListWorlds(ctx)
	case "family_add_house":
		return s.handleFamilyAddHouse(ctx, args)
	case "family_list_houses":
		return s.handleFamilyListHouses(ctx, args)
	case "family_add_sim":
		return s.handleFamilyAddSim(ctx, args)
	case "family_list_sims":
		return s.handleFamilyListSims(ctx, args)
	case "family_sim_overview":
		return s.handleFamilySimOverview(ctx, args)
	case "family_update_sim":
		return s.handleFamilyUpdateSim(ctx, args)
	case "family_delete_sim":
		return s.handleFamilyDeleteSim(ctx, args)
	case "family_delete_house":
		return s.handleFamilyDeleteHouse(ctx, args)
	case "family_delete_relationship":
		return s.handleFamilyDeleteRelationship(ctx, args)
	case "family_delete_diary_entry":
		return s.handleFamilyDeleteDiaryEntry(ctx, args)
	case "family_add_relationship":
		return s.handleFamilyAddRelationship(ctx, args)
	case "family_add_diary_entry":
		return s.handleFamilyAddDiaryEntry(ctx, args)

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

// parser returns the parser for a language name, or the server default
// when name is empty.
func (s *Server) parser(name string) (*simdata.Parser, error) {
	if name == "" {
		return s.parsers[s.outputLang], nil
	}
	lang, err := vocab.ParseLanguage(name)
	if err != nil {
		return nil, err
	}
	return s.parsers[lang], nil
}

// === Screenshot Handlers ===

type simScanArgs struct {
	Path           string `json:"path"`
	Region         string `json:"region"`
	Preprocess     *bool  `json:"preprocess"`
	OutputLanguage string `json:"output_language"`
	HouseID        string `json:"house_id"`
}

type parseResult struct {
	Data       *simdata.ParsedSimData `json:"data"`
	Validation simdata.Validation     `json:"validation"`
}

type simScanResult struct {
	parseResult

	// Sim is set when the result was saved to a house.
	Sim *family.Sim `json:"sim,omitempty"`

	// SaveError explains why a requested save did not happen.
	SaveError string `json:"save_error,omitempty"`
}

func (s *Server) handleSimScanScreenshot(ctx context.Context, args json.RawMessage, progress func(int)) (interface{}, error) {
	var a simScanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.engine == nil {
		return nil, errNoEngine
	}

	p, err := s.parser(a.OutputLanguage)
	if err != nil {
		return nil, err
	}

	opts := []simdata.ProcessorOption{
		simdata.WithParser(p),
		simdata.WithImageCache(s.cache),
		simdata.WithLogger(s.logger),
	}
	if a.Region != "" {
		opts = append(opts, simdata.WithRegion(a.Region))
	}
	if a.Preprocess == nil || *a.Preprocess {
		opts = append(opts, simdata.WithPreprocessOptions(s.preprocess))
	} else {
		opts = append(opts, simdata.WithoutPreprocessing())
	}

	parsed, err := simdata.NewProcessor(s.engine, opts...).ProcessFile(ctx, a.Path, progress)
	if err != nil {
		return nil, err
	}

	result := simScanResult{parseResult: parseResult{Data: parsed, Validation: simdata.Validate(parsed)}}
	if a.HouseID == "" {
		return result, nil
	}

	if !result.Validation.Valid {
		result.SaveError = result.Validation.Reason
		return result, nil
	}
	sim, err := s.tree.AddSim(ctx, family.SimFromParsed(parsed, a.HouseID))
	if err != nil {
		result.SaveError = err.Error()
		return result, nil
	}
	result.Sim = sim
	return result, nil
}

type simParseTextArgs struct {
	Text           string `json:"text"`
	OutputLanguage string `json:"output_language"`
}

func (s *Server) handleSimParseText(args json.RawMessage) (interface{}, error) {
	var a simParseTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p, err := s.parser(a.OutputLanguage)
	if err != nil {
		return nil, err
	}
	parsed := p.Parse(a.Text)
	return parseResult{Data: parsed, Validation: simdata.Validate(parsed)}, nil
}

// === Image and OCR Handlers ===

type ocrTextArgs struct {
	Path          string   `json:"path"`
	Region        string   `json:"region"`
	Preprocess    bool     `json:"preprocess"`
	Level         string   `json:"level"`
	MinConfidence *float64 `json:"min_confidence"`
}

// ocrTextResult holds OCR output. Positions are relative to Region, and
// scaled when the image was preprocessed.
type ocrTextResult struct {
	Region detection.Bounds `json:"region"`
	*ocr.Recognition
	Blocks []ocr.TextRegion `json:"blocks,omitempty"`
}

func (s *Server) handleOCRText(ctx context.Context, args json.RawMessage, progress func(int)) (interface{}, error) {
	var a ocrTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.engine == nil {
		return nil, errNoEngine
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	rect, err := s.resolveRegion(img, a.Region)
	if err != nil {
		return nil, err
	}
	if img, err = imaging.Crop(img, rect); err != nil {
		return nil, err
	}
	if a.Preprocess {
		img = imaging.Preprocess(img, s.preprocess)
	}

	result := ocrTextResult{
		Region: detection.Bounds{X1: rect.Min.X, Y1: rect.Min.Y, X2: rect.Max.X, Y2: rect.Max.Y},
	}

	if a.Level == "block" {
		minConf := 0.5
		if a.MinConfidence != nil {
			minConf = *a.MinConfidence
		}
		blocks, err := s.engine.DetectBlocks(ctx, img, minConf)
		if err != nil {
			return nil, err
		}
		result.Blocks = blocks
		return result, nil
	}

	rec, err := s.engine.Recognize(ctx, img, progress)
	if err != nil {
		return nil, err
	}
	result.Recognition = rec
	return result, nil
}

// resolveRegion maps a region name to a rectangle of img. "auto" is the
// Simology panel, or the whole image when there is none.
func (s *Server) resolveRegion(img image.Image, name string) (image.Rectangle, error) {
	if name == simdata.RegionAuto {
		if rect, ok := detection.LocatePanel(img); ok {
			return rect, nil
		}
		return img.Bounds(), nil
	}
	return imaging.RegionRect(img.Bounds(), name)
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

type imageLoadResult struct {
	*imaging.ImageInfo

	// Panels lists the rectangular panels found, largest first.
	Panels []detection.Panel `json:"panels"`

	// SimologyPanel is the panel sim_scan_screenshot reads with region
	// "auto".
	SimologyPanel *detection.Bounds `json:"simology_panel,omitempty"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result := imageLoadResult{
		ImageInfo: info,
		Panels:    detection.FindPanels(img, detection.DefaultOptions()),
	}
	for _, p := range result.Panels {
		if p.Dark {
			b := p.Bounds
			result.SimologyPanel = &b
			break
		}
	}
	return result, nil
}

// === Vocabulary Handlers ===

type vocabularyListArgs struct {
	Table string `json:"table"`
}

type vocabularyListResult struct {
	Table  string              `json:"table"`
	Labels []string            `json:"labels,omitempty"`
	Groups []vocab.OptionGroup `json:"groups,omitempty"`
}

func (s *Server) handleVocabularyList(args json.RawMessage) (interface{}, error) {
	var a vocabularyListArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	if strings.EqualFold(a.Table, vocab.TableAspirations) {
		return vocabularyListResult{Table: vocab.TableAspirations, Groups: s.vocab.AspirationOptions()}, nil
	}

	labels, err := s.vocab.Options(a.Table)
	if err != nil {
		return nil, err
	}
	return vocabularyListResult{Table: strings.ToLower(a.Table), Labels: labels}, nil
}

type vocabularyTranslateArgs struct {
	Table string `json:"table"`
	Label string `json:"label"`
	To    string `json:"to"`
}

type vocabularyTranslateResult struct {
	Label       string `json:"label"`
	Translation string `json:"translation"`
	To          string `json:"to"`

	// Known is false when the label is not in the table; Translation then
	// repeats Label.
	Known bool `json:"known"`

	// Category is the aspiration category, in Swedish.
	Category string `json:"category,omitempty"`
}

func (s *Server) handleVocabularyTranslate(args json.RawMessage) (interface{}, error) {
	var a vocabularyTranslateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	table, err := s.vocab.Table(a.Table)
	if err != nil {
		return nil, err
	}
	to, err := vocab.ParseLanguage(a.To)
	if err != nil {
		return nil, err
	}

	// Labels are looked up in the other language.
	from := vocab.Source
	if to == vocab.Source {
		from = vocab.Target
	}
	known := false
	for _, l := range table.Labels(from) {
		if strings.EqualFold(l, a.Label) {
			known = true
			break
		}
	}

	result := vocabularyTranslateResult{
		Label:       a.Label,
		Translation: table.Localize(a.Label, to),
		To:          to.String(),
		Known:       known,
	}
	if strings.EqualFold(a.Table, vocab.TableAspirations) {
		result.Category, _ = s.vocab.Aspirations.Category(a.Label)
	}
	return result, nil
}

// === Family Tree Handlers ===

type familyAddWorldArgs struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleFamilyAddWorld(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a familyAddWorldArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.tree.AddWorld(ctx, family.World{Name: a.Name, Description: a.Description})
}

func (s *Server) handleFamilyListWorlds(ctx context.Context) (interface{}, error) {
	worlds, err := s.tree.Worlds(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"worlds": worlds}, nil
}

type familyAddHouseArgs struct {
	WorldID     string `json:"world_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleFamilyAddHouse(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a familyAddHouseArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.tree.AddHouse(ctx, family.House{WorldID: a.WorldID, Name: a.Name, Description: a.Description})
}

type familyListHousesArgs struct {
	WorldID string `json:"world_id"`
}

func (s *Server) handleFamilyListHouses(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a familyListHousesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	houses, err := s.tree.Houses(ctx, a.WorldID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"houses": houses}, nil
}

type familyAddSimArgs struct {
	HouseID    string         `json:"house_id"`
	Name       string         `json:"name"`
	Age        string         `json:"age"`
	Traits     []string       `json:"traits"`
	Aspiration string         `json:"aspiration"`
	Career     string         `json:"career"`
	Skills     map[string]int `json:"skills"`
	Notes      string         `json:"notes"`
}

func (s *Server) handleFamilyAddSim(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a familyAddSimArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.tree.AddSim(ctx, family.Sim{
		HouseID:    a.HouseID,
		Name:       a.Name,
		Age:        a.Age,
		Traits:     a.Traits,
		Aspiration: a.Aspiration,
		Career:     a.Career,
		Skills:     a.Skills,
		Notes:      a.Notes,
	})
}

type familyListSimsArgs struct {
	HouseID string `json:"house_id"`
	WorldID string `json:"world_id"`
}

func (s *Server) handleFamilyListSims(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a familyListSimsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		sims []family.Sim
		err  error
	)
	if a.HouseID == "" && a.WorldID != "" {
		sims, err = s.tree.SimsInWorld(ctx, a.WorldID)
	} else {
		sims, err = s.tree.Sims(ctx, a.HouseID)
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"sims": sims}, nil
}

type simIDArgs struct {
	SimID string `json:"sim_id"`
}

func (s *Server) handleFamilySimOverview(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a simIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.tree.Overview(ctx, a.SimID)
}

func (s *Server) handleFamilyDeleteSim(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a simIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.tree.DeleteSim(ctx, a.SimID); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": a.SimID}, nil
}

type familyUpdateSimArgs struct {
	SimID      string          `json:"sim_id"`
	HouseID    *string         `json:"house_id"`
	Name       *string         `json:"name"`
	Age        *string         `json:"age"`
	Traits     *[]string       `json:"traits"`
	Aspiration *string         `json:"aspiration"`
	Career     *string         `json:"career"`
	Skills     *map[string]int `json:"skills"`
	Notes      *string         `json:"notes"`
}

func (s *Server) handleFamilyUpdateSim(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a familyUpdateSimArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.tree.UpdateSim(ctx, a.SimID, family.SimPatch{
		HouseID:    a.HouseID,
		Name:       a.Name,
		Age:        a.Age,
		Traits:     a.Traits,
		Aspiration: a.Aspiration,
		Career:     a.Career,
		Skills:     a.Skills,
		Notes:      a.Notes,
	})
}

type idArgs struct {
	ID string `json:"id"`
}

func (s *Server) handleFamilyDeleteHouse(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a idArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.tree.DeleteHouse(ctx, a.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": a.ID}, nil
}

func (s *Server) handleFamilyDeleteRelationship(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a idArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.tree.DeleteRelationship(ctx, a.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": a.ID}, nil
}

func (s *Server) handleFamilyDeleteDiaryEntry(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a idArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.tree.DeleteDiaryEntry(ctx, a.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": a.ID}, nil
}

type familyAddRelationshipArgs struct {
	Sim1ID string `json:"sim1_id"`
	Sim2ID string `json:"sim2_id"`
	Type   string `json:"type"`
}

func (s *Server) handleFamilyAddRelationship(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a familyAddRelationshipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.tree.AddRelationship(ctx, family.Relationship{
		Sim1ID: a.Sim1ID,
		Sim2ID: a.Sim2ID,
		Type:   family.RelationshipType(a.Type),
	})
}

type familyAddDiaryEntryArgs struct {
	SimID string `json:"sim_id"`
	Date  string `json:"date"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (s *Server) handleFamilyAddDiaryEntry(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a familyAddDiaryEntryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.tree.AddDiaryEntry(ctx, family.DiaryEntry{
		SimID: a.SimID,
		Date:  a.Date,
		Title: a.Title,
		Text:  a.Text,
	})
}
