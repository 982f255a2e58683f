package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ironsheep/simaja-mcp/internal/family"
	"github.com/ironsheep/simaja-mcp/internal/imaging"
	"github.com/ironsheep/simaja-mcp/internal/ocr"
	"github.com/ironsheep/simaja-mcp/internal/simdata"
	"github.com/ironsheep/simaja-mcp/internal/vocab"
)

// TextEngine is the OCR backend used by the screenshot and OCR tools.
// *ocr.Engine implements it.
type TextEngine interface {
	simdata.Recognizer
	Recognize(ctx context.Context, img image.Image, progress func(percent int)) (*ocr.Recognition, error)
	DetectBlocks(ctx context.Context, img image.Image, minConfidence float64) ([]ocr.TextRegion, error)
}

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	engine  TextEngine
	tree    *family.Tree
	vocab   *vocab.Vocabulary
	parsers map[vocab.Language]*simdata.Parser
	schemas map[string]*gojsonschema.Schema
	logger  *slog.Logger
	version string

	preprocess imaging.PreprocessOptions
	outputLang vocab.Language

	// notify writes a notification to the connected client. It is set
	// while Serve runs.
	notifyMu sync.Mutex
	notify   func(MCPNotification)
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// Option configures a Server.
type Option func(*Server)

// WithEngine sets the OCR engine. Without one, the tools that read images
// report that OCR is unavailable.
func WithEngine(e TextEngine) Option {
	return func(s *Server) {
		s.engine = e
	}
}

// WithTree sets the family tree. The default keeps everything in memory.
func WithTree(t *family.Tree) Option {
	return func(s *Server) {
		s.tree = t
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by initialize.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithPreprocessOptions sets how screenshots are prepared for OCR.
func WithPreprocessOptions(opts imaging.PreprocessOptions) Option {
	return func(s *Server) {
		s.preprocess = opts
	}
}

// WithOutputLanguage sets the default language of parsed labels.
func WithOutputLanguage(lang vocab.Language) Option {
	return func(s *Server) {
		s.outputLang = lang
	}
}

// New creates a new MCP server instance
func New(opts ...Option) *Server {
	s := &Server{
		cache:      imaging.NewImageCache(),
		vocab:      vocab.Default(),
		version:    "0.1.0",
		preprocess: imaging.DefaultPreprocessOptions(),
		outputLang: vocab.Target,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.tree == nil {
		s.tree = family.NewTree(family.NewMemoryStore(), family.WithTreeLogger(s.logger))
	}

	s.parsers = map[vocab.Language]*simdata.Parser{
		vocab.Source: simdata.NewParser(s.vocab, simdata.WithOutputLanguage(vocab.Source)),
		vocab.Target: simdata.NewParser(s.vocab, simdata.WithOutputLanguage(vocab.Target)),
	}
	s.schemas = compileSchemas(GetToolDefinitions(), s.logger)
	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from in and writes responses
// and notifications to out until in is exhausted or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var writeMu sync.Mutex
	encoder := json.NewEncoder(out)
	write := func(v interface{}) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := encoder.Encode(v); err != nil {
			s.logger.Error("failed to encode message", "error", err)
		}
	}

	s.setNotify(func(n MCPNotification) { write(n) })
	defer s.setNotify(nil)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			write(resp)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

func (s *Server) setNotify(fn func(MCPNotification)) {
	s.notifyMu.Lock()
	s.notify = fn
	s.notifyMu.Unlock()
}

func (s *Server) sendNotification(n MCPNotification) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(n)
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "simaja-mcp",
				"version": s.version,
			},
		},
	}
}
