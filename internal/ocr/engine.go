package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/simaja-mcp/internal/imaging"
)

// DefaultLanguages are the Tesseract models loaded when Config names none.
// Sims 4 is played here in both English and Swedish.
var DefaultLanguages = []string{"eng", "swe"}

// ErrEngineClosed is returned by Recognize after Close until Open is called
// again.
var ErrEngineClosed = errors.New("ocr engine is closed")

// RecognitionError reports a failure inside Tesseract.
type RecognitionError struct {
	// Op is the step that failed, for example "set image" or "text".
	Op  string
	Err error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("ocr %s: %v", e.Op, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// Config selects the Tesseract models and segmentation.
type Config struct {
	// Languages are Tesseract language codes, combined as "eng+swe".
	Languages []string

	// TessdataPrefix is the directory holding *.traineddata. Empty uses the
	// TESSDATA_PREFIX environment variable or the installation default.
	TessdataPrefix string

	// PageSegMode is the Tesseract page segmentation mode. The zero value
	// (PSM_OSD_ONLY) produces no text, so it is treated as PSM_AUTO.
	PageSegMode gosseract.PageSegMode

	Logger *slog.Logger
}

// DefaultConfig returns the configuration used by the CLI and server.
func DefaultConfig() Config {
	return Config{
		Languages:   DefaultLanguages,
		PageSegMode: gosseract.PSM_AUTO,
	}
}

// ParseLanguages splits "eng+swe" or "eng,swe" into language codes.
func ParseLanguages(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return append([]string(nil), DefaultLanguages...)
	}
	return fields
}

type state int

const (
	stateNew state = iota
	stateOpen
	stateClosed
)

// Engine owns one Tesseract client.
//
// Creating the client loads the language models, which takes a noticeable
// amount of time, so one Engine is meant to be shared. Recognition calls are
// serialised because the client is not safe for concurrent use.
type Engine struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	state  state
	client *gosseract.Client
}

// NewEngine creates an engine. No Tesseract resources are allocated until
// Open or the first Recognize.
func NewEngine(cfg Config) *Engine {
	if len(cfg.Languages) == 0 {
		cfg.Languages = DefaultLanguages
	}
	if cfg.PageSegMode == gosseract.PSM_OSD_ONLY {
		cfg.PageSegMode = gosseract.PSM_AUTO
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Languages returns the configured language codes.
func (e *Engine) Languages() []string {
	return append([]string(nil), e.cfg.Languages...)
}

// Open creates the Tesseract client and loads the configured language
// models. Calling Open on an open engine does nothing, and Open after Close
// makes the engine usable again.
//
// Returns:
//   - error: nil once the client is ready.
//
// # Error Handling
//
// Failures are returned as *RecognitionError with Op naming the step:
// "set tessdata prefix", "set language" (usually a missing *.traineddata)
// or "set page segmentation mode". The half-configured client is closed
// and the engine keeps its previous state, so Open may be retried.
func (e *Engine) Open() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.openLocked()
}

func (e *Engine) openLocked() error {
	if e.state == stateOpen {
		return nil
	}

	client := gosseract.NewClient()
	if e.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.cfg.TessdataPrefix); err != nil {
			client.Close()
			return &RecognitionError{Op: "set tessdata prefix", Err: err}
		}
	}
	if err := client.SetLanguage(e.cfg.Languages...); err != nil {
		client.Close()
		return &RecognitionError{Op: "set language", Err: err}
	}
	if err := client.SetPageSegMode(e.cfg.PageSegMode); err != nil {
		client.Close()
		return &RecognitionError{Op: "set page segmentation mode", Err: err}
	}

	e.client = client
	e.state = stateOpen
	e.logger.Debug("ocr engine opened", "languages", strings.Join(e.cfg.Languages, "+"))
	return nil
}

// Close releases the Tesseract client. Closing a closed engine does nothing.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != stateOpen {
		e.state = stateClosed
		return nil
	}

	err := e.client.Close()
	e.client = nil
	e.state = stateClosed
	e.logger.Debug("ocr engine closed")
	if err != nil {
		return fmt.Errorf("failed to close tesseract client: %w", err)
	}
	return nil
}

// Bounds is a rectangle in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// TextRegion is a recognised word or block and where it is.
type TextRegion struct {
	Text string `json:"text,omitempty"`

	// Confidence is Tesseract's confidence (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// Recognition is the result of one recognition call.
type Recognition struct {
	// FullText is all recognised text with Tesseract's line breaks.
	FullText string `json:"full_text"`

	// Regions holds the words with their boxes. It is empty, not nil, when
	// Tesseract could not report boxes.
	Regions []TextRegion `json:"regions"`
}

// Recognize reads the text in img.
//
// The image is encoded as PNG and handed to Tesseract from memory. An engine
// that was never opened is opened on first use.
//
// Parameters:
//   - ctx: Checked before encoding and again once the engine lock is held.
//     Tesseract cannot be interrupted, so a running recognition finishes.
//   - img: The image to read, usually the output of imaging.Preprocess.
//   - progress: Optional. Receives increasing percentages (0, 10, 20, 80,
//     100); 100 is only reported on success.
//
// Returns:
//   - *Recognition: FullText with Tesseract's line breaks, and Regions with
//     word boxes in the coordinates of img.
//   - error: Non-nil if img is nil, ctx is done, or Tesseract fails.
//
// # Error Handling
//
// After Close, Recognize returns ErrEngineClosed. Tesseract failures are
// *RecognitionError values. If only the word boxes cannot be read, the
// failure is logged and the text is returned with empty Regions.
func (e *Engine) Recognize(ctx context.Context, img image.Image, progress func(percent int)) (*Recognition, error) {
	report := func(p int) {
		if progress != nil {
			progress(p)
		}
	}

	if img == nil {
		return nil, fmt.Errorf("no image to recognize")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report(0)

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	report(10)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch e.state {
	case stateClosed:
		return nil, ErrEngineClosed
	case stateNew:
		if err := e.openLocked(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	if err := e.client.SetImageFromBytes(data); err != nil {
		return nil, &RecognitionError{Op: "set image", Err: err}
	}
	report(20)

	text, err := e.client.Text()
	if err != nil {
		return nil, &RecognitionError{Op: "text", Err: err}
	}
	report(80)

	regions := []TextRegion{}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		e.logger.Warn("word boxes unavailable", "error", err)
	} else {
		regions = toRegions(boxes, 0, true)
	}
	report(100)

	e.logger.Debug("recognized image",
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"chars", len(text),
		"words", len(regions),
		"duration", time.Since(start))

	return &Recognition{FullText: text, Regions: regions}, nil
}

// RecognizeText is Recognize without the word boxes.
func (e *Engine) RecognizeText(ctx context.Context, img image.Image, progress func(percent int)) (string, error) {
	rec, err := e.Recognize(ctx, img, progress)
	if err != nil {
		return "", err
	}
	return rec.FullText, nil
}

// RecognizeRegion reads the text inside rect. Word boxes are reported in the
// coordinates of img, not of the crop.
func (e *Engine) RecognizeRegion(ctx context.Context, img image.Image, rect image.Rectangle, progress func(percent int)) (*Recognition, error) {
	cropped, err := imaging.Crop(img, rect)
	if err != nil {
		return nil, err
	}

	rec, err := e.Recognize(ctx, cropped, progress)
	if err != nil {
		return nil, err
	}

	for i := range rec.Regions {
		rec.Regions[i].Bounds.X1 += rect.Min.X
		rec.Regions[i].Bounds.Y1 += rect.Min.Y
		rec.Regions[i].Bounds.X2 += rect.Min.X
		rec.Regions[i].Bounds.Y2 += rect.Min.Y
	}
	return rec, nil
}

// DetectBlocks finds text blocks without reading them. Blocks below
// minConfidence (0.0 to 1.0) are dropped.
func (e *Engine) DetectBlocks(ctx context.Context, img image.Image, minConfidence float64) ([]TextRegion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case stateClosed:
		return nil, ErrEngineClosed
	case stateNew:
		if err := e.openLocked(); err != nil {
			return nil, err
		}
	}

	if err := e.client.SetImageFromBytes(data); err != nil {
		return nil, &RecognitionError{Op: "set image", Err: err}
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, &RecognitionError{Op: "text blocks", Err: err}
	}
	return toRegions(boxes, minConfidence, false), nil
}

func toRegions(boxes []gosseract.BoundingBox, minConfidence float64, withText bool) []TextRegion {
	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		confidence := box.Confidence / 100.0
		if confidence < minConfidence {
			continue
		}
		word := strings.TrimSpace(box.Word)
		if withText && word == "" {
			continue
		}
		r := TextRegion{
			Confidence: confidence,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		}
		if withText {
			r.Text = word
		}
		regions = append(regions, r)
	}
	return regions
}

// Info describes the Tesseract installation.
type Info struct {
	Available          bool     `json:"available"`
	Backend            string   `json:"backend"`
	Version            string   `json:"version,omitempty"`
	Languages          []string `json:"languages"`
	AvailableLanguages []string `json:"available_languages"`
	MissingLanguages   []string `json:"missing_languages,omitempty"`
	TessdataPrefix     string   `json:"tessdata_prefix,omitempty"`
}

// Info reports the Tesseract version and whether the configured language
// models are installed.
func (e *Engine) Info() Info {
	info := Info{
		Backend:            "gosseract",
		Version:            gosseract.Version(),
		Languages:          e.Languages(),
		AvailableLanguages: []string{},
		TessdataPrefix:     e.cfg.TessdataPrefix,
	}

	installed, err := availableLanguages(e.cfg.TessdataPrefix)
	if err != nil {
		e.logger.Warn("listing tessdata failed", "error", err)
	} else {
		info.AvailableLanguages = installed
	}

	have := make(map[string]bool, len(info.AvailableLanguages))
	for _, l := range info.AvailableLanguages {
		have[l] = true
	}
	for _, l := range info.Languages {
		if !have[l] {
			info.MissingLanguages = append(info.MissingLanguages, l)
		}
	}

	info.Available = info.Version != "" && len(info.MissingLanguages) == 0
	return info
}

func availableLanguages(prefix string) ([]string, error) {
	if prefix == "" {
		langs, err := gosseract.GetAvailableLanguages()
		if langs == nil {
			langs = []string{}
		}
		return langs, err
	}

	matches, err := filepath.Glob(filepath.Join(prefix, "*.traineddata"))
	if err != nil {
		return []string{}, err
	}
	langs := make([]string, 0, len(matches))
	for _, m := range matches {
		langs = append(langs, strings.TrimSuffix(filepath.Base(m), ".traineddata"))
	}
	return langs, nil
}
