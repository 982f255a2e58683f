package simdata

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/simaja-mcp/internal/detection"
	"github.com/ironsheep/simaja-mcp/internal/imaging"
)

// RegionAuto crops to the largest dark panel in the screenshot, falling back
// to the whole image when none is found.
const RegionAuto = "auto"

// DefaultBatchConcurrency bounds ProcessBatch when the caller passes zero.
const DefaultBatchConcurrency = 4

// Recognizer turns an image into raw text. The progress callback, when not
// nil, receives percentages from 0 to 100.
type Recognizer interface {
	RecognizeText(ctx context.Context, img image.Image, progress func(percent int)) (string, error)
}

// Processor runs screenshots through cropping, preprocessing, recognition and
// parsing.
type Processor struct {
	recognizer Recognizer
	parser     *Parser
	logger     *slog.Logger
	cache      *imaging.ImageCache

	region     string
	preprocess bool
	options    imaging.PreprocessOptions
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithParser replaces the default parser.
func WithParser(p *Parser) ProcessorOption {
	return func(pr *Processor) {
		pr.parser = p
	}
}

// WithRegion selects the part of the screenshot to read: RegionAuto (the
// default) or one of imaging.RegionNames.
func WithRegion(name string) ProcessorOption {
	return func(pr *Processor) {
		pr.region = name
	}
}

// WithPreprocessOptions sets the options passed to imaging.Preprocess.
func WithPreprocessOptions(opts imaging.PreprocessOptions) ProcessorOption {
	return func(pr *Processor) {
		pr.preprocess = true
		pr.options = opts
	}
}

// WithoutPreprocessing hands the cropped screenshot to the recognizer as is.
func WithoutPreprocessing() ProcessorOption {
	return func(pr *Processor) {
		pr.preprocess = false
	}
}

// WithImageCache makes ProcessFile load through cache.
func WithImageCache(cache *imaging.ImageCache) ProcessorOption {
	return func(pr *Processor) {
		pr.cache = cache
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(pr *Processor) {
		pr.logger = logger
	}
}

// NewProcessor creates a processor reading text with r.
func NewProcessor(r Recognizer, opts ...ProcessorOption) *Processor {
	pr := &Processor{
		recognizer: r,
		region:     RegionAuto,
		preprocess: true,
		options:    imaging.DefaultPreprocessOptions(),
	}
	for _, opt := range opts {
		opt(pr)
	}
	if pr.parser == nil {
		pr.parser = NewParser(nil)
	}
	if pr.logger == nil {
		pr.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return pr
}

// Parser returns the parser used for recognised text.
func (pr *Processor) Parser() *Parser {
	return pr.parser
}

// ProcessScreenshot reads Sim attributes from img.
//
// Recognition errors are returned as they are, so errors.As finds the
// recognizer's own error type.
func (pr *Processor) ProcessScreenshot(ctx context.Context, img image.Image, progress func(percent int)) (*ParsedSimData, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to process")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	prepared, err := pr.prepare(img)
	if err != nil {
		return nil, err
	}

	text, err := pr.recognizer.RecognizeText(ctx, prepared, progress)
	if err != nil {
		pr.logger.Warn("recognition failed", "error", err)
		return nil, err
	}

	parsed := pr.parser.Parse(text)
	pr.logger.Debug("screenshot processed",
		"duration", time.Since(start),
		"chars", len(text),
		"traits", len(parsed.Traits),
		"skills", len(parsed.Skills))
	return parsed, nil
}

// ProcessFile opens path and processes it.
func (pr *Processor) ProcessFile(ctx context.Context, path string, progress func(percent int)) (*ParsedSimData, error) {
	var (
		img image.Image
		err error
	)
	if pr.cache != nil {
		img, err = pr.cache.Load(path)
	} else {
		img, err = imaging.Open(path)
	}
	if err != nil {
		return nil, err
	}
	return pr.ProcessScreenshot(ctx, img, progress)
}

// BatchResult is the outcome for one screenshot of a batch.
type BatchResult struct {
	Path       string
	Data       *ParsedSimData
	Validation Validation
	Err        error
}

// ProcessBatch processes paths with at most concurrency screenshots in
// flight. Results are in input order. A failing screenshot records its error
// and does not stop the others.
func (pr *Processor) ProcessBatch(ctx context.Context, paths []string, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(paths))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			res := BatchResult{Path: path}
			data, err := pr.ProcessFile(ctx, path, nil)
			if err != nil {
				res.Err = fmt.Errorf("%s: %w", path, err)
			} else {
				res.Data = data
				res.Validation = Validate(data)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	pr.logger.Info("batch processed", "screenshots", len(paths), "concurrency", concurrency)
	return results
}

// prepare crops img to the configured region and preprocesses it.
func (pr *Processor) prepare(img image.Image) (image.Image, error) {
	var err error
	switch pr.region {
	case "", RegionAuto:
		if rect, ok := detection.LocatePanel(img); ok {
			pr.logger.Debug("panel located", "bounds", rect.String())
			img, err = imaging.Crop(img, rect)
		}
	default:
		img, err = imaging.CropRegion(img, pr.region)
	}
	if err != nil {
		return nil, err
	}

	if pr.preprocess {
		img = imaging.Preprocess(img, pr.options)
	}
	return img, nil
}
