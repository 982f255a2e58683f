package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// DefaultUpscaleWidth is the width small screenshots are enlarged to.
// Tesseract loses accuracy once glyphs drop below roughly 20px.
const DefaultUpscaleWidth = 2000

// InvertMode controls colour inversion before OCR.
type InvertMode string

const (
	// InvertAuto inverts dark images only (see PanelTone).
	InvertAuto InvertMode = "auto"
	// InvertAlways always inverts.
	InvertAlways InvertMode = "always"
	// InvertNever never inverts.
	InvertNever InvertMode = "never"
)

// ParseInvertMode accepts "auto", "always" and "never". Empty means auto.
func ParseInvertMode(s string) (InvertMode, error) {
	switch InvertMode(s) {
	case "", InvertAuto:
		return InvertAuto, nil
	case InvertAlways, InvertNever:
		return InvertMode(s), nil
	default:
		return InvertAuto, fmt.Errorf("unknown invert mode %q (want auto, always or never)", s)
	}
}

// PreprocessOptions tunes Preprocess.
type PreprocessOptions struct {
	// UpscaleWidth enlarges narrower images to this width, keeping the aspect
	// ratio. Zero disables upscaling. Images are never shrunk.
	UpscaleWidth int

	// Contrast is passed to bild's adjust.Contrast, -1 to 1. Zero skips the
	// step.
	Contrast float64

	// Sharpen applies a 3x3 sharpening kernel after the contrast step.
	Sharpen bool

	// Threshold binarises the result at this gray level. Zero skips
	// binarisation.
	Threshold uint8

	// Invert selects when to invert colours.
	Invert InvertMode
}

// DefaultPreprocessOptions returns the settings used for Sims 4 screenshots.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		UpscaleWidth: DefaultUpscaleWidth,
		Contrast:     0.3,
		Invert:       InvertAuto,
	}
}

// Preprocess prepares a screenshot for OCR.
//
// Steps, in order: upscale, grayscale, invert, contrast, sharpen, threshold.
// The dark/light decision for InvertAuto is made on the original colours.
// The input image is not modified.
//
// Parameters:
//   - img: The screenshot or a cropped panel.
//   - opts: Which steps to run; DefaultPreprocessOptions matches Sims 4 UI.
//
// Returns:
//   - image.Image: A new grayscale image. It is wider than img only when
//     img is narrower than opts.UpscaleWidth.
//
// # Error Handling
//
// Preprocess cannot fail. An empty image is treated as light, is not
// upscaled, and comes back empty.
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	invert := opts.Invert == InvertAlways || (opts.Invert != InvertNever && PanelTone(img).Dark)

	out := img
	if w := out.Bounds().Dx(); opts.UpscaleWidth > 0 && w > 0 && w < opts.UpscaleWidth {
		out = imaging.Resize(out, opts.UpscaleWidth, 0, imaging.Lanczos)
	}

	out = effect.Grayscale(out)
	if invert {
		out = effect.Invert(out)
	}
	if opts.Contrast != 0 {
		out = adjust.Contrast(out, opts.Contrast)
	}
	if opts.Sharpen {
		out = effect.Sharpen(out)
	}
	if opts.Threshold > 0 {
		out = segment.Threshold(out, opts.Threshold)
	}
	return out
}
