package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// darkLightness is the HSL lightness below which a panel counts as dark.
const darkLightness = 0.5

// maxToneSamples bounds the pixels read per axis by PanelTone.
const maxToneSamples = 256

// Tone summarises the brightness of an image.
type Tone struct {
	// Mean is the average colour as "#rrggbb".
	Mean string `json:"mean"`

	// Lightness is the HSL lightness of Mean, 0 (black) to 1 (white).
	Lightness float64 `json:"lightness"`

	// Dark is true when Lightness is below 0.5. The Sims UI draws light text
	// on dark blue panels, which Tesseract reads better once inverted.
	Dark bool `json:"dark"`
}

// PanelTone averages the colour of img and classifies it as dark or light.
//
// Large images are sampled on a grid of at most 256x256 pixels. Fully
// transparent pixels are skipped. An empty image reports white.
func PanelTone(img image.Image) Tone {
	bounds := img.Bounds()
	stepX := max(1, bounds.Dx()/maxToneSamples)
	stepY := max(1, bounds.Dy()/maxToneSamples)

	var sum colorful.Color
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			sum.R += c.R
			sum.G += c.G
			sum.B += c.B
			n++
		}
	}

	mean := colorful.Color{R: 1, G: 1, B: 1}
	if n > 0 {
		mean = colorful.Color{R: sum.R / float64(n), G: sum.G / float64(n), B: sum.B / float64(n)}
	}

	_, _, l := mean.Hsl()
	return Tone{
		Mean:      mean.Clamped().Hex(),
		Lightness: l,
		Dark:      l < darkLightness,
	}
}
