package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// createInMemoryImage creates a solid color image in memory
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with 4 colored quadrants:
// red top-left, green top-right, blue bottom-left, white bottom-right.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPanelTone(t *testing.T) {
	tests := []struct {
		name     string
		img      image.Image
		wantMean string
		wantDark bool
	}{
		{"sims panel blue", createInMemoryImage(50, 50, color.RGBA{26, 43, 76, 255}), "#1a2b4c", true},
		{"black", createInMemoryImage(10, 10, color.Black), "#000000", true},
		{"white", createInMemoryImage(10, 10, color.White), "#ffffff", false},
		{"light gray", createInMemoryImage(10, 10, color.RGBA{200, 200, 200, 255}), "#c8c8c8", false},
		{"transparent", image.NewRGBA(image.Rect(0, 0, 10, 10)), "#ffffff", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tone := PanelTone(tt.img)
			if tone.Mean != tt.wantMean {
				t.Errorf("Mean: got %s, want %s", tone.Mean, tt.wantMean)
			}
			if tone.Dark != tt.wantDark {
				t.Errorf("Dark: got %v, want %v (lightness %.3f)", tone.Dark, tt.wantDark, tone.Lightness)
			}
			if tone.Lightness < 0 || tone.Lightness > 1 {
				t.Errorf("Lightness out of range: %f", tone.Lightness)
			}
		})
	}
}

func TestPanelTone_Pattern(t *testing.T) {
	// red, green, blue and white quadrants average to a mid gray-ish tone
	tone := PanelTone(createPatternImage(100, 100))
	want := 0.5
	if math.Abs(tone.Lightness-want) > 0.01 {
		t.Errorf("Lightness: got %.3f, want about %.2f", tone.Lightness, want)
	}
}

func TestPanelTone_SamplesLargeImages(t *testing.T) {
	img := createInMemoryImage(3000, 1200, color.RGBA{26, 43, 76, 255})
	if tone := PanelTone(img); !tone.Dark {
		t.Errorf("large dark image reported light: %+v", tone)
	}
}
