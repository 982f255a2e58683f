package imaging

import (
	"image"
	"image/color"
	"testing"
)

func grayAt(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(((r + g + b) / 3) >> 8)
}

func TestPreprocess_DarkPanelIsInverted(t *testing.T) {
	img := createInMemoryImage(100, 50, color.RGBA{26, 43, 76, 255})

	out := Preprocess(img, DefaultPreprocessOptions())

	b := out.Bounds()
	if b.Dx() != DefaultUpscaleWidth || b.Dy() != DefaultUpscaleWidth/2 {
		t.Errorf("dimensions: got %dx%d, want %dx%d", b.Dx(), b.Dy(), DefaultUpscaleWidth, DefaultUpscaleWidth/2)
	}
	if g := grayAt(out, 10, 10); g < 128 {
		t.Errorf("dark background should become light, got gray %d", g)
	}
	if got := grayAt(img, 10, 10); got > 128 {
		t.Error("input image was modified")
	}
}

func TestPreprocess_LightImageKeepsPolarity(t *testing.T) {
	img := createInMemoryImage(2400, 100, color.RGBA{230, 230, 230, 255})

	out := Preprocess(img, DefaultPreprocessOptions())

	if b := out.Bounds(); b.Dx() != 2400 || b.Dy() != 100 {
		t.Errorf("wide image should not be resized, got %dx%d", b.Dx(), b.Dy())
	}
	if g := grayAt(out, 5, 5); g < 200 {
		t.Errorf("light background should stay light, got gray %d", g)
	}
}

func TestPreprocess_InvertModes(t *testing.T) {
	dark := createInMemoryImage(20, 20, color.RGBA{20, 20, 20, 255})
	light := createInMemoryImage(20, 20, color.RGBA{240, 240, 240, 255})

	tests := []struct {
		name      string
		img       image.Image
		mode      InvertMode
		wantLight bool
	}{
		{"auto dark", dark, InvertAuto, true},
		{"auto light", light, InvertAuto, true},
		{"never dark", dark, InvertNever, false},
		{"always light", light, InvertAlways, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Preprocess(tt.img, PreprocessOptions{Invert: tt.mode})
			light := grayAt(out, 1, 1) > 128
			if light != tt.wantLight {
				t.Errorf("light: got %v, want %v (gray %d)", light, tt.wantLight, grayAt(out, 1, 1))
			}
		})
	}
}

func TestPreprocess_Threshold(t *testing.T) {
	img := createPatternImage(40, 40)

	out := Preprocess(img, PreprocessOptions{Invert: InvertNever, Threshold: 128, Sharpen: true})

	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("thresholded image: got %T, want *image.Gray", out)
	}
	for _, p := range gray.Pix {
		if p != 0 && p != 255 {
			t.Fatalf("threshold left gray level %d", p)
		}
	}
}

func TestPreprocess_NoUpscaleWhenDisabled(t *testing.T) {
	img := createInMemoryImage(64, 32, color.White)

	out := Preprocess(img, PreprocessOptions{Invert: InvertNever})

	if b := out.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("dimensions: got %dx%d, want 64x32", b.Dx(), b.Dy())
	}
}

func TestParseInvertMode(t *testing.T) {
	tests := []struct {
		in      string
		want    InvertMode
		wantErr bool
	}{
		{"", InvertAuto, false},
		{"auto", InvertAuto, false},
		{"always", InvertAlways, false},
		{"never", InvertNever, false},
		{"sometimes", InvertAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInvertMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
