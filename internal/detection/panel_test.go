package detection

import (
	"image"
	"image/color"
	"testing"
)

var (
	panelBlue = color.RGBA{26, 43, 76, 255}
	worldGray = color.RGBA{200, 200, 200, 255}
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), c)
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// createScreenshot draws a dark panel with a few light "text" bars on a
// light background.
func createScreenshot(width, height int, panel image.Rectangle) *image.RGBA {
	img := createTestImage(width, height, worldGray)
	fillRect(img, panel, panelBlue)
	for i := 0; i < 3; i++ {
		y := panel.Min.Y + 20 + i*25
		fillRect(img, image.Rect(panel.Min.X+15, y, panel.Min.X+60, y+8), color.White)
	}
	return img
}

func near(a, b, tolerance int) bool {
	d := a - b
	return d <= tolerance && d >= -tolerance
}

func TestFindPanels(t *testing.T) {
	img := createScreenshot(400, 300, image.Rect(100, 60, 300, 240))

	panels := FindPanels(img, DefaultOptions())
	if len(panels) != 1 {
		t.Fatalf("expected 1 panel, got %d: %+v", len(panels), panels)
	}

	p := panels[0]
	want := Bounds{X1: 99, Y1: 59, X2: 300, Y2: 240}
	if p.Bounds != want {
		t.Errorf("Bounds: got %+v, want %+v", p.Bounds, want)
	}
	if !p.Dark {
		t.Errorf("panel should be dark, fill %s", p.FillColor)
	}
	if p.Confidence < 0.95 {
		t.Errorf("Confidence: got %.3f, want >= 0.95", p.Confidence)
	}
	if p.Area != p.Width*p.Height {
		t.Errorf("Area %d != Width*Height %d", p.Area, p.Width*p.Height)
	}
}

func TestFindPanels_UniformImage(t *testing.T) {
	panels := FindPanels(createTestImage(200, 200, worldGray), DefaultOptions())
	if len(panels) != 0 {
		t.Errorf("expected no panels, got %d", len(panels))
	}
}

func TestFindPanels_SmallShapesIgnored(t *testing.T) {
	img := createTestImage(400, 300, worldGray)
	fillRect(img, image.Rect(10, 10, 40, 30), panelBlue)

	if panels := FindPanels(img, DefaultOptions()); len(panels) != 0 {
		t.Errorf("expected small box to be filtered, got %+v", panels)
	}
}

func TestFindPanels_LargestFirst(t *testing.T) {
	img := createTestImage(600, 400, worldGray)
	fillRect(img, image.Rect(20, 20, 180, 180), panelBlue)
	fillRect(img, image.Rect(250, 50, 580, 380), panelBlue)

	panels := FindPanels(img, DefaultOptions())
	if len(panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(panels))
	}
	if panels[0].Area < panels[1].Area {
		t.Errorf("panels not sorted by area: %d then %d", panels[0].Area, panels[1].Area)
	}
	if panels[0].Bounds.X1 != 249 {
		t.Errorf("largest panel X1: got %d, want 249", panels[0].Bounds.X1)
	}
}

func TestLocatePanel(t *testing.T) {
	img := createScreenshot(400, 300, image.Rect(100, 60, 300, 240))

	r, ok := LocatePanel(img)
	if !ok {
		t.Fatal("LocatePanel found nothing")
	}
	if want := image.Rect(99, 59, 300, 240); r != want {
		t.Errorf("got %v, want %v", r, want)
	}
}

func TestLocatePanel_LightPanelIgnored(t *testing.T) {
	img := createTestImage(400, 300, color.RGBA{30, 30, 30, 255})
	fillRect(img, image.Rect(100, 60, 300, 240), color.White)

	if r, ok := LocatePanel(img); ok {
		t.Errorf("light panel should not be located, got %v", r)
	}
}

func TestLocatePanel_Downsampled(t *testing.T) {
	img := createScreenshot(1600, 1000, image.Rect(400, 250, 1200, 750))

	r, ok := LocatePanel(img)
	if !ok {
		t.Fatal("LocatePanel found nothing")
	}

	want := image.Rect(400, 250, 1200, 750)
	if !near(r.Min.X, want.Min.X, 5) || !near(r.Min.Y, want.Min.Y, 5) ||
		!near(r.Max.X, want.Max.X, 5) || !near(r.Max.Y, want.Max.Y, 5) {
		t.Errorf("got %v, want about %v", r, want)
	}
	if !r.In(img.Bounds()) {
		t.Errorf("%v outside image bounds", r)
	}
}

func TestLocatePanel_OffsetBounds(t *testing.T) {
	full := createScreenshot(400, 300, image.Rect(100, 60, 300, 240))
	sub := full.SubImage(image.Rect(50, 30, 400, 300))

	r, ok := LocatePanel(sub)
	if !ok {
		t.Fatal("LocatePanel found nothing")
	}
	if want := image.Rect(99, 59, 300, 240); r != want {
		t.Errorf("got %v, want %v", r, want)
	}
}
