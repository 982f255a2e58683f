package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// createTextImage renders lines of text in black on white and scales the
// result up so Tesseract can read the 7x13 bitmap font.
func createTextImage(lines []string, scale int) *image.RGBA {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	small := image.NewRGBA(image.Rect(0, 0, maxLen*7+40, len(lines)*16+30))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	for i, line := range lines {
		drawText(small, 20, 20+i*16, line, color.Black)
	}

	sb := small.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, sb.Dx()*scale, sb.Dy()*scale))
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			c := small.At(x, y)
			draw.Draw(img, image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

func writeEmpty(dir, name string) error {
	return os.WriteFile(filepath.Join(dir, name), nil, 0o644)
}

// openEngine returns an open English engine or skips the test when the
// native library or the English model is missing.
func openEngine(t *testing.T) *Engine {
	t.Helper()

	e := NewEngine(Config{Languages: []string{"eng"}})
	if !e.Info().Available {
		t.Skip("Tesseract not available")
	}
	if err := e.Open(); err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestParseLanguages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"eng+swe", []string{"eng", "swe"}},
		{"eng,swe", []string{"eng", "swe"}},
		{" swe ", []string{"swe"}},
		{"", DefaultLanguages},
		{"+", DefaultLanguages},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLanguages(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(Config{})

	if !reflect.DeepEqual(e.Languages(), DefaultLanguages) {
		t.Errorf("Languages: got %v, want %v", e.Languages(), DefaultLanguages)
	}
	if e.cfg.PageSegMode != gosseract.PSM_AUTO {
		t.Errorf("PageSegMode: got %v, want PSM_AUTO", e.cfg.PageSegMode)
	}
	if e.state != stateNew {
		t.Error("new engine should not hold a client")
	}
}

func TestEngine_Languages_ReturnsCopy(t *testing.T) {
	e := NewEngine(Config{Languages: []string{"eng"}})
	e.Languages()[0] = "xyz"

	if e.Languages()[0] != "eng" {
		t.Error("Languages exposed internal slice")
	}
}

func TestEngine_CloseWithoutOpen(t *testing.T) {
	e := NewEngine(DefaultConfig())

	if err := e.Close(); err != nil {
		t.Fatalf("Close on unopened engine: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	_, err := e.Recognize(context.Background(), createTextImage([]string{"X"}, 1), nil)
	if !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Recognize after Close: got %v, want ErrEngineClosed", err)
	}
}

func TestEngine_RecognizeNilImage(t *testing.T) {
	e := NewEngine(DefaultConfig())
	if _, err := e.Recognize(context.Background(), nil, nil); err == nil {
		t.Error("Recognize should fail for nil image")
	}
}

func TestEngine_RecognizeCancelled(t *testing.T) {
	e := NewEngine(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := e.Recognize(ctx, createTextImage([]string{"X"}, 1), func(int) { called = true })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if called {
		t.Error("progress reported for a cancelled call")
	}
	if e.state != stateNew {
		t.Error("cancelled call should not open the engine")
	}
}

func TestRecognitionError(t *testing.T) {
	cause := errors.New("boom")
	var err error = &RecognitionError{Op: "text", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("RecognitionError should unwrap to its cause")
	}
	if got := err.Error(); got != "ocr text: boom" {
		t.Errorf("Error(): got %q", got)
	}

	var re *RecognitionError
	if !errors.As(err, &re) || re.Op != "text" {
		t.Error("errors.As failed")
	}
}

func TestToRegions(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(1, 2, 3, 4), Word: "Maja ", Confidence: 91},
		{Box: image.Rect(5, 6, 7, 8), Word: "  ", Confidence: 99},
		{Box: image.Rect(9, 9, 20, 20), Word: "", Confidence: 20},
	}

	words := toRegions(boxes, 0, true)
	if len(words) != 1 {
		t.Fatalf("words: got %d, want 1", len(words))
	}
	want := TextRegion{Text: "Maja", Confidence: 0.91, Bounds: Bounds{X1: 1, Y1: 2, X2: 3, Y2: 4}}
	if words[0] != want {
		t.Errorf("got %+v, want %+v", words[0], want)
	}

	blocks := toRegions(boxes, 0.5, false)
	if len(blocks) != 2 {
		t.Fatalf("blocks: got %d, want 2", len(blocks))
	}
	for _, b := range blocks {
		if b.Text != "" {
			t.Errorf("block should carry no text, got %q", b.Text)
		}
	}
}

func TestAvailableLanguages_Prefix(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"eng.traineddata", "swe.traineddata", "notes.txt"} {
		if err := writeEmpty(dir, name); err != nil {
			t.Fatal(err)
		}
	}

	langs, err := availableLanguages(dir)
	if err != nil {
		t.Fatalf("availableLanguages: %v", err)
	}
	if !reflect.DeepEqual(langs, []string{"eng", "swe"}) {
		t.Errorf("got %v, want [eng swe]", langs)
	}
}

func TestInfo_MissingLanguages(t *testing.T) {
	dir := t.TempDir()
	if err := writeEmpty(dir, "eng.traineddata"); err != nil {
		t.Fatal(err)
	}

	info := NewEngine(Config{Languages: []string{"eng", "swe"}, TessdataPrefix: dir}).Info()

	if info.Available {
		t.Error("engine missing swe should not be available")
	}
	if !reflect.DeepEqual(info.MissingLanguages, []string{"swe"}) {
		t.Errorf("MissingLanguages: got %v", info.MissingLanguages)
	}
	if info.Backend != "gosseract" {
		t.Errorf("Backend: got %q", info.Backend)
	}
}

// --- Tests with actual rendered text ---

func TestEngine_Recognize_RealText(t *testing.T) {
	e := openEngine(t)

	var progress []int
	rec, err := e.Recognize(context.Background(), createTextImage([]string{"HELLO WORLD"}, 4), func(p int) {
		progress = append(progress, p)
	})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	t.Logf("Extracted text: %q", rec.FullText)
	if !strings.Contains(strings.ToUpper(rec.FullText), "HELLO") {
		t.Errorf("expected HELLO in %q", rec.FullText)
	}
	if rec.Regions == nil {
		t.Error("Regions should never be nil")
	}

	if len(progress) == 0 || progress[len(progress)-1] != 100 {
		t.Errorf("progress should end at 100, got %v", progress)
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Errorf("progress not monotonic: %v", progress)
		}
	}
}

func TestEngine_RecognizeText_MultiLine(t *testing.T) {
	e := openEngine(t)

	text, err := e.RecognizeText(context.Background(), createTextImage([]string{"LINE ONE", "LINE TWO"}, 4), nil)
	if err != nil {
		t.Fatalf("RecognizeText failed: %v", err)
	}
	t.Logf("Extracted from multi-line: %q", text)
	if strings.Count(strings.ToUpper(text), "LINE") < 2 {
		t.Logf("Warning: expected two lines, got %q", text)
	}
}

func TestEngine_Reopen(t *testing.T) {
	e := openEngine(t)
	img := createTextImage([]string{"TEST"}, 4)

	if err := e.Open(); err != nil {
		t.Fatalf("second Open: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := e.Recognize(context.Background(), img, nil); !errors.Is(err, ErrEngineClosed) {
		t.Fatalf("Recognize after Close: got %v", err)
	}
	if err := e.Open(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := e.Recognize(context.Background(), img, nil); err != nil {
		t.Fatalf("Recognize after reopen: %v", err)
	}
}

func TestEngine_RecognizeRegion_CoordinateOffset(t *testing.T) {
	e := openEngine(t)

	text := createTextImage([]string{"OFFSET"}, 4)
	img := image.NewRGBA(image.Rect(0, 0, text.Bounds().Dx()+100, text.Bounds().Dy()+80))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	rect := text.Bounds().Add(image.Pt(100, 80))
	draw.Draw(img, rect, text, image.Point{}, draw.Src)

	rec, err := e.RecognizeRegion(context.Background(), img, rect, nil)
	if err != nil {
		t.Fatalf("RecognizeRegion failed: %v", err)
	}
	for _, region := range rec.Regions {
		if region.Bounds.X1 < 100 || region.Bounds.Y1 < 80 {
			t.Errorf("region %q not offset: %+v", region.Text, region.Bounds)
		}
	}
}

func TestEngine_RecognizeRegion_OutOfBounds(t *testing.T) {
	e := NewEngine(DefaultConfig())
	img := createTextImage([]string{"X"}, 1)

	if _, err := e.RecognizeRegion(context.Background(), img, image.Rect(0, 0, 5000, 5000), nil); err == nil {
		t.Error("RecognizeRegion should fail for a region outside the image")
	}
}

func TestEngine_DetectBlocks(t *testing.T) {
	e := openEngine(t)

	blocks, err := e.DetectBlocks(context.Background(), createTextImage([]string{"DETECT THIS TEXT"}, 3), 0.3)
	if err != nil {
		t.Fatalf("DetectBlocks failed: %v", err)
	}
	t.Logf("Detected %d text blocks", len(blocks))
	for _, b := range blocks {
		if b.Confidence < 0.3 {
			t.Errorf("block below min confidence: %+v", b)
		}
	}
}
