package detection

import (
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Bounds is a rectangle in pixel coordinates of the original image.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Rect converts b to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Panel is a rectangular UI panel found in a screenshot.
type Panel struct {
	Bounds Bounds `json:"bounds"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Area   int    `json:"area"`

	// FillColor is the mean colour inside the panel, "#rrggbb".
	FillColor string `json:"fill_color"`

	// Dark is true when the fill has HSL lightness below 0.5.
	Dark bool `json:"dark"`

	// Confidence indicates how rectangular the outline is (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// Options tunes FindPanels.
type Options struct {
	// MinAreaFraction drops panels smaller than this share of the image.
	MinAreaFraction float64

	// Tolerance is the minimum rectangularity (0.0 to 1.0).
	Tolerance float64

	// MaxWidth downsamples wider images before edge detection. Zero keeps
	// full resolution.
	MaxWidth int
}

// DefaultOptions suits full-screen Sims 4 screenshots.
func DefaultOptions() Options {
	return Options{
		MinAreaFraction: 0.05,
		Tolerance:       0.8,
		MaxWidth:        640,
	}
}

const (
	edgeThreshold  = 30.0
	minContourSize = 10
)

// FindPanels finds rectangular panels in img, largest first.
//
// Parameters:
//   - img: A screenshot in any colour model. Its bounds may start anywhere.
//   - opts: Detection thresholds; DefaultOptions suits full-screen captures.
//
// Returns:
//   - []Panel: Panels in the coordinates of img, sorted by area descending.
//     Never nil.
//
// # Error Handling
//
// FindPanels cannot fail. An empty image, or one without rectangular
// outlines, yields an empty slice; callers such as LocatePanel fall back to
// the whole image.
//
// # Algorithm
//
//  1. Downsample to opts.MaxWidth to keep the pass cheap.
//  2. Mark pixels whose gray value differs from the right or lower neighbour
//     by more than 30.
//  3. Group edge pixels into 8-connected contours.
//  4. Score each contour's bounding box by comparing the contour length to
//     the box perimeter:
//     1 - |contour_length - perimeter| / perimeter
//  5. Keep boxes scoring at least opts.Tolerance and covering at least
//     opts.MinAreaFraction of the image.
//
// Only axis-aligned panels are found. Text inside a panel forms its own small
// contours, which the area filter drops.
func FindPanels(img image.Image, opts Options) []Panel {
	bounds := img.Bounds()
	if bounds.Empty() {
		return []Panel{}
	}

	work := img
	scale := 1.0
	if opts.MaxWidth > 0 && bounds.Dx() > opts.MaxWidth {
		work = imaging.Resize(img, opts.MaxWidth, 0, imaging.NearestNeighbor)
		scale = float64(bounds.Dx()) / float64(opts.MaxWidth)
	}

	wb := work.Bounds()
	width, height := wb.Dx(), wb.Dy()
	minArea := int(opts.MinAreaFraction * float64(width*height))

	edges := detectEdges(work, width, height)
	contours := findContours(edges, width, height)

	panels := make([]Panel, 0)
	for _, contour := range contours {
		box := contourBounds(contour)
		w, h := box.Dx(), box.Dy()
		if w == 0 || h == 0 || w*h < minArea {
			continue
		}

		expectedPerimeter := 2 * (w + h)
		rectangularity := 1.0 - math.Abs(float64(len(contour)-expectedPerimeter))/float64(expectedPerimeter)
		if rectangularity < opts.Tolerance {
			continue
		}

		fill := meanColor(work, box.Inset(1).Add(wb.Min))
		_, _, l := fill.Hsl()

		outer := image.Rectangle{Min: box.Min, Max: box.Max.Add(image.Pt(1, 1))}
		orig := scaleRect(outer, scale).Add(bounds.Min).Intersect(bounds)
		panels = append(panels, Panel{
			Bounds:     Bounds{X1: orig.Min.X, Y1: orig.Min.Y, X2: orig.Max.X, Y2: orig.Max.Y},
			Width:      orig.Dx(),
			Height:     orig.Dy(),
			Area:       orig.Dx() * orig.Dy(),
			FillColor:  fill.Clamped().Hex(),
			Dark:       l < 0.5,
			Confidence: rectangularity,
		})
	}

	sort.SliceStable(panels, func(i, j int) bool {
		return panels[i].Area > panels[j].Area
	})
	return panels
}

// LocatePanel returns the largest dark panel in img. Sims 4 draws the
// Simology panel dark, so this is where the attributes are.
func LocatePanel(img image.Image) (image.Rectangle, bool) {
	for _, p := range FindPanels(img, DefaultOptions()) {
		if p.Dark {
			return p.Bounds.Rect(), true
		}
	}
	return image.Rectangle{}, false
}

// detectEdges marks pixels where |current - neighbor| > 30 in grayscale,
// checking the right and lower neighbours. Border pixels are never edges.
func detectEdges(img image.Image, width, height int) [][]bool {
	bounds := img.Bounds()
	edges := make([][]bool, height)

	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue
			}

			c := grayValue(img, x+bounds.Min.X, y+bounds.Min.Y)
			cx := grayValue(img, x+1+bounds.Min.X, y+bounds.Min.Y)
			cy := grayValue(img, x+bounds.Min.X, y+1+bounds.Min.Y)

			dx := math.Abs(float64(c) - float64(cx))
			dy := math.Abs(float64(c) - float64(cy))
			if dx > edgeThreshold || dy > edgeThreshold {
				edges[y][x] = true
			}
		}
	}

	return edges
}

// findContours groups edge pixels into 8-connected components, discarding
// components under 10 pixels.
func findContours(edges [][]bool, width, height int) [][]image.Point {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	contours := make([][]image.Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := floodFill(edges, visited, x, y, width, height)
				if len(contour) >= minContourSize {
					contours = append(contours, contour)
				}
			}
		}
	}

	return contours
}

// floodFill collects the component containing (startX, startY). It uses an
// explicit stack so large outlines cannot overflow the goroutine stack.
func floodFill(edges, visited [][]bool, startX, startY, width, height int) []image.Point {
	var contour []image.Point
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return contour
}

// contourBounds returns the bounding box of a contour. Max is inclusive of
// the outermost edge pixels, matching the width used for the perimeter
// estimate.
func contourBounds(contour []image.Point) image.Rectangle {
	r := image.Rectangle{Min: contour[0], Max: contour[0]}
	for _, p := range contour[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// meanColor averages the opaque pixels of r, sampling at most 64 points per
// axis. An empty region reports white.
func meanColor(img image.Image, r image.Rectangle) colorful.Color {
	r = r.Intersect(img.Bounds())
	stepX := max(1, r.Dx()/64)
	stepY := max(1, r.Dy()/64)

	var sum colorful.Color
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y += stepY {
		for x := r.Min.X; x < r.Max.X; x += stepX {
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
	if n == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return colorful.Color{R: sum.R / float64(n), G: sum.G / float64(n), B: sum.B / float64(n)}
}

func scaleRect(r image.Rectangle, scale float64) image.Rectangle {
	if scale == 1 {
		return r
	}
	return image.Rect(
		int(math.Floor(float64(r.Min.X)*scale)),
		int(math.Floor(float64(r.Min.Y)*scale)),
		int(math.Ceil(float64(r.Max.X)*scale)),
		int(math.Ceil(float64(r.Max.Y)*scale)),
	)
}

// grayValue converts a pixel to grayscale using ITU-R BT.601 luminance weights.
func grayValue(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
}
