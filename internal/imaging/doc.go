// Package imaging loads Sims 4 screenshots and prepares them for OCR.
//
// # Loading
//
// Open and Decode decode PNG, JPEG, GIF, TIFF and BMP and rotate images that
// carry an EXIF orientation tag. ImageCache keeps decoded images keyed by
// path for the MCP server, where the same screenshot is often inspected and
// then scanned.
//
// # Regions
//
// CropRegion cuts a named part of the screen ("top-left", "bottom-half",
// "center" and so on) so OCR sees only the Simology panel and not the rest of
// the game UI. Regions are computed from the image bounds; (0,0) is the
// top-left corner.
//
// # Preprocessing
//
// The game draws light text on dark, slightly transparent panels. Preprocess
// converts a screenshot into something closer to black text on a white page:
//
//	img, _ := imaging.Open("simology.png")
//	ready := imaging.Preprocess(img, imaging.DefaultPreprocessOptions())
//
// PanelTone decides whether the image is dark enough to need inverting.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless
// and never modify their input image.
package imaging
