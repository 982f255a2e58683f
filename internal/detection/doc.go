// Package detection finds UI panels in game screenshots.
//
// A full-screen Sims 4 screenshot contains the whole game UI; OCR over all of
// it produces text from menus, the needs panel and the world itself. The
// Simology panel is a large dark rectangle, so the attributes can be isolated
// by finding rectangles in the image and keeping the largest dark one.
//
// # Algorithm Overview
//
//  1. Edge Detection: gray-level gradient against the right and lower
//     neighbours, thresholded at 30
//  2. Contour Finding: 8-connected flood fill over edge pixels
//  3. Filtering: drop contours that are small or not rectangular
//  4. Classification: mean fill colour and HSL lightness per panel
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounds use inclusive top-left and exclusive bottom-right
//
// # Limitations
//
// Only axis-aligned panels are found. Rounded corners and translucent panels
// over busy backgrounds lower the rectangularity score; callers fall back to
// the whole image or a named region when LocatePanel reports nothing.
package detection
