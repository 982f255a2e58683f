// Package simdata reads Sim attributes out of Sims 4 screenshots.
//
// A Parser turns raw OCR text into ParsedSimData: a name, a life stage, up
// to three traits, an aspiration, a career and any skill levels. Each field
// carries a confidence from 0 to 100 and the source it came from. Labels are
// matched against the vocab tables in both languages and reported in the
// parser's output language.
//
// Validate decides whether a result is worth showing; the reasons it returns
// are user-facing Swedish strings.
//
// A Processor ties the pieces together for images:
//
//	crop (auto panel or named region) -> preprocess -> Recognizer -> Parse
//
// The Recognizer is injected, so this package does not depend on Tesseract.
// Parser and Validate are pure and safe for concurrent use. ProcessBatch runs
// several screenshots at once; the recognizer decides how much of that work
// actually overlaps.
package simdata
