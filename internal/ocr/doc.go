// Package ocr reads text from screenshots with Tesseract.
//
// An Engine wraps one gosseract client. Loading the language models is slow,
// so the engine is opened once and shared; it is released with Close and must
// be opened again before further use. Recognition calls on one engine run one
// at a time.
//
// # Prerequisites
//
// Tesseract and its language models must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng tesseract-ocr-swe
//   - macOS: brew install tesseract tesseract-lang
//
// Models are looked up in Config.TessdataPrefix, then TESSDATA_PREFIX, then
// the installation default. Engine.Info reports which configured languages
// are missing.
//
// # Languages
//
// The default is English and Swedish ("eng+swe"), matching the two languages
// the game UI is read in. ParseLanguages accepts "+" or "," separated codes.
//
// # Error Handling
//
// Failures inside Tesseract are returned as *RecognitionError. If word boxes
// cannot be extracted, Recognize still returns the full text with an empty
// Regions slice.
package ocr
