// Package vocab holds the bilingual label tables used to recognise Sims 4
// attributes in OCR text.
//
// Every table pairs the English label shown by the game (the source label)
// with the Swedish label presented to the user (the target label). The
// tables are built into the binary and never change at run time, so they can
// be shared freely between goroutines.
//
// # Translation
//
// Translate maps a source label to its target label using a case-insensitive
// comparison and the first matching entry. Labels that match nothing are
// returned unchanged:
//
//	vocab.Default().Traits.Translate("ambitious") // "Ambitiös"
//	vocab.Default().Traits.Translate("Astronaut") // "Astronaut" (not a trait)
//
// # Candidate pools
//
// Names returns all source labels followed by all target labels, which is
// the pool the fuzzy matcher searches so text in either language can be
// recognised. Aspirations are stored in categories; CategoryTable.Names
// flattens them in category order.
package vocab
