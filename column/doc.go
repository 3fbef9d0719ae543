// Package column decodes fixed-width columns from archive data files by record position.
//
// A column is a file of equally sized values with no header. Two physical
// layouts exist:
//
//   - Bit-packed (BIN, PCK): each value takes UnitWidth bits, packed MSB-first
//     across consecutive 32-bit words without padding between records. A value
//     may straddle two words.
//   - Byte-aligned (CHR, INT, LNG, REAL): each value takes UnitWidth bytes.
//
// # Random Access
//
// Decode takes 1-based record positions in any order, with duplicates, and
// returns one value per position. Positions outside 1..RecordCount yield the
// NA marker of the column type: format.NAInt32, format.NAFloat64() or NAText.
//
// The decoder remembers which word (or record offset) it last loaded and only
// seeks when the next request lives elsewhere, so ascending position lists are
// read almost sequentially. Seeking never affects the decoded values.
//
// # Factors
//
// Integer columns can carry a factor.LevelTable (WithLevels). Decoded raw keys
// are then translated into 1-based level codes, and Vector.Factor pairs them
// with labels.
//
// # Resources
//
// Each Decode call opens the data file, performs a strictly ordered sequence of
// seeks and reads, and closes it before returning, on error paths too. A
// failed call returns no partial output. A Decoder holds only immutable
// configuration and may be shared across goroutines; concurrent calls use
// separate file handles.
package column
