// Package redbin reads the binary files of statistical census archives:
// dictionary headers, fixed-width column data files, and string fragments
// recovered from blobs whose structure is unknown.
//
// # Core Features
//
//   - Random access into bit-packed (BIN, PCK) and byte-aligned (CHR, INT, LNG, REAL) columns
//   - Missing-value markers for positions outside the column
//   - Factor translation of categorical keys into 1-based level codes
//   - Dictionary header parsing with the two-tier short-string encoding
//   - Heuristic recovery of length-prefixed strings from opaque blobs
//   - Optional compressed inputs (Zstd, S2, LZ4)
//
// # Basic Usage
//
// Decoding a column:
//
//	import "github.com/arloliu/redbin"
//
//	vec, err := redbin.DecodeColumn("PERSONA.SEXO.rbf", format.KindBIN, 2, 1_000_000,
//	    []int{1, 2, 3, 999_999})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, v := range vec.Ints() {
//	    if vec.IsNA(i) {
//	        continue
//	    }
//	    fmt.Println(v)
//	}
//
// Reading a dictionary header:
//
//	meta, err := redbin.ReadDictionaryFile("CENSO.dic")
//	fmt.Println(meta.Name, meta.RootDir)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the column,
// dictionary, factor and cursor packages, covering the most common use cases.
// For long-lived decoders, level tables or low-level cursor access, use those
// packages directly.
package redbin

import (
	"github.com/arloliu/redbin/column"
	"github.com/arloliu/redbin/cursor"
	"github.com/arloliu/redbin/dictionary"
	"github.com/arloliu/redbin/factor"
	"github.com/arloliu/redbin/format"
)

// DecodeColumn decodes the requested 1-based record positions of one column file.
//
// Parameters:
//   - path: Location of the column data file
//   - kind: Column kind, which also selects the physical layout
//   - unitWidth: Bits per value for BIN and PCK, bytes per value otherwise
//   - recordCount: Number of records in the file
//   - positions: 1-based record positions, in any order, duplicates allowed
//   - opts: Decoder options such as column.WithLevels or column.WithCompression
//
// Returns:
//   - column.Vector: One entry per position; out-of-range positions are NA
//   - error: errs.ErrInvalidColumn, errs.ErrFileAccess or errs.ErrOutOfBounds
//
// Example:
//
//	levels, _ := factor.NewLevelTable([]int32{1, 2}, []string{"male", "female"})
//	vec, err := redbin.DecodeColumn(path, format.KindPCK, 2, n, positions,
//	    column.WithLevels(levels),
//	)
func DecodeColumn(
	path string,
	kind format.ColumnKind,
	unitWidth int,
	recordCount int,
	positions []int,
	opts ...column.DecoderOption,
) (column.Vector, error) {
	meta, err := column.NewMeta(path, kind, unitWidth, recordCount)
	if err != nil {
		return column.Vector{}, err
	}

	return column.Decode(meta, positions, opts...)
}

// ReadDictionary parses the header at the start of a dictionary blob.
//
// Returns errs.ErrMalformedMetadata if any field runs past the end of data.
func ReadDictionary(data []byte, opts ...dictionary.ReaderOption) (dictionary.Metadata, error) {
	return dictionary.Read(data, opts...)
}

// ReadDictionaryFile reads a dictionary file from disk and parses its header.
//
// Returns errs.ErrFileAccess if the file cannot be read, or errs.ErrMalformedMetadata.
func ReadDictionaryFile(path string, opts ...dictionary.ReaderOption) (dictionary.Metadata, error) {
	r, err := dictionary.NewReader(opts...)
	if err != nil {
		return dictionary.Metadata{}, err
	}

	return r.ReadFile(path)
}

// TranslateLevels maps raw categorical values onto 1-based positions in the
// ascending key table. Values without an exact match become format.NAInt32.
func TranslateLevels(values []int32, keys []int32) []int32 {
	return factor.Translate(values, keys)
}

// RecoverStrings walks data from offset start and collects every plausible
// length-prefixed string it can find, with the offset of its length prefix.
func RecoverStrings(data []byte, start int) []cursor.Fragment {
	return cursor.RecoverStrings(data, start)
}

// RecoverAnchored finds every occurrence of anchor in data and recovers the
// plausible length-prefixed string that ends right before it.
//
// Example:
//
//	for _, f := range redbin.RecoverAnchored(blob, []byte("DATASET")) {
//	    fmt.Printf("%d: %s\n", f.Offset, f.Text)
//	}
func RecoverAnchored(data []byte, anchor []byte) []cursor.Fragment {
	return cursor.RecoverAnchored(data, anchor)
}
