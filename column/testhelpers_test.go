package column

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/redbin/endian"
	"github.com/arloliu/redbin/format"
	"github.com/stretchr/testify/require"
)

// packBits packs values MSB-first into 32-bit words and serializes each word
// the way kind stores it.
func packBits(values []uint32, width int, kind format.ColumnKind) []byte {
	totalBits := len(values) * width
	words := make([]uint32, (totalBits+31)/32)

	for i, v := range values {
		base := i * width
		for b := 0; b < width; b++ {
			bit := (v >> (width - 1 - b)) & 1
			pos := base + b
			words[pos/32] |= bit << (31 - pos%32)
		}
	}

	out := make([]byte, 0, len(words)*4)
	for _, w := range words {
		if kind == format.KindPCK {
			out = endian.AppendUint32HighWordFirst(out, w)
		} else {
			out = binary.LittleEndian.AppendUint32(out, w)
		}
	}

	return out
}

func writeFile(t testing.TB, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "column.dat")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func sequence(n int) []int {
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i + 1
	}

	return positions
}

func fixedRecords(width int, scalars ...[]byte) []byte {
	out := make([]byte, 0, width*len(scalars))
	for _, s := range scalars {
		rec := make([]byte, width)
		copy(rec, s)
		out = append(out, rec...)
	}

	return out
}

func le16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }
func le32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }
func f64(v float64) []byte { return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)) }
