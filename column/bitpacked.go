package column

import (
	"github.com/arloliu/redbin/endian"
	"github.com/arloliu/redbin/format"
)

// wordDecoder returns how a bit-packed kind stores each 32-bit word.
func wordDecoder(kind format.ColumnKind) func([]byte) uint32 {
	if kind == format.KindPCK {
		return endian.Uint32HighWordFirst
	}

	return endian.GetLittleEndianEngine().Uint32
}

// decodeBitPacked extracts MSB-first packed values of meta.UnitWidth bits.
//
// The last loaded word is cached together with its byte offset, so consecutive
// positions that share a word cost no I/O, and a value straddling two words
// leaves the second one loaded for the next position.
func decodeBitPacked(src *source, meta Meta, positions []int) ([]int32, error) {
	decode := wordDecoder(meta.Kind)
	width := uint64(meta.UnitWidth) //nolint:gosec
	mask := uint32(uint64(1)<<width - 1)

	out := make([]int32, len(positions))

	current := int64(-1)
	var word uint32

	for i, p := range positions {
		if p < 1 || p > meta.RecordCount {
			out[i] = format.NAInt32
			continue
		}

		bitPos := uint64(p-1) * width
		target := int64(bitPos/32) * 4
		if target != current {
			if err := src.seek(target); err != nil {
				return nil, err
			}
			w, err := src.readWord(decode)
			if err != nil {
				return nil, err
			}
			word = w
			current = target
		}

		shift := bitPos % 32

		var v uint32
		if 32-shift >= width {
			v = (word >> (32 - width - shift)) & mask
		} else {
			// The source is positioned right after the current word.
			next, err := src.readWord(decode)
			if err != nil {
				return nil, err
			}
			k := width + shift - 32
			v = ((word << k) + (next >> (32 - k))) & mask
			word = next
			current += 4
		}

		out[i] = int32(v) //nolint:gosec
	}

	return out, nil
}
