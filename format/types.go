package format

type (
	ColumnKind      uint8
	Layout          uint8
	CompressionType uint8
)

const (
	KindBIN  ColumnKind = 0x1 // KindBIN is a bit-packed column of little-endian 32-bit words.
	KindPCK  ColumnKind = 0x2 // KindPCK is a bit-packed column of high-word-first 32-bit words.
	KindCHR  ColumnKind = 0x3 // KindCHR is a fixed-width text column.
	KindINT  ColumnKind = 0x4 // KindINT is an unsigned 16-bit integer column.
	KindLNG  ColumnKind = 0x5 // KindLNG is a 32-bit integer column.
	KindREAL ColumnKind = 0x6 // KindREAL is a float64 column.

	LayoutBitPacked  Layout = 0x1 // LayoutBitPacked stores values back-to-back across 32-bit words.
	LayoutFixedBytes Layout = 0x2 // LayoutFixedBytes stores each value in a whole number of bytes.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Layout returns the physical layout used by the column kind.
func (k ColumnKind) Layout() Layout {
	switch k {
	case KindBIN, KindPCK:
		return LayoutBitPacked
	case KindCHR, KindINT, KindLNG, KindREAL:
		return LayoutFixedBytes
	default:
		return 0
	}
}

// ScalarSize returns the minimum number of bytes a fixed-width value of this kind occupies.
// Bit-packed and text kinds return 1.
func (k ColumnKind) ScalarSize() int {
	switch k {
	case KindINT:
		return 2
	case KindLNG:
		return 4
	case KindREAL:
		return 8
	default:
		return 1
	}
}

// IsInteger reports whether the kind decodes to int32 values.
func (k ColumnKind) IsInteger() bool {
	switch k {
	case KindBIN, KindPCK, KindINT, KindLNG:
		return true
	default:
		return false
	}
}

func (k ColumnKind) String() string {
	switch k {
	case KindBIN:
		return "BIN"
	case KindPCK:
		return "PCK"
	case KindCHR:
		return "CHR"
	case KindINT:
		return "INT"
	case KindLNG:
		return "LNG"
	case KindREAL:
		return "REAL"
	default:
		return "Unknown"
	}
}

func (l Layout) String() string {
	switch l {
	case LayoutBitPacked:
		return "BitPacked"
	case LayoutFixedBytes:
		return "FixedBytes"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
