package format

import "math"

// NAInt32 marks a missing value in integer and factor columns.
const NAInt32 int32 = math.MinInt32

// naFloat64Bits is a NaN with payload 1954. It differs from the bits
// produced by math.NaN and by ordinary arithmetic, so a stored NaN is not
// mistaken for a missing value.
const naFloat64Bits uint64 = 0x7FF00000000007A2

// NAFloat64 returns the missing-value marker for float columns.
func NAFloat64() float64 {
	return math.Float64frombits(naFloat64Bits)
}

// IsNAFloat64 reports whether v carries the missing-value bit pattern.
// An ordinary NaN returns false.
func IsNAFloat64(v float64) bool {
	return math.Float64bits(v) == naFloat64Bits
}
