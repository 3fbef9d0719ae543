// Package endian provides the byte-order conversions used by the archive format.
//
// Scalars in data files and dictionary blobs are little-endian, which the
// standard engines cover. The format additionally builds 32-bit values out of
// two consecutive little-endian 16-bit words, and does so in two different
// word orders. Both orders are exposed here as named conversions so call sites
// state which one they mean instead of sharing a generic "read int32".
//
// # Word Orders
//
// For the four bytes b0 b1 b2 b3:
//
//	Uint32HighWordFirst: (b0 | b1<<8) << 16 | (b2 | b3<<8)
//	Uint32LowWordFirst:  (b2 | b3<<8) << 16 | (b0 | b1<<8)
//
// Uint32LowWordFirst is identical to a plain little-endian uint32.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Uint32HighWordFirst combines two little-endian 16-bit words, the first being the high word.
//
// This is the order used by the long-form length prefix of short strings and by
// PCK column words. b must hold at least 4 bytes.
func Uint32HighWordFirst(b []byte) uint32 {
	_ = b[3] // bounds check hint to compiler
	hi := uint32(b[0]) | uint32(b[1])<<8
	lo := uint32(b[2]) | uint32(b[3])<<8

	return hi<<16 | lo
}

// Uint32LowWordFirst combines two little-endian 16-bit words, the first being the low word.
//
// b must hold at least 4 bytes.
func Uint32LowWordFirst(b []byte) uint32 {
	_ = b[3] // bounds check hint to compiler
	lo := uint32(b[0]) | uint32(b[1])<<8
	hi := uint32(b[2]) | uint32(b[3])<<8

	return hi<<16 | lo
}

// AppendUint32HighWordFirst appends v in the high-word-first layout read by Uint32HighWordFirst.
func AppendUint32HighWordFirst(b []byte, v uint32) []byte {
	b = binary.LittleEndian.AppendUint16(b, uint16(v>>16))
	return binary.LittleEndian.AppendUint16(b, uint16(v))
}

// AppendUint32LowWordFirst appends v in the low-word-first layout read by Uint32LowWordFirst.
func AppendUint32LowWordFirst(b []byte, v uint32) []byte {
	b = binary.LittleEndian.AppendUint16(b, uint16(v))
	return binary.LittleEndian.AppendUint16(b, uint16(v>>16))
}
