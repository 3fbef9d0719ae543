package cursor

import (
	"bytes"
	"fmt"
	"os"

	"github.com/arloliu/redbin/endian"
	"github.com/arloliu/redbin/errs"
)

// ShortStringEscape is the 16-bit length prefix that switches to the long-form string encoding.
const ShortStringEscape = 0xFFFF

// Cursor is a read position over an immutable byte buffer.
type Cursor struct {
	data []byte
	pos  int
}

// New creates a cursor positioned at the start of data.
//
// The cursor does not copy data; the caller must not modify it while the cursor is in use.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ReadFile loads the whole file at path into a new cursor.
//
// Returns errs.ErrFileAccess if the file cannot be read.
func ReadFile(path string) (*Cursor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFileAccess, err)
	}

	return New(data), nil
}

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Pos returns the current read position. It may lie outside the buffer after Seek or SetPos.
func (c *Cursor) Pos() int {
	return c.pos
}

// SetPos moves the read position to an absolute offset without bounds checking.
func (c *Cursor) SetPos(pos int) {
	c.pos = pos
}

// Seek moves the read position by delta bytes without bounds checking.
func (c *Cursor) Seek(delta int) {
	c.pos += delta
}

// Remaining returns the number of readable bytes from the current position, or 0
// if the position lies outside the buffer.
func (c *Cursor) Remaining() int {
	if c.pos < 0 || c.pos > len(c.data) {
		return 0
	}

	return len(c.data) - c.pos
}

// Bytes returns the underlying buffer. The caller must not modify it.
func (c *Cursor) Bytes() []byte {
	return c.data
}

// Slice extracts data[start:end] as a new cursor that owns an independent copy.
//
// Returns errs.ErrInvalidRange unless 0 <= start <= end <= Len().
func (c *Cursor) Slice(start, end int) (*Cursor, error) {
	if start < 0 || start > end || end > len(c.data) {
		return nil, fmt.Errorf("%w: [%d:%d] of %d bytes", errs.ErrInvalidRange, start, end, len(c.data))
	}

	return New(bytes.Clone(c.data[start:end])), nil
}

// peek returns the next n bytes without advancing.
func (c *Cursor) peek(n int) ([]byte, error) {
	if n < 0 || c.pos < 0 || c.pos > len(c.data)-n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d of %d", errs.ErrOutOfBounds, n, c.pos, len(c.data))
	}

	return c.data[c.pos : c.pos+n], nil
}

// take returns the next n bytes and advances past them.
func (c *Cursor) take(n int) ([]byte, error) {
	b, err := c.peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += n

	return b, nil
}

// ReadByte returns the byte at the read position and advances by one.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadUint16 reads a little-endian 16-bit value: low + 256*high.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}

	return endian.GetLittleEndianEngine().Uint16(b), nil
}

// ReadUint16BigEndian reads a big-endian 16-bit value.
func (c *Cursor) ReadUint16BigEndian() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}

	return endian.GetBigEndianEngine().Uint16(b), nil
}

// ReadUint32 reads a 32-bit value in the byte order of engine.
func (c *Cursor) ReadUint32(engine endian.EndianEngine) (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}

	return engine.Uint32(b), nil
}

// ReadUint32HighWordFirst reads two little-endian 16-bit words, the first being the high word.
func (c *Cursor) ReadUint32HighWordFirst() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}

	return endian.Uint32HighWordFirst(b), nil
}

// ReadUint32LowWordFirst reads two little-endian 16-bit words, the first being the low word.
func (c *Cursor) ReadUint32LowWordFirst() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}

	return endian.Uint32LowWordFirst(b), nil
}

// ReadBytes returns a copy of the next n bytes and advances past them.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}

	return bytes.Clone(b), nil
}

// ReadChars returns the next n bytes as text and advances past them.
func (c *Cursor) ReadChars(n int) (string, error) {
	b, err := c.take(n)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// ReadShortString reads a length-prefixed string.
//
// A 16-bit prefix of ShortStringEscape is followed by a high-word-first 32-bit
// length; any other prefix is the length itself. On failure the read position
// is restored.
func (c *Cursor) ReadShortString() (string, error) {
	start := c.pos

	length, err := c.ReadUint16()
	if err != nil {
		return "", err
	}

	n := int(length)
	if length == ShortStringEscape {
		long, err := c.ReadUint32HighWordFirst()
		if err != nil {
			c.pos = start
			return "", err
		}
		n = int(long)
	}

	s, err := c.ReadChars(n)
	if err != nil {
		c.pos = start
		return "", err
	}

	return s, nil
}

// FindForward searches for pattern from the read position to the end of the buffer.
//
// On success the read position moves to the start of the match and FindForward
// returns true. Otherwise the position is unchanged. An empty pattern, or a
// position outside the buffer, never matches.
func (c *Cursor) FindForward(pattern []byte) bool {
	if len(pattern) == 0 || c.pos < 0 || c.pos > len(c.data) {
		return false
	}

	idx := bytes.Index(c.data[c.pos:], pattern)
	if idx < 0 {
		return false
	}
	c.pos += idx

	return true
}

// FindAllForward returns the start offsets of every match of pattern at or after
// the read position, in increasing order. Overlapping matches are included.
// The read position is left unchanged.
func (c *Cursor) FindAllForward(pattern []byte) []int {
	start := c.pos
	defer func() { c.pos = start }()

	var matches []int
	for c.FindForward(pattern) {
		matches = append(matches, c.pos)
		c.pos++
	}

	return matches
}
