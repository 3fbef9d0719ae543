package cursor

import (
	"fmt"

	"github.com/arloliu/redbin/endian"
	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/internal/pool"
)

// MaxShortStringLength is the longest string the short form can carry; longer
// lengths collide with ShortStringEscape.
const MaxShortStringLength = ShortStringEscape - 1

// ShortStringEncoder writes strings in the short form read by Cursor.ReadShortString.
//
// Each string is encoded as:
//   - 2 bytes: length, little-endian
//   - N bytes: string data
//
// The long form is not produced.
type ShortStringEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewShortStringEncoder creates an encoder backed by a pooled buffer.
//
// Call Finish when done to return the buffer to the pool.
func NewShortStringEncoder() *ShortStringEncoder {
	return &ShortStringEncoder{
		engine: endian.GetLittleEndianEngine(),
		buf:    pool.GetStringBuffer(),
	}
}

// Write encodes a single string.
//
// Returns errs.ErrStringTooLong if text exceeds MaxShortStringLength bytes.
func (e *ShortStringEncoder) Write(text string) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if len(text) > MaxShortStringLength {
		return fmt.Errorf("%w: length %d exceeds maximum %d", errs.ErrStringTooLong, len(text), MaxShortStringLength)
	}

	e.buf.Grow(2 + len(text))
	e.buf.B = e.engine.AppendUint16(e.buf.B, uint16(len(text))) //nolint:gosec
	e.buf.MustWriteString(text)
	e.count++

	return nil
}

// WriteSlice encodes texts in order. Nothing is written if any string is too long.
func (e *ShortStringEncoder) WriteSlice(texts []string) error {
	total := 0
	for _, text := range texts {
		if len(text) > MaxShortStringLength {
			return fmt.Errorf("%w: length %d exceeds maximum %d", errs.ErrStringTooLong, len(text), MaxShortStringLength)
		}
		total += 2 + len(text)
	}

	e.buf.Grow(total)
	for _, text := range texts {
		if err := e.Write(text); err != nil {
			return err
		}
	}

	return nil
}

// Bytes returns the encoded data. The slice is valid until the next Write or Finish.
func (e *ShortStringEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of strings encoded.
func (e *ShortStringEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
func (e *ShortStringEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *ShortStringEncoder) Finish() {
	if e.buf != nil {
		pool.PutStringBuffer(e.buf)
		e.buf = nil
	}
}

// EncodeShortString returns the short-form encoding of text: a 2-byte
// little-endian length followed by the raw bytes.
func EncodeShortString(text string) ([]byte, error) {
	enc := NewShortStringEncoder()
	defer enc.Finish()

	if err := enc.Write(text); err != nil {
		return nil, err
	}

	out := make([]byte, enc.Size())
	copy(out, enc.Bytes())

	return out, nil
}
