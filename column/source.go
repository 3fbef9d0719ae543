package column

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/redbin/compress"
	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/format"
)

// source is a positioned, buffered view of one column data file.
//
// It tracks the logical offset of the next byte so that seeks to the current
// offset, or short hops into already buffered bytes, never reach the OS.
type source struct {
	file   *os.File
	r      io.ReadSeeker
	br     *bufio.Reader
	offset int64

	seeks     int
	bytesRead int64
}

func openSource(path string, compression format.CompressionType, bufferSize int) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrFileAccess, path, err)
	}

	if compression == format.CompressionNone {
		return &source{file: f, r: f, br: bufio.NewReaderSize(f, bufferSize)}, nil
	}

	// Compressed files cannot be seeked, so they are inflated into memory once.
	raw, err := io.ReadAll(f)
	closeErr := f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrFileAccess, path, err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrFileAccess, path, closeErr)
	}

	data, err := compress.Inflate(compression, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r := bytes.NewReader(data)

	return &source{r: r, br: bufio.NewReaderSize(r, bufferSize)}, nil
}

// Close releases the file handle, if any.
func (s *source) Close() error {
	if s.file == nil {
		return nil
	}

	return s.file.Close()
}

// seek moves to absolute offset off.
func (s *source) seek(off int64) error {
	if off == s.offset {
		return nil
	}

	if gap := off - s.offset; gap > 0 && gap <= int64(s.br.Buffered()) {
		n, _ := s.br.Discard(int(gap))
		s.offset += int64(n)

		return nil
	}

	if _, err := s.r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek to %d: %w", errs.ErrFileAccess, off, err)
	}
	s.br.Reset(s.r)
	s.offset = off
	s.seeks++

	return nil
}

// read fills buf from the current offset.
//
// Returns the number of bytes read. A read that hits end of file after at least
// one byte returns io.ErrUnexpectedEOF, a read with nothing left returns io.EOF.
func (s *source) read(buf []byte) (int, error) {
	n, err := io.ReadFull(s.br, buf)
	s.offset += int64(n)
	s.bytesRead += int64(n)

	return n, err
}

// readWord loads the 32-bit word at the current offset. A trailing partial
// word is zero-padded, matching how the archive writer pads the last word.
func (s *source) readWord(decode func([]byte) uint32) (uint32, error) {
	var b [4]byte

	off := s.offset
	_, err := s.read(b[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, readError(fmt.Sprintf("word at offset %d", off), err)
	}

	return decode(b[:]), nil
}

// readRecord fills buf with one whole fixed-width record.
func (s *source) readRecord(buf []byte) error {
	off := s.offset
	if _, err := s.read(buf); err != nil {
		return readError(fmt.Sprintf("%d-byte record at offset %d", len(buf), off), err)
	}

	return nil
}

// readError classifies a failed read. Running out of data means the file is
// shorter than its record count implies; anything else is an I/O failure.
func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: %w", errs.ErrOutOfBounds, what, err)
	}

	return fmt.Errorf("%w: %s: %w", errs.ErrFileAccess, what, err)
}
