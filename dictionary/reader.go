package dictionary

import (
	"fmt"
	"os"

	"github.com/arloliu/redbin/compress"
	"github.com/arloliu/redbin/cursor"
	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/format"
	"github.com/arloliu/redbin/internal/options"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Reader parses dictionary headers. It holds only configuration and is safe for concurrent use.
type Reader struct {
	logger      log.Logger
	compression format.CompressionType
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*Reader]

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(logger log.Logger) ReaderOption {
	return options.New(func(r *Reader) error {
		if logger == nil {
			return fmt.Errorf("dictionary reader: nil logger")
		}
		r.logger = logger

		return nil
	})
}

// WithCompression declares that blobs passed to Read are compressed with compressionType.
func WithCompression(compressionType format.CompressionType) ReaderOption {
	return options.New(func(r *Reader) error {
		if _, err := compress.GetCodec(compressionType); err != nil {
			return err
		}
		r.compression = compressionType

		return nil
	})
}

// NewReader creates a Reader.
//
// Returns an error if any option is invalid.
func NewReader(opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		logger:      log.NewNopLogger(),
		compression: format.CompressionNone,
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

// Read parses the header at the start of data, inflating it first if the
// reader was configured with a compression type.
//
// Returns:
//   - Metadata: The parsed header
//   - error: errs.ErrMalformedMetadata if a field runs past the end of the blob,
//     or a decompression error
func (r *Reader) Read(data []byte) (Metadata, error) {
	raw, err := compress.Inflate(r.compression, data)
	if err != nil {
		return Metadata{}, err
	}

	return r.Parse(cursor.New(raw))
}

// ReadFile reads the blob at path and parses it like Read.
func (r *Reader) ReadFile(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", errs.ErrFileAccess, err)
	}

	return r.Read(data)
}

// Parse consumes the header fields from c in order, leaving c positioned after
// the last field. The cursor content must already be inflated.
func (r *Reader) Parse(c *cursor.Cursor) (Metadata, error) {
	var (
		m   Metadata
		err error
	)

	start := c.Pos()

	if m.Unknown1, err = c.ReadUint32LowWordFirst(); err != nil {
		return Metadata{}, malformed("unknown1", err)
	}
	if m.Name, err = c.ReadShortString(); err != nil {
		return Metadata{}, malformed("name", err)
	}
	if err = readDate(c, &m.CreationDate); err != nil {
		return Metadata{}, malformed("creation date", err)
	}
	if err = readDate(c, &m.ModificationDate); err != nil {
		return Metadata{}, malformed("modification date", err)
	}
	if m.RootDir, err = c.ReadShortString(); err != nil {
		return Metadata{}, malformed("root dir", err)
	}
	if m.Unknown2, err = c.ReadShortString(); err != nil {
		return Metadata{}, malformed("unknown2", err)
	}

	level.Debug(r.logger).Log("msg", "parsed dictionary header",
		"name", m.Name, "id", m.ID(), "root_dir", m.RootDir, "bytes", c.Pos()-start)

	return m, nil
}

func readDate(c *cursor.Cursor, dst *[DateSize]byte) error {
	b, err := c.ReadBytes(DateSize)
	if err != nil {
		return err
	}
	copy(dst[:], b)

	return nil
}

func malformed(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrMalformedMetadata, field, err)
}

// Read parses a dictionary header with a Reader built from opts.
func Read(data []byte, opts ...ReaderOption) (Metadata, error) {
	r, err := NewReader(opts...)
	if err != nil {
		return Metadata{}, err
	}

	return r.Read(data)
}
