package column

import (
	"fmt"

	"github.com/arloliu/redbin/compress"
	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/factor"
	"github.com/arloliu/redbin/format"
	"github.com/arloliu/redbin/internal/options"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	// DefaultReadBufferSize is the default size of the buffered reader over a data file.
	DefaultReadBufferSize = 4096
	// MinReadBufferSize is the smallest accepted read buffer size.
	MinReadBufferSize = 16
)

// Decoder reads values out of one column data file.
//
// A Decoder holds only immutable configuration, so one instance can serve
// concurrent Decode calls. Every call opens its own file handle.
type Decoder struct {
	meta        Meta
	logger      log.Logger
	compression format.CompressionType
	levels      *factor.LevelTable
	bufferSize  int
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// Stats reports what one decode call did.
type Stats struct {
	// Requested is the number of positions asked for.
	Requested int
	// NA is the number of entries that decoded to the missing-value marker.
	NA int
	// Seeks is the number of physical repositionings of the underlying reader.
	Seeks int
	// BytesRead is the number of bytes consumed from the (inflated) data.
	BytesRead int64
}

// WithLogger sets the logger used for debug and warning output. The default discards everything.
func WithLogger(logger log.Logger) DecoderOption {
	return options.New(func(d *Decoder) error {
		if logger == nil {
			return fmt.Errorf("column decoder: nil logger")
		}
		d.logger = logger

		return nil
	})
}

// WithCompression declares that the data file is stored compressed with compressionType.
// Compressed files are inflated into memory on every decode call.
func WithCompression(compressionType format.CompressionType) DecoderOption {
	return options.New(func(d *Decoder) error {
		if _, err := compress.GetCodec(compressionType); err != nil {
			return err
		}
		d.compression = compressionType

		return nil
	})
}

// WithLevels attaches a level table. Decoded raw keys are then translated into
// 1-based level codes. A nil or empty table leaves values untranslated.
//
// Only integer kinds (BIN, PCK, INT, LNG) accept levels.
func WithLevels(levels *factor.LevelTable) DecoderOption {
	return options.New(func(d *Decoder) error {
		if levels.Len() == 0 {
			d.levels = nil
			return nil
		}
		if !d.meta.Kind.IsInteger() {
			return fmt.Errorf("%w: %s columns cannot carry levels", errs.ErrInvalidColumn, d.meta.Kind)
		}
		d.levels = levels

		return nil
	})
}

// WithReadBufferSize sets the size of the buffered reader over the data file.
func WithReadBufferSize(size int) DecoderOption {
	return options.New(func(d *Decoder) error {
		if size < MinReadBufferSize {
			return fmt.Errorf("column decoder: read buffer size %d below minimum %d", size, MinReadBufferSize)
		}
		d.bufferSize = size

		return nil
	})
}

// NewDecoder creates a decoder for the column described by meta.
//
// Parameters:
//   - meta: Column metadata, validated with Meta.Validate
//   - opts: Optional configuration
//
// Returns:
//   - *Decoder: Ready-to-use decoder
//   - error: errs.ErrInvalidColumn for bad metadata, or an option error
func NewDecoder(meta Meta, opts ...DecoderOption) (*Decoder, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	d := &Decoder{
		meta:        meta,
		logger:      log.NewNopLogger(),
		compression: format.CompressionNone,
		bufferSize:  DefaultReadBufferSize,
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Meta returns the column metadata.
func (d *Decoder) Meta() Meta {
	return d.meta
}

// Levels returns the attached level table, or nil.
func (d *Decoder) Levels() *factor.LevelTable {
	return d.levels
}

// Decode returns one value per requested 1-based position, in request order.
//
// Positions may repeat and may come in any order. Positions outside
// 1..RecordCount yield the NA marker of the column type.
//
// Returns:
//   - Vector: Decoded values, Len() == len(positions)
//   - error: errs.ErrFileAccess if the file cannot be opened, errs.ErrOutOfBounds
//     if the file is shorter than RecordCount implies, or a decompression error
func (d *Decoder) Decode(positions []int) (Vector, error) {
	v, _, err := d.DecodeWithStats(positions)
	return v, err
}

// DecodeWithStats is Decode that also reports read statistics.
func (d *Decoder) DecodeWithStats(positions []int) (Vector, Stats, error) {
	src, err := openSource(d.meta.DataPath, d.compression, d.bufferSize)
	if err != nil {
		return Vector{}, Stats{}, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			level.Warn(d.logger).Log("msg", "closing column data file", "path", d.meta.DataPath, "err", cerr)
		}
	}()

	vec := Vector{kind: d.meta.Kind}

	switch d.meta.Kind {
	case format.KindBIN, format.KindPCK:
		vec.ints, err = decodeBitPacked(src, d.meta, positions)
	case format.KindINT, format.KindLNG:
		vec.ints, err = decodeFixedInts(src, d.meta, positions)
	case format.KindREAL:
		vec.floats, err = decodeFixedFloats(src, d.meta, positions)
	case format.KindCHR:
		vec.texts, err = decodeFixedTexts(src, d.meta, positions)
	default:
		err = fmt.Errorf("%w: unknown kind %d", errs.ErrInvalidColumn, d.meta.Kind)
	}
	if err != nil {
		return Vector{}, Stats{}, fmt.Errorf("decode %s column %s: %w", d.meta.Kind, d.meta.DataPath, err)
	}

	if d.levels != nil {
		vec.ints = factor.Translate(vec.ints, d.levels.Keys())
		vec.levels = d.levels
	}

	stats := Stats{
		Requested: len(positions),
		Seeks:     src.seeks,
		BytesRead: src.bytesRead,
	}
	for i := 0; i < vec.Len(); i++ {
		if vec.IsNA(i) {
			stats.NA++
		}
	}

	level.Debug(d.logger).Log(
		"msg", "decoded column",
		"column", fmt.Sprintf("%016x", d.meta.ID()),
		"kind", d.meta.Kind,
		"requested", stats.Requested,
		"na", stats.NA,
		"seeks", stats.Seeks,
		"bytes", stats.BytesRead,
	)

	return vec, stats, nil
}

// Decode is a convenience wrapper that builds a Decoder and runs a single decode.
func Decode(meta Meta, positions []int, opts ...DecoderOption) (Vector, error) {
	d, err := NewDecoder(meta, opts...)
	if err != nil {
		return Vector{}, err
	}

	return d.Decode(positions)
}
