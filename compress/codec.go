// Package compress provides the codecs used to inflate archive files that are
// shipped compressed.
//
// Dictionary blobs and column data files are normally stored raw. Archives
// redistributed in compressed form are inflated in memory before decoding; the
// decoded result does not depend on whether a codec was involved.
//
// Supported algorithms: None, Zstd, S2 and LZ4. Zstd uses the pure Go
// implementation unless built with the gozstd tag and cgo enabled.
package compress

import (
	"fmt"

	"github.com/arloliu/redbin/errs"
	"github.com/arloliu/redbin/format"
)

// Compressor compresses archive payloads.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is owned by the caller and the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor inflates archive payloads.
//
// Thread Safety: Decompressor implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Returns an error if the input is corrupted or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
//
// Returns errs.ErrUnsupportedCompression for unknown types.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// Inflate decompresses data with the codec registered for compressionType.
//
// Parameters:
//   - compressionType: Algorithm the data was compressed with
//   - data: Compressed payload
//
// Returns:
//   - []byte: Decompressed payload (data itself for CompressionNone)
//   - error: errs.ErrUnsupportedCompression or a codec error
func Inflate(compressionType format.CompressionType, data []byte) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", compressionType, err)
	}

	return out, nil
}
