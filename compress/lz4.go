package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

const (
	// lz4MaxInflatedSize caps the output buffer when the inflated size is unknown.
	// Inputs so large that four times their size already exceeds it still get one attempt.
	lz4MaxInflatedSize = 256 * 1024 * 1024
	// lz4MaxRatio bounds how far a valid block can expand: each extra match-length
	// byte adds at most 255 output bytes.
	lz4MaxRatio = 256
	// lz4RatioSlack covers the fixed overhead of very short blocks.
	lz4RatioSlack = 1024
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 block codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data as a single LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress inflates a single LZ4 block.
//
// LZ4 blocks do not record their inflated size, so the output buffer starts at
// four times the input and doubles on ErrInvalidSourceShortBuffer up to a limit.
// The limit is the largest size the input could expand to, clamped to
// lz4MaxInflatedSize. Corrupt input reports the same error as a short buffer,
// so it fails once the limit is tried.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	limit, bufSize := lz4BufferBounds(len(data))
	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize >= limit {
			return nil, err
		}
		bufSize = min(bufSize*2, limit)
	}
}

// lz4BufferBounds returns the largest and the first output buffer size tried
// for a block of n compressed bytes.
func lz4BufferBounds(n int) (limit, first int) {
	limit = min(n*lz4MaxRatio+lz4RatioSlack, lz4MaxInflatedSize)
	first = n * 4
	if first > limit {
		limit = first
	}

	return limit, first
}
