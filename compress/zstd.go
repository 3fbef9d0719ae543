package compress

// ZstdCompressor provides Zstandard compression.
//
// Zstd gives the best ratio of the supported codecs and is the usual choice for
// redistributing whole archives. The implementation is selected at build time:
// pure Go by default, cgo-backed with the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
