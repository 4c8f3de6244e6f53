package compress

// ZstdCompressor is the cgo/pure-Go-selected Zstandard codec (see
// zstd_cgo.go / zstd_pure.go), selected by CodeZstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
