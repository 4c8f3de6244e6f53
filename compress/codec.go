package compress

import "fmt"

// Compressor compresses a byte block. NITRO's built-in codecs carry no
// per-call state, so the interface alone suffices.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller; it may share memory with
	//     data (NoOpCompressor returns data itself)
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte block previously produced by the
// matching Compressor.
//
// Thread Safety: Decompressor implementations must be safe for concurrent
// use or document their thread safety requirements clearly.
type Decompressor interface {
	// Decompress decompresses data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with an incompatible codec
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats reports the outcome of one compression operation, for CLI and
// test diagnostics.
type Stats struct {
	Algorithm           Code
	OriginalSize        int64
	CompressedSize      int64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// Ratio returns compressed size / original size. Values under 1.0 indicate
// successful compression.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// CreateCodec constructs a Codec for the given Code. target names the
// caller's usage for the error message (e.g. "TRE_OVERFLOW DES", "CPHD
// wideband").
func CreateCodec(code Code, target string) (Codec, error) {
	switch code {
	case CodeNone:
		return NewNoOpCompressor(), nil
	case CodeZstd:
		return NewZstdCompressor(), nil
	case CodeS2:
		return NewS2Compressor(), nil
	case CodeLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, code)
	}
}

var builtinCodecs = map[Code]Codec{
	CodeNone: NewNoOpCompressor(),
	CodeZstd: NewZstdCompressor(),
	CodeS2:   NewS2Compressor(),
	CodeLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec instance for code.
func GetCodec(code Code) (Codec, error) {
	if codec, ok := builtinCodecs[code]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression code: %s", code)
}
