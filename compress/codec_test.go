package compress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// identityCodec is a test double whose Compress/Decompress return the
// input unchanged, for exercising interface plumbing without a real
// algorithm.
type identityCodec struct{}

func (identityCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (identityCodec) Decompress(data []byte) ([]byte, error) { return data, nil }

var _ Codec = identityCodec{}

// imageBlock builds an NPPBH x NPPBV single-band 8-bit block with a
// smooth gradient, the kind of payload an image segment's block codec
// actually sees: locally correlated, moderately compressible.
func imageBlock(nppbh, nppbv int) []byte {
	block := make([]byte, nppbh*nppbv)
	for row := 0; row < nppbv; row++ {
		for col := 0; col < nppbh; col++ {
			block[row*nppbh+col] = byte((row + col) / 2)
		}
	}

	return block
}

// overflowDESPayload builds a framed-TRE-shaped byte run: repeated
// 6-byte tag + 5-digit length prefixes with zero-padded numeric bodies,
// the texture of a TRE_OVERFLOW DES data block.
func overflowDESPayload(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "IOMAPA%05d", 91)
		fmt.Fprintf(&buf, "%091d", i)
	}

	return buf.Bytes()
}

// widebandSamples builds interleaved pseudo-I/Q sample bytes, the
// pass-through payload of a CPHD wideband section: high entropy, barely
// compressible.
func widebandSamples(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte((i*2654435761 + i*i) >> 3)
	}

	return data
}

func TestCode_String(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		expected string
	}{
		{"none", CodeNone, "None"},
		{"zstd", CodeZstd, "Zstd"},
		{"s2", CodeS2, "S2"},
		{"lz4", CodeLZ4, "LZ4"},
		{"unknown", Code(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.code.String())
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for _, code := range []Code{CodeNone, CodeZstd, CodeS2, CodeLZ4} {
		codec, err := CreateCodec(code, "image block")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(Code(0xFF), "image block")
	require.Error(t, err)
	require.Contains(t, err.Error(), "image block")
}

func TestGetCodecSharedInstances(t *testing.T) {
	a, err := GetCodec(CodeZstd)
	require.NoError(t, err)

	b, err := GetCodec(CodeZstd)
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = GetCodec(Code(0xFF))
	require.Error(t, err)
}

func TestCodecInterfaceCompliance(t *testing.T) {
	codec := identityCodec{}

	require.Implements(t, (*Compressor)(nil), codec)
	require.Implements(t, (*Decompressor)(nil), codec)
	require.Implements(t, (*Codec)(nil), codec)

	block := imageBlock(32, 32)

	compressed, err := codec.Compress(block)
	require.NoError(t, err)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, block, decompressed)
}

func TestStats_Calculations(t *testing.T) {
	tests := []struct {
		name            string
		stats           Stats
		expectedRatio   float64
		expectedSavings float64
	}{
		{
			name: "well-compressed image block",
			stats: Stats{
				Algorithm:      CodeZstd,
				OriginalSize:   1000,
				CompressedSize: 300,
			},
			expectedRatio:   0.3,
			expectedSavings: 70.0,
		},
		{
			name: "pass-through",
			stats: Stats{
				Algorithm:      CodeNone,
				OriginalSize:   500,
				CompressedSize: 500,
			},
			expectedRatio:   1.0,
			expectedSavings: 0.0,
		},
		{
			name: "incompressible wideband expands",
			stats: Stats{
				Algorithm:      CodeS2,
				OriginalSize:   100,
				CompressedSize: 120,
			},
			expectedRatio:   1.2,
			expectedSavings: -20.0,
		},
		{
			name: "zero original size",
			stats: Stats{
				Algorithm:      CodeLZ4,
				OriginalSize:   0,
				CompressedSize: 100,
			},
			expectedRatio:   0.0,
			expectedSavings: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expectedRatio, tt.stats.Ratio(), 0.001)
			require.InDelta(t, tt.expectedSavings, tt.stats.SpaceSavings(), 0.001)
		})
	}
}

func TestNoOpCompressor_EmptyData(t *testing.T) {
	compressor := NewNoOpCompressor()

	compressed, err := compressor.Compress(nil)
	require.NoError(t, err)
	require.Nil(t, compressed)

	empty := []byte{}
	compressed, err = compressor.Compress(empty)
	require.NoError(t, err)
	require.Equal(t, empty, compressed)

	decompressed, err := compressor.Decompress(nil)
	require.NoError(t, err)
	require.Nil(t, decompressed)

	decompressed, err = compressor.Decompress(empty)
	require.NoError(t, err)
	require.Equal(t, empty, decompressed)
}

func TestNoOpCompressor_PassesSliceThrough(t *testing.T) {
	compressor := NewNoOpCompressor()

	tests := []struct {
		name string
		data []byte
	}{
		{"des payload", []byte("123456789ABCDEF0")},
		{"binary block", []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD}},
		{"pad block", make([]byte, 32*32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := compressor.Compress(tt.data)
			require.NoError(t, err)
			require.Equal(t, tt.data, compressed)
			if len(tt.data) > 0 {
				// IC="NC" is a pass-through: same backing array, no copy.
				require.Same(t, &tt.data[0], &compressed[0])
			}

			decompressed, err := compressor.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, tt.data, decompressed)
		})
	}
}

// getAllCodecs returns every built-in codec implementation.
func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed, "compressing nil should return nil")

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed, "decompressing nil should return nil")

			compressed, err = codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed, "decompressing empty should return empty")
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"single_byte", []byte{0x42}},
		{"des_literal", []byte("123456789ABCDEF0")},
		{"small_block_32x32", imageBlock(32, 32)},
		{"large_block_256x256", imageBlock(256, 256)},
		{"tre_overflow_des", overflowDESPayload(160)}, // ~16KB of framed TREs
		{"cphd_wideband", widebandSamples(64 * 1024)},
		{"masked_pad_block", make([]byte, 1024*1024)}, // all-pad, maximally compressible
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					ratio := float64(len(compressed)) / float64(len(tc.data)) * 100
					t.Logf("original: %d bytes, compressed: %d bytes, ratio: %.2f%%",
						len(tc.data), len(compressed), ratio)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed, "decompressed data must match original")
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{"random_bytes", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"raw_subheader_text", []byte("NITF02.10 not a compressed frame")},
		{"corrupted_header", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("the pass-through codec accepts anything")
				return
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err, "should reject data that is not a valid compressed frame")
				})
			}
		})
	}
}

// TestAllCodecs_ConcurrentUsage exercises the documented thread-safety
// contract: independent image-segment reads may share a codec instance.
func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 20

	block := imageBlock(64, 64)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(block)
			require.NoError(t, err)

			done := make(chan error, numGoroutines*2)

			for i := 0; i < numGoroutines; i++ {
				go func() {
					_, err := codec.Compress(block)
					done <- err
				}()

				go func() {
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						done <- err
						return
					}
					if !bytes.Equal(block, decompressed) {
						done <- fmt.Errorf("decompressed block mismatch")
						return
					}
					done <- nil
				}()
			}

			for i := 0; i < numGoroutines*2; i++ {
				require.NoError(t, <-done)
			}
		})
	}
}

func TestAllCodecs_PadBlockCompression(t *testing.T) {
	// A masked segment's synthesized pad block is a single repeated
	// byte; every real codec should collapse it dramatically.
	padBlock := bytes.Repeat([]byte{0x7E}, 1024*1024)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(padBlock)
			require.NoError(t, err)

			if codecName == "NoOp" {
				require.Equal(t, len(padBlock), len(compressed))
			} else {
				require.Less(t, len(compressed), len(padBlock)/10,
					"a constant pad block should compress below 10%% of its raw size")
			}

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, padBlock, decompressed)
		})
	}
}

func TestAllCodecs_ProgressiveBlockSizes(t *testing.T) {
	// Square block edges from sub-block reads up to the 8192-pixel NITF
	// blocking maximum's neighborhood.
	edges := []int{1, 4, 16, 32, 64, 128, 256, 512, 1024}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, edge := range edges {
				t.Run(fmt.Sprintf("%dx%d", edge, edge), func(t *testing.T) {
					data := imageBlock(edge, edge)

					compressed, err := codec.Compress(data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, data, decompressed)
				})
			}
		})
	}
}
