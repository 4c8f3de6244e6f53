package compress

import (
	"bytes"
	"fmt"
	"testing"
)

// benchPayload builds a byte buffer shaped like one of the payloads
// NITRO's codecs actually see.
func benchPayload(size int, kind string) []byte {
	data := make([]byte, size)

	switch kind {
	case "pad_block":
		// A masked segment's synthesized pad block: one repeated byte.
		for i := range data {
			data[i] = 0x7E
		}
	case "image_block":
		// A single-band gradient block: locally correlated pixels, the
		// common case for uncompressed imagery handed to a block codec.
		for i := range data {
			data[i] = byte((i/64 + i%64) / 2)
		}
	case "tre_overflow":
		// Framed TREs: 11-byte ASCII tag+length prefixes over zero-padded
		// numeric bodies, the texture of a TRE_OVERFLOW DES.
		frame := []byte(fmt.Sprintf("IOMAPA%05d%091d", 91, 12345))
		for i := range data {
			data[i] = frame[i%len(frame)]
		}
	default: // "wideband"
		// Pseudo-I/Q samples: high entropy, barely compressible, the
		// CPHD wideband pass-through case.
		for i := range data {
			data[i] = byte((i*2654435761 + i*i) >> 3)
		}
	}

	return data
}

var benchKinds = []string{"pad_block", "image_block", "tre_overflow", "wideband"}

// Block sizes spanning a small 32x32 single-band block up to a 1024x1024
// block at the large end of NITF blocking.
var benchBlockSizes = []int{1024, 16384, 65536, 262144, 1048576}

func BenchmarkNoOpCompressor_Compress(b *testing.B) {
	compressor := NewNoOpCompressor()

	for _, size := range []int{1024, 4096, 16384, 65536} {
		data := benchPayload(size, "image_block")

		b.Run(fmt.Sprintf("%dKB", size/1024), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, err := compressor.Compress(data)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkNoOpCompressor_Decompress(b *testing.B) {
	compressor := NewNoOpCompressor()

	for _, size := range []int{1024, 4096, 16384, 65536} {
		data := benchPayload(size, "image_block")

		b.Run(fmt.Sprintf("%dKB", size/1024), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, err := compressor.Decompress(data)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAllCodecs_Compress(b *testing.B) {
	for codecName, codec := range getAllCodecs() {
		b.Run(codecName, func(b *testing.B) {
			for _, size := range benchBlockSizes {
				for _, kind := range benchKinds {
					b.Run(fmt.Sprintf("%dKB_%s", size/1024, kind), func(b *testing.B) {
						data := benchPayload(size, kind)

						b.ResetTimer()
						b.ReportAllocs()
						b.SetBytes(int64(len(data)))

						for i := 0; i < b.N; i++ {
							_, err := codec.Compress(data)
							if err != nil {
								b.Fatal(err)
							}
						}
					})
				}
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	for codecName, codec := range getAllCodecs() {
		b.Run(codecName, func(b *testing.B) {
			for _, size := range benchBlockSizes {
				for _, kind := range benchKinds {
					b.Run(fmt.Sprintf("%dKB_%s", size/1024, kind), func(b *testing.B) {
						data := benchPayload(size, kind)

						compressed, err := codec.Compress(data)
						if err != nil {
							b.Fatal(err)
						}

						b.ResetTimer()
						b.ReportAllocs()
						b.SetBytes(int64(len(data)))

						for i := 0; i < b.N; i++ {
							_, err := codec.Decompress(compressed)
							if err != nil {
								b.Fatal(err)
							}
						}
					})
				}
			}
		})
	}
}

func BenchmarkAllCodecs_RoundTrip(b *testing.B) {
	for codecName, codec := range getAllCodecs() {
		b.Run(codecName, func(b *testing.B) {
			for _, size := range benchBlockSizes {
				for _, kind := range benchKinds {
					b.Run(fmt.Sprintf("%dKB_%s", size/1024, kind), func(b *testing.B) {
						data := benchPayload(size, kind)

						b.ResetTimer()
						b.ReportAllocs()
						b.SetBytes(int64(len(data)))

						for i := 0; i < b.N; i++ {
							compressed, err := codec.Compress(data)
							if err != nil {
								b.Fatal(err)
							}
							_, err = codec.Decompress(compressed)
							if err != nil {
								b.Fatal(err)
							}
						}
					})
				}
			}
		})
	}
}

// BenchmarkAllCodecs_CompressionRatio reports each codec's ratio on a
// 1MB payload of each kind alongside its throughput, so picking a Code
// for a DES or wideband section is an informed trade.
func BenchmarkAllCodecs_CompressionRatio(b *testing.B) {
	const size = 1048576

	for codecName, codec := range getAllCodecs() {
		b.Run(codecName, func(b *testing.B) {
			for _, kind := range benchKinds {
				b.Run(kind, func(b *testing.B) {
					data := benchPayload(size, kind)

					compressed, err := codec.Compress(data)
					if err != nil {
						b.Fatal(err)
					}

					ratio := float64(len(compressed)) / float64(len(data)) * 100
					b.ReportMetric(ratio, "ratio%")
					b.ReportMetric(float64(len(compressed)), "compressed_bytes")

					b.ResetTimer()
					b.ReportAllocs()
					b.SetBytes(int64(len(data)))

					for i := 0; i < b.N; i++ {
						_, err := codec.Compress(data)
						if err != nil {
							b.Fatal(err)
						}
					}
				})
			}
		})
	}
}

// BenchmarkAllCodecs_SmallPayloads covers the small end: a lone TRE
// body or a thin image strip, where per-call overhead dominates.
func BenchmarkAllCodecs_SmallPayloads(b *testing.B) {
	sizes := []int{64, 128, 256, 512, 1024}

	for codecName, codec := range getAllCodecs() {
		b.Run(codecName, func(b *testing.B) {
			for _, size := range sizes {
				b.Run(fmt.Sprintf("%d_bytes", size), func(b *testing.B) {
					data := benchPayload(size, "tre_overflow")

					b.ResetTimer()
					b.ReportAllocs()
					b.SetBytes(int64(len(data)))

					for i := 0; i < b.N; i++ {
						compressed, err := codec.Compress(data)
						if err != nil {
							b.Fatal(err)
						}
						_, err = codec.Decompress(compressed)
						if err != nil {
							b.Fatal(err)
						}
					}
				})
			}
		})
	}
}

// BenchmarkAllCodecs_Parallel models concurrent image readers sharing a
// codec instance across segments.
func BenchmarkAllCodecs_Parallel(b *testing.B) {
	const size = 65536
	data := benchPayload(size, "image_block")

	for codecName, codec := range getAllCodecs() {
		b.Run(codecName+"_Compress", func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					_, err := codec.Compress(data)
					if err != nil {
						b.Fatal(err)
					}
				}
			})
		})

		b.Run(codecName+"_Decompress", func(b *testing.B) {
			compressed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					_, err := codec.Decompress(compressed)
					if err != nil {
						b.Fatal(err)
					}
				}
			})
		})
	}
}

// BenchmarkZstdDecompress_Sequential models draining a masked image
// segment block by block through the pooled zstd decoder, the access
// pattern the encoder/decoder pools exist for.
func BenchmarkZstdDecompress_Sequential(b *testing.B) {
	const blockSize = 32 * 32 * 8 // 32x32 block, 8 bytes per complex pixel
	const blocksPerSegment = 150

	data := benchPayload(blockSize, "image_block")
	compressor := NewZstdCompressor()
	compressed, _ := compressor.Compress(data)

	b.Run(fmt.Sprintf("%d_blocks", blocksPerSegment), func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(compressed)))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < blocksPerSegment; j++ {
				_, _ = compressor.Decompress(compressed)
			}
		}
	})
}

// BenchmarkZstdDecompress_Parallel exercises the decoder pool under
// concurrent segment reads.
func BenchmarkZstdDecompress_Parallel(b *testing.B) {
	data := benchPayload(8*1024, "image_block")
	compressor := NewZstdCompressor()
	compressed, _ := compressor.Compress(data)

	b.ReportAllocs()
	b.SetBytes(int64(len(compressed)))
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = compressor.Decompress(compressed)
		}
	})
}

// BenchmarkLZ4Compress_Parallel exercises the lz4 compressor pool under
// concurrent quicklook generation.
func BenchmarkLZ4Compress_Parallel(b *testing.B) {
	data := benchPayload(8*1024, "image_block")
	compressor := NewLZ4Compressor()

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = compressor.Compress(data)
		}
	})
}

// BenchmarkWidebandPassThrough compares the codec choices for a CPHD
// wideband section copy: NoOp (store raw) against each real codec on
// incompressible sample data.
func BenchmarkWidebandPassThrough(b *testing.B) {
	const size = 512 * 1024
	data := benchPayload(size, "wideband")

	for codecName, codec := range getAllCodecs() {
		b.Run(codecName, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(size))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				compressed, err := codec.Compress(data)
				if err != nil {
					b.Fatal(err)
				}

				if !bytes.Equal(data, compressed) {
					// Real codecs transform the bytes; decompress to
					// complete the pass-through cycle.
					_, err = codec.Decompress(compressed)
					if err != nil {
						b.Fatal(err)
					}
				}
			}
		})
	}
}
