// Package compress implements the general-purpose byte codecs behind
// NITRO's compression plugin interface. Image-segment IC
// codes that need a real image codec (JPEG, JPEG 2000, VQ) dispatch
// through the plugin registry in iostream/tre instead of this package;
// this package supplies the codecs that have no NITF-native image
// meaning of their own — the CPHD wideband pass-through compressor, the
// TRE_OVERFLOW DES compressor, and general test/CLI tooling.
//
// # Supported codecs
//
//   - CodeNone: pass-through, the Go rendition of IC="NC"
//   - CodeZstd: best ratio, used for CPHD wideband and cold-storage DES
//   - CodeS2: fast, used as the default TRE_OVERFLOW DES compressor
//   - CodeLZ4: fastest decompression, used for SIDD quicklook generation
//
// # Architecture
//
//	type Compressor interface { Compress(data []byte) ([]byte, error) }
//	type Decompressor interface { Decompress(data []byte) ([]byte, error) }
//	type Codec interface { Compressor; Decompressor }
//
// CreateCodec and GetCodec construct or retrieve a Codec for a Code.
package compress
