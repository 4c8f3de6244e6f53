package imageio

import (
	"github.com/nitro-go/nitro/compress"
	"github.com/nitro-go/nitro/iostream"
)

// BlockDecompressor is the block-decode half of a compression plugin
// instance. The state is whatever the concrete implementation closes
// over; Start is called once before any ReadBlock call.
type BlockDecompressor interface {
	Start(ch iostream.Channel, offset int64, fileLength int64, blocking BlockingInfo, blockMask []uint32) error
	ReadBlock(n int) ([]byte, error)
	// FreeBlock releases resources associated with a block previously
	// returned by ReadBlock. Implementations backed by a plain []byte may
	// no-op; it exists so pooled-buffer implementations have a release
	// point.
	FreeBlock(block []byte)
	Destruct() error
}

// BlockCompressor is the writer-side counterpart of BlockDecompressor.
type BlockCompressor interface {
	StartWrite(ch iostream.Channel, offset int64, blocking BlockingInfo) error
	WriteBlock(index int, data []byte) error
	Destruct() error
}

// CodecBlockPlugin adapts a compress.Codec (a stateless whole-buffer
// codec) into the per-block BlockDecompressor/BlockCompressor shape for
// the codecs compress.Code names (CodeZstd/CodeS2/CodeLZ4/CodeNone). The
// package keeps no IC-to-plugin table: a caller constructs one with
// NewCodecBlockPlugin and passes it in. No plugin for JPEG, JPEG 2000 or
// VQ is provided.
type CodecBlockPlugin struct {
	codec     compress.Codec
	ch        iostream.Channel
	offset    int64
	blocking  BlockingInfo
	blockMask []uint32
}

var (
	_ BlockDecompressor = (*CodecBlockPlugin)(nil)
	_ BlockCompressor   = (*CodecBlockPlugin)(nil)
)

// NewCodecBlockPlugin wraps codec as a block plugin.
func NewCodecBlockPlugin(codec compress.Codec) *CodecBlockPlugin {
	return &CodecBlockPlugin{codec: codec}
}

// Start implements BlockDecompressor.
func (p *CodecBlockPlugin) Start(ch iostream.Channel, offset int64, _ int64, blocking BlockingInfo, blockMask []uint32) error {
	p.ch = ch
	p.offset = offset
	p.blocking = blocking
	p.blockMask = blockMask

	return nil
}

// ReadBlock reads and decompresses block index n, honoring the mask table
// sentinel: raw-reads the stored compressed
// bytes, then decompresses via the wrapped codec.
func (p *CodecBlockPlugin) ReadBlock(n int) ([]byte, error) {
	raw, err := readRawBlock(p.ch, p.offset, p.blocking, p.blockMask, n)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, nil
	}

	return p.codec.Decompress(raw)
}

// FreeBlock is a no-op for codec-backed blocks; the byte slice is owned by
// the caller once returned.
func (p *CodecBlockPlugin) FreeBlock(_ []byte) {}

// Destruct is a no-op; CodecBlockPlugin holds no OS resources of its own.
func (p *CodecBlockPlugin) Destruct() error { return nil }

// StartWrite implements BlockCompressor.
func (p *CodecBlockPlugin) StartWrite(ch iostream.Channel, offset int64, blocking BlockingInfo) error {
	p.ch = ch
	p.offset = offset
	p.blocking = blocking

	return nil
}

// WriteBlock compresses data and writes it at the block's computed offset.
func (p *CodecBlockPlugin) WriteBlock(index int, data []byte) error {
	compressed, err := p.codec.Compress(data)
	if err != nil {
		return err
	}

	blockSize := p.blocking.BlockSizeBytes()
	if _, err := p.ch.Seek(p.offset+int64(index)*blockSize, 0); err != nil {
		return err
	}

	_, err = p.ch.Write(compressed)

	return err
}
