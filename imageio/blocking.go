package imageio

import (
	"fmt"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/record"
)

// BlockingInfo is the blocking geometry a Reader/Writer derives from an
// ImageSubheader: how many blocks make up the image, and how big each
// block is, uncompressed.
type BlockingInfo struct {
	NumRows           int
	NumCols           int
	NumBands          int
	BitsPerPixelBand  int
	Mode              record.ImageMode
	BlocksPerRow      int
	BlocksPerCol      int
	PixelsPerBlockH   int
	PixelsPerBlockV   int
}

// BlockSizeBytes returns the uncompressed byte size of one block (one
// band's worth for IMODE S, all bands for IMODE P/B/R, as BandsPerBlock
// reports).
func (b BlockingInfo) BlockSizeBytes() int64 {
	pixels := int64(b.PixelsPerBlockH) * int64(b.PixelsPerBlockV)
	bytesPerPixel := int64(b.BitsPerPixelBand+7) / 8

	return pixels * bytesPerPixel * int64(b.BandsPerBlock())
}

// BandsPerBlock returns how many bands co-reside in a single block: all of
// them for any mode but S (band-sequential), where each band owns its own
// independent block plane.
func (b BlockingInfo) BandsPerBlock() int {
	if b.Mode == record.ModeBandSequential {
		return 1
	}

	return b.NumBands
}

// NumBlocks returns the total block count: BlocksPerRow * BlocksPerCol,
// times NumBands again for IMODE S, matching the mask-table length the
// reader/writer index against.
func (b BlockingInfo) NumBlocks() int {
	n := b.BlocksPerRow * b.BlocksPerCol
	if b.Mode == record.ModeBandSequential {
		n *= b.NumBands
	}

	return n
}

// ComputeBlockingInfo derives a BlockingInfo from an image subheader's
// already-parsed geometry fields.
func ComputeBlockingInfo(sh *record.ImageSubheader) (BlockingInfo, error) {
	engine := endian.GetBigEndianEngine()

	nrows, err := sh.NRows.AsUint(engine)
	if err != nil {
		return BlockingInfo{}, err
	}

	ncols, err := sh.NCols.AsUint(engine)
	if err != nil {
		return BlockingInfo{}, err
	}

	nbands, err := sh.NumBands.AsUint(engine)
	if err != nil {
		return BlockingInfo{}, err
	}

	nbpp, err := sh.NBPP.AsUint(engine)
	if err != nil {
		return BlockingInfo{}, err
	}

	mode, err := sh.Mode.AsString()
	if err != nil {
		return BlockingInfo{}, err
	}

	nbpr, err := sh.NBPR.AsUint(engine)
	if err != nil {
		return BlockingInfo{}, err
	}

	nbpc, err := sh.NBPC.AsUint(engine)
	if err != nil {
		return BlockingInfo{}, err
	}

	nppbh, err := sh.NPPBH.AsUint(engine)
	if err != nil {
		return BlockingInfo{}, err
	}

	nppbv, err := sh.NPPBV.AsUint(engine)
	if err != nil {
		return BlockingInfo{}, err
	}

	if len(mode) == 0 {
		return BlockingInfo{}, fmt.Errorf("imageio: empty IMODE: %w", errs.ErrInvalidObject)
	}

	return BlockingInfo{
		NumRows:          int(nrows),
		NumCols:          int(ncols),
		NumBands:         int(nbands),
		BitsPerPixelBand: int(nbpp),
		Mode:             record.ImageMode(mode[0]),
		BlocksPerRow:     int(nbpr),
		BlocksPerCol:     int(nbpc),
		PixelsPerBlockH:  int(nppbh),
		PixelsPerBlockV:  int(nppbv),
	}, nil
}
