package imageio

import (
	"fmt"

	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/record"
)

// SubWindow describes the rectangular region and band selection a Reader
// should fill.
// BandList need not be contiguous or sorted; the Reader honors the given
// order when de-interleaving into the caller's buffers.
type SubWindow struct {
	StartRow int
	StartCol int
	NumRows  int
	NumCols  int
	BandList []int

	// Downsampler, when non-nil, reduces the filled region by its skip
	// factors; the caller's buffers are then (NumRows/RowSkip) x
	// (NumCols/ColSkip) per band.
	Downsampler *Downsampler
}

// Downsampler decimates a subwindow read by integer skip factors,
// keeping the top-left pixel of each RowSkip x ColSkip cell.
type Downsampler struct {
	RowSkip int
	ColSkip int
}

// OutputDims returns the downsampled (rows, cols) for a subwindow of the
// given extent.
func (d *Downsampler) OutputDims(numRows, numCols int) (int, int) {
	return numRows / d.RowSkip, numCols / d.ColSkip
}

// Validate checks the subwindow against the image's blocking geometry:
// non-negative origin, positive extents, and band indices within range.
func (w SubWindow) Validate(info BlockingInfo) error {
	if w.NumRows <= 0 || w.NumCols <= 0 {
		return fmt.Errorf("imageio: subwindow has non-positive extent (%d,%d): %w", w.NumRows, w.NumCols, errs.ErrInvalidObject)
	}

	if w.StartRow < 0 || w.StartCol < 0 {
		return fmt.Errorf("imageio: subwindow has negative origin (%d,%d): %w", w.StartRow, w.StartCol, errs.ErrInvalidObject)
	}

	if w.StartRow+w.NumRows > info.NumRows || w.StartCol+w.NumCols > info.NumCols {
		return fmt.Errorf("imageio: subwindow (%d,%d)+(%d,%d) exceeds image extent (%d,%d): %w",
			w.StartRow, w.StartCol, w.NumRows, w.NumCols, info.NumRows, info.NumCols, errs.ErrInvalidObject)
	}

	for _, b := range w.BandList {
		if b < 0 || b >= info.NumBands {
			return fmt.Errorf("imageio: band index %d out of range [0,%d): %w", b, info.NumBands, errs.ErrInvalidObject)
		}
	}

	if d := w.Downsampler; d != nil {
		if d.RowSkip <= 0 || d.ColSkip <= 0 {
			return fmt.Errorf("imageio: downsampler skips (%d,%d) must be positive: %w", d.RowSkip, d.ColSkip, errs.ErrDownsampleAlign)
		}

		if w.NumRows%d.RowSkip != 0 || w.NumCols%d.ColSkip != 0 {
			return fmt.Errorf("imageio: subwindow extent (%d,%d) is not a multiple of downsampler skips (%d,%d): %w",
				w.NumRows, w.NumCols, d.RowSkip, d.ColSkip, errs.ErrDownsampleAlign)
		}
	}

	return nil
}

// FullImage returns a SubWindow covering the entire image with every band
// in natural order.
func FullImage(info BlockingInfo) SubWindow {
	bands := make([]int, info.NumBands)
	for i := range bands {
		bands[i] = i
	}

	return SubWindow{NumRows: info.NumRows, NumCols: info.NumCols, BandList: bands}
}

// blockCoord is a block's (row, col) position in the block grid.
type blockCoord struct {
	row, col int
}

// intersectingBlocks returns, in scan order (row-major), every block
// coordinate that intersects w.
func intersectingBlocks(w SubWindow, info BlockingInfo) []blockCoord {
	firstBlockRow := w.StartRow / info.PixelsPerBlockV
	lastBlockRow := (w.StartRow + w.NumRows - 1) / info.PixelsPerBlockV
	firstBlockCol := w.StartCol / info.PixelsPerBlockH
	lastBlockCol := (w.StartCol + w.NumCols - 1) / info.PixelsPerBlockH

	var blocks []blockCoord
	for r := firstBlockRow; r <= lastBlockRow; r++ {
		for c := firstBlockCol; c <= lastBlockCol; c++ {
			blocks = append(blocks, blockCoord{row: r, col: c})
		}
	}

	return blocks
}

// blockIndex converts a block's (row, col) grid position, plus a band for
// IMODE S layouts, to its linear index into the block-mask table / raw
// block sequence: blocksPerRow*blocksPerCol*numBands entries for mode
// S, else blocksPerRow*blocksPerCol.
func blockIndex(bc blockCoord, band int, info BlockingInfo) int {
	planeIndex := bc.row*info.BlocksPerRow + bc.col
	if info.Mode == record.ModeBandSequential {
		return band*info.BlocksPerRow*info.BlocksPerCol + planeIndex
	}

	return planeIndex
}
