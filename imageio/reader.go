package imageio

import (
	"fmt"
	"io"

	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/iostream"
	"github.com/nitro-go/nitro/record"
)

// MaskAbsentSentinel marks a block-mask-table entry as absent: the block
// was never written and reads of it synthesize pad pixels.
const MaskAbsentSentinel = 0xFFFFFFFF

// Reader implements the NITF image segment read path.
// Construction is cheap: it only computes blocking info from the
// subheader; no data is read until Read or ReadBlock is called.
type Reader struct {
	ch        iostream.Channel
	subheader *record.ImageSubheader
	info      BlockingInfo
	dataOffset int64
	blockMask []uint32
	plugin    BlockDecompressor
}

// NewReader constructs a Reader over ch for the given subheader, whose
// pixel data begins at dataOffset. blockMask is nil when the subheader
// declares no mask table. plugin is the compression plugin dispatched to
// when the subheader names a compression scheme; pass nil when the
// subheader's IC is "NC" (uncompressed).
func NewReader(ch iostream.Channel, subheader *record.ImageSubheader, dataOffset int64, blockMask []uint32, plugin BlockDecompressor) (*Reader, error) {
	info, err := ComputeBlockingInfo(subheader)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		ch:         ch,
		subheader:  subheader,
		info:       info,
		dataOffset: dataOffset,
		blockMask:  blockMask,
		plugin:     plugin,
	}

	if plugin != nil {
		if err := plugin.Start(ch, dataOffset, 0, info, blockMask); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// BlockingInfo returns the Reader's derived blocking geometry.
func (r *Reader) BlockingInfo() BlockingInfo { return r.info }

// Read fills buffers (one row-major plane per subwindow.BandList entry, in
// that order) with the requested region. isPadded reports whether any synthesized pad block or
// edge-pad pixels were used to satisfy the request.
func (r *Reader) Read(w SubWindow, buffers [][]byte) (isPadded bool, err error) {
	if err := w.Validate(r.info); err != nil {
		return false, err
	}

	if len(buffers) != len(w.BandList) {
		return false, fmt.Errorf("imageio: Read needs %d buffers for the requested bands, got %d: %w", len(w.BandList), len(buffers), errs.ErrInvalidObject)
	}

	bytesPerPixel := (r.info.BitsPerPixelBand + 7) / 8

	for _, bc := range intersectingBlocks(w, r.info) {
		for bi, band := range w.BandList {
			idx := blockIndex(bc, band, r.info)

			block, padded, err := r.readBlock(idx)
			if err != nil {
				return false, err
			}

			if padded {
				isPadded = true
			}

			if r.deinterleaveBlockInto(buffers[bi], bc, block, w, band, bytesPerPixel) {
				isPadded = true
			}
		}
	}

	return isPadded, nil
}

// ReadBlock returns the raw (possibly still-compressed) bytes of block
// index without de-interleaving, for callers implementing their own codec
// or inspecting stored bytes directly.
// A block the mask table marks absent yields nil.
func (r *Reader) ReadBlock(index int) ([]byte, error) {
	return readRawBlock(r.ch, r.dataOffset, r.info, r.blockMask, index)
}

func (r *Reader) readBlock(index int) (data []byte, padded bool, err error) {
	if r.blockMask != nil {
		if index >= len(r.blockMask) {
			return nil, false, fmt.Errorf("imageio: block index %d out of range [0,%d): %w", index, len(r.blockMask), errs.ErrInvalidObject)
		}

		if r.blockMask[index] == MaskAbsentSentinel {
			return r.synthesizePadBlock(), true, nil
		}
	}

	if r.plugin != nil {
		block, err := r.plugin.ReadBlock(index)
		return block, false, err
	}

	raw, err := readRawBlock(r.ch, r.dataOffset, r.info, r.blockMask, index)

	return raw, false, err
}

// readRawBlock performs the plain (no compression plugin) raw block
// read: offset resolution via the mask table when present, else a flat
// block_index*block_size_bytes stride.
func readRawBlock(ch iostream.Channel, dataOffset int64, info BlockingInfo, blockMask []uint32, index int) ([]byte, error) {
	blockSize := info.BlockSizeBytes()

	var offset int64
	if blockMask != nil {
		if index >= len(blockMask) {
			return nil, fmt.Errorf("imageio: block index %d out of range [0,%d): %w", index, len(blockMask), errs.ErrInvalidObject)
		}

		if blockMask[index] == MaskAbsentSentinel {
			return nil, nil
		}

		offset = dataOffset + int64(blockMask[index])
	} else {
		offset = dataOffset + int64(index)*blockSize
	}

	if _, err := ch.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("imageio: seeking to block %d: %w", index, errs.ErrSeeking)
	}

	buf := make([]byte, blockSize)
	if _, err := io.ReadFull(ch, buf); err != nil {
		return nil, fmt.Errorf("imageio: reading block %d: %w", index, errs.ErrReadingFromFile)
	}

	return buf, nil
}

func (r *Reader) synthesizePadBlock() []byte {
	size := r.info.BlockSizeBytes()
	buf := make([]byte, size)

	for i := range buf {
		buf[i] = r.subheader.PadValue
	}

	return buf
}

// deinterleaveBlockInto copies one block's pixels for one band into dst at
// the positions the subwindow's (row, col) selection implies, clipping to
// the subwindow bounds at image edges. The source offset of a pixel
// within the block depends on the IMODE: band-sequential blocks hold a
// single band, band-interleaved-by-block blocks hold per-band planes,
// pixel-interleaved blocks interleave bands per pixel, and
// row-interleaved blocks interleave bands per row.
//
// touchedEdgePad reports whether the block extends past the image's
// declared row/col extent — NROWS/NCOLS need not be block multiples, so
// edge blocks carry pad rows/columns, and a read that consumed one must
// surface that through Read's isPadded return even though the pad
// pixels themselves never land in dst.
func (r *Reader) deinterleaveBlockInto(dst []byte, bc blockCoord, block []byte, w SubWindow, band, bytesPerPixel int) (touchedEdgePad bool) {
	if block == nil {
		return false
	}

	blockRowStart := bc.row * r.info.PixelsPerBlockV
	blockColStart := bc.col * r.info.PixelsPerBlockH

	rowSkip, colSkip := 1, 1
	outCols := w.NumCols

	if d := w.Downsampler; d != nil {
		rowSkip, colSkip = d.RowSkip, d.ColSkip
		_, outCols = d.OutputDims(w.NumRows, w.NumCols)
	}

	planePixels := r.info.PixelsPerBlockH * r.info.PixelsPerBlockV

	for localRow := 0; localRow < r.info.PixelsPerBlockV; localRow++ {
		imgRow := blockRowStart + localRow
		if imgRow >= r.info.NumRows {
			touchedEdgePad = true

			continue
		}

		if imgRow < w.StartRow || imgRow >= w.StartRow+w.NumRows {
			continue
		}

		if (imgRow-w.StartRow)%rowSkip != 0 {
			continue
		}

		for localCol := 0; localCol < r.info.PixelsPerBlockH; localCol++ {
			imgCol := blockColStart + localCol
			if imgCol >= r.info.NumCols {
				touchedEdgePad = true

				continue
			}

			if imgCol < w.StartCol || imgCol >= w.StartCol+w.NumCols {
				continue
			}

			if (imgCol-w.StartCol)%colSkip != 0 {
				continue
			}

			pixelIndex := localRow*r.info.PixelsPerBlockH + localCol

			var srcOff int
			switch r.info.Mode {
			case record.ModePixelInterleaved:
				srcOff = (pixelIndex*r.info.NumBands + band) * bytesPerPixel
			case record.ModeRowInterleaved:
				srcOff = ((localRow*r.info.NumBands+band)*r.info.PixelsPerBlockH + localCol) * bytesPerPixel
			case record.ModeBandSequential:
				srcOff = pixelIndex * bytesPerPixel
			default: // ModeBlockInterleaved: one plane per band within the block
				srcOff = (band*planePixels + pixelIndex) * bytesPerPixel
			}

			dstRow := (imgRow - w.StartRow) / rowSkip
			dstCol := (imgCol - w.StartCol) / colSkip
			dstOff := (dstRow*outCols + dstCol) * bytesPerPixel

			if srcOff+bytesPerPixel > len(block) || dstOff+bytesPerPixel > len(dst) {
				continue
			}

			copy(dst[dstOff:dstOff+bytesPerPixel], block[srcOff:srcOff+bytesPerPixel])
		}
	}

	return touchedEdgePad
}

