package imageio

import (
	"fmt"
	"io"

	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/iostream"
	"github.com/nitro-go/nitro/record"
)

// IsSizeMax and ILOCMax are the NITF segment-size caps: ~10GB total
// bytes per image segment, and a 99,999-row ILOC offset field.
const (
	IsSizeMax = 9_999_999_998
	ILOCMax   = 99_999
)

// StreamChunkSize is the chunk size stream-copy write handlers move
// bytes in.
const StreamChunkSize = 8 * 1024

// WriteHandler streams a segment's bytes to output starting at the
// writer's current seek position.
type WriteHandler interface {
	Write(output iostream.Channel) (int64, error)
}

// StreamCopyHandler copies byteCount bytes from an input channel starting
// at offset — the standard handler for re-emitting an already-compressed
// or already-packed segment verbatim.
type StreamCopyHandler struct {
	Input     iostream.Channel
	Offset    int64
	ByteCount int64
}

var _ WriteHandler = (*StreamCopyHandler)(nil)

// Write implements WriteHandler by copying h.ByteCount bytes from h.Input
// starting at h.Offset, in StreamChunkSize chunks.
func (h *StreamCopyHandler) Write(output iostream.Channel) (int64, error) {
	if _, err := h.Input.Seek(h.Offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("imageio: stream copy seeking input: %w", errs.ErrSeeking)
	}

	remaining := h.ByteCount
	buf := make([]byte, StreamChunkSize)
	var written int64

	for remaining > 0 {
		chunk := int64(len(buf))
		if remaining < chunk {
			chunk = remaining
		}

		n, err := io.ReadFull(h.Input, buf[:chunk])
		if err != nil {
			return written, fmt.Errorf("imageio: stream copy reading input: %w", errs.ErrReadingFromFile)
		}

		if _, err := output.Write(buf[:n]); err != nil {
			return written, fmt.Errorf("imageio: stream copy writing output: %w", errs.ErrWritingToFile)
		}

		written += int64(n)
		remaining -= int64(n)
	}

	return written, nil
}

// BandSource is a length-sized read-only pixel producer indexed by byte
// offset, the source a PixelSourceHandler packs into IMODE layout.
type BandSource interface {
	Len() int64
	ReadAt(buf []byte, offset int64) (int, error)
}

// PixelSourceHandler reads band-plane pixels from per-band BandSources and
// packs them into the image segment's declared IMODE, optionally
// compressing each block via plugin.
type PixelSourceHandler struct {
	Bands    []BandSource
	Blocking BlockingInfo
	Plugin   BlockCompressor
}

var _ WriteHandler = (*PixelSourceHandler)(nil)

// Write packs every block in scan order and streams it to output,
// dispatching each block through h.Plugin when set. For IMODE S
// (band-sequential) blocking, h.Bands must hold one BandSource per band in
// band order, each producing that band's plane linearly; for any other
// IMODE, h.Bands must hold a single BandSource already interleaved to the
// subheader's declared mode.
func (h *PixelSourceHandler) Write(output iostream.Channel) (int64, error) {
	blockSize := h.Blocking.BlockSizeBytes()
	planesPerBand := h.Blocking.BlocksPerRow * h.Blocking.BlocksPerCol
	var written int64

	numBlocks := h.Blocking.NumBlocks()
	for idx := 0; idx < numBlocks; idx++ {
		block := make([]byte, blockSize)

		band := 0
		planeOffset := idx
		if h.Blocking.Mode == record.ModeBandSequential && planesPerBand > 0 {
			band = idx / planesPerBand
			planeOffset = idx % planesPerBand
		}

		if band < len(h.Bands) {
			src := h.Bands[band]
			if _, err := src.ReadAt(block, int64(planeOffset)*blockSize); err != nil && err != io.EOF {
				return written, fmt.Errorf("imageio: reading pixel source block %d: %w", idx, errs.ErrReadingFromFile)
			}
		}

		if h.Plugin != nil {
			if err := h.Plugin.WriteBlock(idx, block); err != nil {
				return written, err
			}

			written += blockSize

			continue
		}

		if _, err := output.Write(block); err != nil {
			return written, fmt.Errorf("imageio: writing block %d: %w", idx, errs.ErrWritingToFile)
		}

		written += blockSize
	}

	return written, nil
}

// SegmentPlan is one output segment's row range and stacking fields, the
// result of partitioning a logical image for the Writer.
type SegmentPlan struct {
	StartRow     int
	NumRows      int
	DisplayLevel int
	AttachLevel  int
	LocRow       int
	LocCol       int
}

// PlanSegments partitions a logical image of totalRows rows, each
// bytesPerRow bytes, into one or more SegmentPlans honoring IsSizeMax and
// ILOCMax. startDisplayLevel sets
// the first segment's IDLVL; subsequent segments stack via IALVL/ILOC.
func PlanSegments(totalRows int, bytesPerRow int64, startDisplayLevel int) ([]SegmentPlan, error) {
	if bytesPerRow <= 0 {
		return nil, fmt.Errorf("imageio: bytesPerRow must be positive: %w", errs.ErrInvalidObject)
	}

	rowsPerSegment := int(IsSizeMax / bytesPerRow)
	if rowsPerSegment > ILOCMax {
		rowsPerSegment = ILOCMax
	}

	if rowsPerSegment <= 0 {
		return nil, fmt.Errorf("imageio: a single row (%d bytes) exceeds IS_SIZE_MAX: %w", bytesPerRow, errs.ErrSegmentTooLarge)
	}

	var plans []SegmentPlan

	row := 0
	level := startDisplayLevel

	for row < totalRows {
		n := rowsPerSegment
		if row+n > totalRows {
			n = totalRows - row
		}

		plan := SegmentPlan{StartRow: row, NumRows: n, DisplayLevel: level}

		if len(plans) > 0 {
			prev := plans[len(plans)-1]
			plan.AttachLevel = prev.DisplayLevel
			plan.LocRow = prev.NumRows
			plan.LocCol = 0
		}

		plans = append(plans, plan)
		row += n
		level++
	}

	return plans, nil
}

// InterpolateCorners linearly interpolates the full image's four corner
// coordinates along the row axis for a segment spanning [startRow,
// startRow+numRows) of totalRows, so stacked segments keep a
// geographically consistent footprint. corners is ordered
// {UL, UR, LR, LL}, each a (lat, lon) pair.
func InterpolateCorners(corners [4][2]float64, totalRows, startRow, numRows int) [4][2]float64 {
	if totalRows <= 0 {
		return corners
	}

	ul, ur, lr, ll := corners[0], corners[1], corners[2], corners[3]

	topFrac := float64(startRow) / float64(totalRows)
	botFrac := float64(startRow+numRows) / float64(totalRows)

	lerp := func(a, b [2]float64, t float64) [2]float64 {
		return [2]float64{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
	}

	return [4][2]float64{
		lerp(ul, ll, topFrac),
		lerp(ur, lr, topFrac),
		lerp(ur, lr, botFrac),
		lerp(ul, ll, botFrac),
	}
}
