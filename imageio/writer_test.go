package imageio

import (
	"testing"

	"github.com/nitro-go/nitro/iostream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSegmentsSingleSegment(t *testing.T) {
	plans, err := PlanSegments(1000, 1024, 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 0, plans[0].StartRow)
	assert.Equal(t, 1000, plans[0].NumRows)
	assert.Equal(t, 0, plans[0].DisplayLevel)
}

func TestPlanSegmentsSplitsOnILOCMax(t *testing.T) {
	plans, err := PlanSegments(ILOCMax+10, 1, 1)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, ILOCMax, plans[0].NumRows)
	assert.Equal(t, 10, plans[1].NumRows)
	assert.Equal(t, ILOCMax, plans[1].StartRow)
	assert.Equal(t, plans[0].DisplayLevel, plans[1].AttachLevel)
	assert.Equal(t, plans[0].NumRows, plans[1].LocRow)
}

func TestPlanSegmentsRejectsOversizedRow(t *testing.T) {
	_, err := PlanSegments(10, IsSizeMax+1, 0)
	assert.Error(t, err)
}

func TestPlanSegmentsRejectsNonPositiveRowWidth(t *testing.T) {
	_, err := PlanSegments(10, 0, 0)
	assert.Error(t, err)
}

func TestInterpolateCornersMidSegment(t *testing.T) {
	corners := [4][2]float64{
		{10, 0}, {10, 10},
		{0, 10}, {0, 0},
	}

	got := InterpolateCorners(corners, 100, 50, 50)

	assert.InDelta(t, 5, got[0][0], 1e-9)
	assert.InDelta(t, 0, got[3][0], 1e-9)
}

func TestStreamCopyHandlerCopiesExactRange(t *testing.T) {
	src := iostream.NewMemoryChannel([]byte("0123456789abcdef"))
	dst := iostream.NewMemoryChannel(nil)

	h := &StreamCopyHandler{Input: src, Offset: 4, ByteCount: 6}

	n, err := h.Write(dst)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, []byte("456789"), dst.Bytes())
}

type constBandSource struct {
	value byte
	size  int64
}

func (c constBandSource) Len() int64 { return c.size }

func (c constBandSource) ReadAt(buf []byte, _ int64) (int, error) {
	for i := range buf {
		buf[i] = c.value
	}

	return len(buf), nil
}

func TestPixelSourceHandlerUnblockedSingleBand(t *testing.T) {
	info := BlockingInfo{
		NumRows: 32, NumCols: 32, NumBands: 1,
		BitsPerPixelBand: 8,
		BlocksPerRow:     1, BlocksPerCol: 1,
		PixelsPerBlockH: 32, PixelsPerBlockV: 32,
	}

	dst := iostream.NewMemoryChannel(nil)
	h := &PixelSourceHandler{
		Bands:    []BandSource{constBandSource{value: 0xAB, size: info.BlockSizeBytes()}},
		Blocking: info,
	}

	n, err := h.Write(dst)
	require.NoError(t, err)
	assert.Equal(t, info.BlockSizeBytes(), n)

	for _, b := range dst.Bytes() {
		assert.Equal(t, byte(0xAB), b)
	}
}
