package imageio

import (
	"testing"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unblockedSubheader(t *testing.T, rows, cols, bands, bpp int) *record.ImageSubheader {
	t.Helper()

	sh := record.NewImageSubheader()
	engine := endian.GetBigEndianEngine()

	require.NoError(t, sh.NRows.SetUint(engine, uint64(rows)))
	require.NoError(t, sh.NCols.SetUint(engine, uint64(cols)))
	require.NoError(t, sh.NumBands.SetUint(engine, uint64(bands)))
	require.NoError(t, sh.NBPP.SetUint(engine, uint64(bpp)))
	require.NoError(t, sh.NBPR.SetUint(engine, uint64((cols+31)/32)))
	require.NoError(t, sh.NBPC.SetUint(engine, uint64((rows+31)/32)))
	require.NoError(t, sh.NPPBH.SetUint(engine, 32))
	require.NoError(t, sh.NPPBV.SetUint(engine, 32))

	return sh
}

func TestComputeBlockingInfoUnblocked(t *testing.T) {
	sh := unblockedSubheader(t, 64, 64, 3, 8)

	info, err := ComputeBlockingInfo(sh)
	require.NoError(t, err)

	assert.Equal(t, 64, info.NumRows)
	assert.Equal(t, 64, info.NumCols)
	assert.Equal(t, 3, info.NumBands)
	assert.Equal(t, 2, info.BlocksPerRow)
	assert.Equal(t, 2, info.BlocksPerCol)
	assert.Equal(t, record.ModeBlockInterleaved, info.Mode)
	assert.Equal(t, 4, info.NumBlocks())
	assert.Equal(t, 3, info.BandsPerBlock())
	assert.Equal(t, int64(32*32*3), info.BlockSizeBytes())
}

func TestComputeBlockingInfoBandSequential(t *testing.T) {
	sh := unblockedSubheader(t, 64, 64, 3, 8)
	require.NoError(t, sh.Mode.SetString("S"))

	info, err := ComputeBlockingInfo(sh)
	require.NoError(t, err)

	assert.Equal(t, 1, info.BandsPerBlock())
	assert.Equal(t, 4*3, info.NumBlocks())
	assert.Equal(t, int64(32*32), info.BlockSizeBytes())
}

func TestComputeBlockingInfoEmptyMode(t *testing.T) {
	sh := unblockedSubheader(t, 64, 64, 1, 8)
	require.NoError(t, sh.Mode.SetRaw([]byte{' '}))

	_, err := ComputeBlockingInfo(sh)
	assert.Error(t, err)
}
