package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/tre"
)

func TestImageSubheaderValidateModeAndMask(t *testing.T) {
	sh := NewImageSubheader()
	engine := endian.GetBigEndianEngine()

	require.NoError(t, sh.NBPR.SetUint(engine, 2))
	require.NoError(t, sh.NBPC.SetUint(engine, 3))
	require.NoError(t, sh.NumBands.SetUint(engine, 4))

	require.NoError(t, sh.Mode.SetString("B"))
	require.NoError(t, sh.ValidateModeAndMask(6))
	require.ErrorIs(t, sh.ValidateModeAndMask(5), errs.ErrInvalidObject)

	require.NoError(t, sh.Mode.SetString("S"))
	require.NoError(t, sh.ValidateModeAndMask(24))
	require.ErrorIs(t, sh.ValidateModeAndMask(6), errs.ErrInvalidObject)
}

func TestImageSubheaderCloneIndependence(t *testing.T) {
	sh := NewImageSubheader()
	_ = sh.ImageID.SetString("IMG001")

	clone, err := sh.Clone(nil)
	require.NoError(t, err)

	_ = clone.ImageID.SetString("CHANGED")

	orig, _ := sh.ImageID.AsString()
	assert.Equal(t, "IMG001", orig)
}

func TestImageSubheaderBytesParseRoundTrip(t *testing.T) {
	registry := tre.NewRegistry(nil)

	sh := NewImageSubheader()
	require.NoError(t, sh.ImageID.SetString("IMG001"))
	require.NoError(t, sh.NRows.SetUint(endian.GetBigEndianEngine(), 512))
	require.NoError(t, sh.NCols.SetUint(endian.GetBigEndianEngine(), 512))

	out, err := sh.Bytes(registry)
	require.NoError(t, err)

	parsed, consumed, err := ParseImageSubheader(out, registry)
	require.NoError(t, err)
	assert.Equal(t, len(out), consumed)

	id, err := parsed.ImageID.AsString()
	require.NoError(t, err)
	assert.Equal(t, "IMG001", id)

	rows, err := parsed.NRows.AsUint(endian.GetBigEndianEngine())
	require.NoError(t, err)
	assert.Equal(t, uint64(512), rows)
}
