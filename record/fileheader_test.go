package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitro-go/nitro/endian"
)

func TestNewFileHeaderDefaults(t *testing.T) {
	fh := NewFileHeader()

	profile, err := fh.FileProfile.AsString()
	require.NoError(t, err)
	assert.Equal(t, DefaultFileProfile, profile)

	version, err := fh.FileVersion.AsString()
	require.NoError(t, err)
	assert.Equal(t, DefaultFileVersion, version)

	for _, kind := range []SegmentKind{Image, Graphic, Text, DES, RES} {
		assert.Equal(t, 0, fh.Count(kind))
	}
}

func TestFileHeaderAppendAndSetLengths(t *testing.T) {
	fh := NewFileHeader()

	require.NoError(t, fh.appendSegment(Image))
	require.NoError(t, fh.SetSegmentLengths(Image, 0, 123, 456))

	subLen, dataLen, err := fh.SegmentLengths(Image, 0)
	require.NoError(t, err)
	assert.Equal(t, 123, subLen)
	assert.Equal(t, 456, dataLen)

	assert.Equal(t, 1, fh.Count(Image))
}

func TestFileHeaderRemoveSegmentOutOfRange(t *testing.T) {
	fh := NewFileHeader()
	err := fh.removeSegment(Image, 0)
	require.Error(t, err)
}

func TestFileHeaderBytesIncludesSegmentArrays(t *testing.T) {
	fh := NewFileHeader()
	require.NoError(t, fh.appendSegment(Text))
	require.NoError(t, fh.SetSegmentLengths(Text, 0, 10, 20))

	out := fh.Bytes(endian.GetBigEndianEngine())
	assert.NotEmpty(t, out)
}

func TestFileHeaderBytesParseRoundTrip(t *testing.T) {
	fh := NewFileHeader()
	require.NoError(t, fh.appendSegment(Image))
	require.NoError(t, fh.SetSegmentLengths(Image, 0, 999, 12345))
	require.NoError(t, fh.appendSegment(DES))
	require.NoError(t, fh.SetSegmentLengths(DES, 0, 77, 16))
	require.NoError(t, fh.FileTitle.SetString("ROUND TRIP TEST"))

	engine := endian.GetBigEndianEngine()
	out := fh.Bytes(engine)

	parsed := NewFileHeader()
	consumed, err := parsed.Parse(out, engine)
	require.NoError(t, err)
	assert.Equal(t, len(out), consumed)

	title, err := parsed.FileTitle.AsString()
	require.NoError(t, err)
	assert.Equal(t, "ROUND TRIP TEST", title)

	assert.Equal(t, 1, parsed.Count(Image))
	subLen, dataLen, err := parsed.SegmentLengths(Image, 0)
	require.NoError(t, err)
	assert.Equal(t, 999, subLen)
	assert.Equal(t, 12345, dataLen)

	assert.Equal(t, 1, parsed.Count(DES))
	subLen, dataLen, err = parsed.SegmentLengths(DES, 0)
	require.NoError(t, err)
	assert.Equal(t, 77, subLen)
	assert.Equal(t, 16, dataLen)
}

func TestFileHeaderClone(t *testing.T) {
	fh := NewFileHeader()
	require.NoError(t, fh.appendSegment(DES))

	clone := fh.Clone()
	require.NoError(t, clone.appendSegment(DES))

	assert.Equal(t, 1, fh.Count(DES))
	assert.Equal(t, 2, clone.Count(DES))
}
