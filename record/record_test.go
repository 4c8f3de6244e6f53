package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitro-go/nitro/tre"
)

func TestNewRecordMutators(t *testing.T) {
	r := NewRecord(nil)

	img, err := r.NewImageSegment()
	require.NoError(t, err)
	img.Data = []byte("pixels")

	des, err := r.NewDataExtensionSegment()
	require.NoError(t, err)
	des.Data = []byte("appdata")

	assert.Equal(t, 1, r.FileHeader.Count(Image))
	assert.Equal(t, 1, r.FileHeader.Count(DES))

	require.NoError(t, r.ComputeOffsets())

	subLen, dataLen, err := r.FileHeader.SegmentLengths(Image, 0)
	require.NoError(t, err)
	assert.Equal(t, imageSubheaderFixedLen, subLen)
	assert.Equal(t, 6, dataLen)

	require.NoError(t, r.RemoveImageSegment(0))
	assert.Equal(t, 0, r.FileHeader.Count(Image))
	assert.Len(t, r.Images, 0)
}

func TestRemoveSegmentOutOfRange(t *testing.T) {
	r := NewRecord(nil)
	err := r.RemoveTextSegment(0)
	require.Error(t, err)
}

func TestOverflowDESRoundTrip(t *testing.T) {
	registry := tre.NewRegistry(nil)
	tre.RegisterBundled(registry)

	r := NewRecord(registry)

	graphic, err := r.NewGraphicSegment()
	require.NoError(t, err)

	payload := make([]byte, 91)
	copy(payload, []byte("89"))
	for i := 2; i < 91; i++ {
		payload[i] = 'A'
	}

	inst, err := registry.ParseTRE("IOMAPA", payload)
	require.NoError(t, err)
	graphic.Subheader.Extensions.Add(inst)

	des, err := r.CreateOverflowDES(Graphic, 0, graphic.Subheader.Extensions)
	require.NoError(t, err)
	assert.True(t, des.Subheader.IsOverflow())

	linked, ok := r.OverflowExtensions(graphic.Subheader.Extensions)
	require.True(t, ok)
	assert.Same(t, des, linked)
}

func TestRecordCloneIndependence(t *testing.T) {
	r := NewRecord(nil)

	img, err := r.NewImageSegment()
	require.NoError(t, err)
	img.Data = []byte("original")

	clone, err := r.Clone()
	require.NoError(t, err)

	clone.Images[0].Data[0] = 'X'
	assert.Equal(t, byte('o'), img.Data[0])

	require.NoError(t, r.ComputeOffsets())
	require.NoError(t, clone.ComputeOffsets())

	fp1, err := r.Fingerprint()
	require.NoError(t, err)
	fp2, err := clone.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2, "same segment layout should fingerprint identically regardless of pixel content")
}
