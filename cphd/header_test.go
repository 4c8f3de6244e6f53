package cphd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitro-go/nitro/errs"
)

func sampleHeader() string {
	return strings.Join([]string{
		"CPHD/0.3",
		"XML_DATA_SIZE := 1024",
		"XML_BYTE_OFFSET := 94",
		"VB_DATA_SIZE := 512",
		"VB_BYTE_OFFSET := 1118",
		"CPHD_DATA_SIZE := 4096",
		"CPHD_BYTE_OFFSET := 1630",
		"CLASSIFICATION := UNCLASSIFIED",
		"RELEASE_INFO := UNRESTRICTED",
		"\f",
	}, "\n") + "\n"
}

func TestParseHeader(t *testing.T) {
	h, consumed, err := ParseHeader(strings.NewReader(sampleHeader()))
	require.NoError(t, err)

	assert.Equal(t, VersionV03, h.Version)
	assert.Equal(t, int64(1024), h.XMLDataSize)
	assert.Equal(t, int64(94), h.XMLByteOffset)
	assert.Equal(t, int64(512), h.VBDataSize)
	assert.Equal(t, int64(1118), h.VBByteOffset)
	assert.Equal(t, int64(4096), h.CPHDDataSize)
	assert.Equal(t, int64(1630), h.CPHDByteOffset)
	assert.Equal(t, "UNCLASSIFIED", h.Classification)
	assert.Equal(t, "UNRESTRICTED", h.ReleaseInfo)
	assert.Equal(t, int64(len(sampleHeader())), consumed)
}

func TestParseHeaderEmitRoundTrip(t *testing.T) {
	input := sampleHeader()

	h, _, err := ParseHeader(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, input, string(h.Emit()))
}

func TestParseHeaderUnknownVersion(t *testing.T) {
	_, _, err := ParseHeader(strings.NewReader("CPHD/9.9\n\f\n"))
	require.ErrorIs(t, err, errs.ErrUnknownVersion)
}

func TestParseHeaderMissingRequiredKey(t *testing.T) {
	input := strings.Join([]string{
		"CPHD/1.0",
		"XML_DATA_SIZE := 10",
		"XML_BYTE_OFFSET := 50",
		"\f",
	}, "\n") + "\n"

	_, _, err := ParseHeader(strings.NewReader(input))
	require.ErrorIs(t, err, errs.ErrMissingElement)
}

func TestParseHeaderMalformedLine(t *testing.T) {
	input := "CPHD/1.0\nNOT A KEY VALUE LINE\n\f\n"

	_, _, err := ParseHeader(strings.NewReader(input))
	require.ErrorIs(t, err, errs.ErrInvalidObject)
}

func TestParseHeaderNonNumericSize(t *testing.T) {
	input := strings.Join([]string{
		"CPHD/1.0",
		"XML_DATA_SIZE := lots",
		"XML_BYTE_OFFSET := 0",
		"VB_DATA_SIZE := 0",
		"VB_BYTE_OFFSET := 0",
		"CPHD_DATA_SIZE := 0",
		"CPHD_BYTE_OFFSET := 0",
		"\f",
	}, "\n") + "\n"

	_, _, err := ParseHeader(strings.NewReader(input))
	require.ErrorIs(t, err, errs.ErrInvalidObject)
}

func TestExtraKeysPreserveOrder(t *testing.T) {
	input := strings.Join([]string{
		"CPHD/1.0",
		"XML_DATA_SIZE := 1",
		"XML_BYTE_OFFSET := 2",
		"VB_DATA_SIZE := 3",
		"VB_BYTE_OFFSET := 4",
		"CPHD_DATA_SIZE := 5",
		"CPHD_BYTE_OFFSET := 6",
		"ZEBRA := z",
		"ALPHA := a",
		"MIDDLE := m",
		"\f",
	}, "\n") + "\n"

	h, _, err := ParseHeader(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, h.Extra, 3)

	// Emit keeps first-seen order, not map or sorted order.
	assert.Equal(t, input, string(h.Emit()))
}

func TestComputeOffsets(t *testing.T) {
	h := NewHeader(VersionV10)
	h.XMLDataSize = 100
	h.VBDataSize = 40
	h.CPHDDataSize = 9000

	h.ComputeOffsets(150)

	assert.Equal(t, int64(150), h.XMLByteOffset)
	assert.Equal(t, int64(250), h.VBByteOffset)
	assert.Equal(t, int64(290), h.CPHDByteOffset)
}

func TestEmitParseSymmetry(t *testing.T) {
	h := NewHeader(VersionV10)
	h.XMLDataSize = 7
	h.XMLByteOffset = 70
	h.VBDataSize = 8
	h.VBByteOffset = 77
	h.CPHDDataSize = 9
	h.CPHDByteOffset = 85
	h.Classification = "U"

	parsed, consumed, err := ParseHeader(bytes.NewReader(h.Emit()))
	require.NoError(t, err)

	assert.Equal(t, int64(len(h.Emit())), consumed)
	assert.Equal(t, h.Version, parsed.Version)
	assert.Equal(t, h.XMLDataSize, parsed.XMLDataSize)
	assert.Equal(t, h.CPHDByteOffset, parsed.CPHDByteOffset)
	assert.Equal(t, h.Classification, parsed.Classification)
}
