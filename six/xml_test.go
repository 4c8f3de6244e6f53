package six

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSICD() *SICD {
	s := &SICD{Version: Version{1, 2, 1}}
	s.CollectionInfo = CollectionInfo{CollectorName: "SAT1", CoreName: "COLLECT-1"}
	s.ImageData = ImageData{PixelType: "RE32F_IM32F", NumRows: 512, NumCols: 512}
	s.GeoData = GeoData{EarthModel: "WGS_84"}
	s.Grid = Grid{ImagePlane: "SLANT", Type: "RGAZIM"}
	s.RadarCollection = RadarCollection{TxPolarization: "V"}
	s.ImageFormation = ImageFormation{ImageFormAlgo: "PFA"}

	return s
}

func TestMarshalUnmarshalSICDRoundTrip(t *testing.T) {
	orig := sampleSICD()

	data, err := Marshal(orig)
	require.NoError(t, err)
	assert.Contains(t, string(data), "urn:SICD:1.2.1")

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	sicd, ok := decoded.(*SICD)
	require.True(t, ok)
	assert.Equal(t, orig.Version, sicd.Version)
	assert.Equal(t, orig.CollectionInfo.CollectorName, sicd.CollectionInfo.CollectorName)
	assert.Equal(t, orig.ImageData.NumRows, sicd.ImageData.NumRows)
}

func TestMarshalUnmarshalCPHDRoundTrip(t *testing.T) {
	orig := &CPHD{Version: Version{1, 0, 1}}
	orig.CollectionInfo = CollectionInfo{CollectorName: "SAT2", CoreName: "PHASE-1"}
	orig.Data = CPHDData{
		SignalArrayFormat: "CF8",
		NumBytesPVP:       88,
		Channels:          []CPHDChannelSize{{Identifier: "CH1", NumVectors: 128, NumSamples: 2048}},
	}
	orig.Global = CPHDGlobal{DomainType: "FX", SGN: -1}
	orig.Channels = []CPHDChannel{{Identifier: "CH1", RefVectorIndex: 0, FXFixed: true, TOAFixed: true, SRPFixed: true}}

	data, err := Marshal(orig)
	require.NoError(t, err)
	assert.Contains(t, string(data), "urn:CPHD:1.0.1")

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	cphd, ok := decoded.(*CPHD)
	require.True(t, ok)
	assert.Equal(t, orig.Version, cphd.Version)
	assert.Equal(t, orig.Data.SignalArrayFormat, cphd.Data.SignalArrayFormat)
	require.Len(t, cphd.Channels, 1)
	assert.True(t, cphd.Channels[0].FXFixed)
}

func TestDetectVersion(t *testing.T) {
	data, err := Marshal(sampleSICD())
	require.NoError(t, err)

	family, version, err := DetectVersion(data)
	require.NoError(t, err)
	assert.Equal(t, FamilySICD, family)
	assert.Equal(t, Version{1, 2, 1}, version)
}

func TestUnmarshalInvalidXML(t *testing.T) {
	_, err := Unmarshal([]byte("not xml at all"))
	assert.Error(t, err)
}

func TestUnmarshalUnresolvableSchemaStrict(t *testing.T) {
	data, err := Marshal(sampleSICD())
	require.NoError(t, err)

	_, err = Unmarshal(data, WithStrictValidation())
	assert.Error(t, err)
}

func TestUnmarshalWithResolvableSchemaPath(t *testing.T) {
	data, err := Marshal(sampleSICD())
	require.NoError(t, err)

	_, err = Unmarshal(data, WithSchemaPath(t.TempDir()))
	assert.NoError(t, err)
}
