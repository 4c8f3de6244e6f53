package six

import "encoding/xml"

// CPHD is the phase-history product metadata object model: the XML tree
// a CPHD container carries between its text header and the per-vector
// parameter block. Unlike SICD/SIDD it never rides in an NITF DES; the
// cphd package handles its container framing.
type CPHD struct {
	XMLName xml.Name `xml:"CPHD"`

	Version Version `xml:"-"`

	CollectionInfo CollectionInfo `xml:"CollectionID"`
	Data           CPHDData       `xml:"Data"`
	Global         CPHDGlobal     `xml:"Global"`
	Channels       []CPHDChannel  `xml:"Channel>Parameters"`

	ProcessingLog ProcessingLog `xml:"-"`
}

// Family implements Product.
func (c *CPHD) Family() Family { return FamilyCPHD }

// ProductVersion implements Product.
func (c *CPHD) ProductVersion() Version { return c.Version }

// Log implements Product.
func (c *CPHD) Log() *ProcessingLog { return &c.ProcessingLog }

// CPHDData describes the layout of the wideband signal array: sample
// type plus per-channel vector/sample counts.
type CPHDData struct {
	SignalArrayFormat string            `xml:"SignalArrayFormat"`
	NumBytesPVP       int               `xml:"NumBytesPVP"`
	Channels          []CPHDChannelSize `xml:"Channel"`
}

// CPHDChannelSize is one channel's vector and sample counts in CPHDData.
type CPHDChannelSize struct {
	Identifier string `xml:"Identifier"`
	NumVectors int    `xml:"NumVectors"`
	NumSamples int    `xml:"NumSamples"`
}

// CPHDGlobal carries collection-wide timing and domain parameters.
type CPHDGlobal struct {
	DomainType     string  `xml:"DomainType"`
	SGN            int     `xml:"SGN"`
	RefFrequency   float64 `xml:"RefFreqIndex,omitempty"`
	CollectStart   string  `xml:"Timeline>CollectionStart"`
	TxTime1        float64 `xml:"Timeline>TxTime1"`
	TxTime2        float64 `xml:"Timeline>TxTime2"`
	FxMin          float64 `xml:"FxBand>FxMin"`
	FxMax          float64 `xml:"FxBand>FxMax"`
	TOASwathMin    float64 `xml:"TOASwath>TOAMin"`
	TOASwathMax    float64 `xml:"TOASwath>TOAMax"`
}

// CPHDChannel is one channel's collection parameters.
type CPHDChannel struct {
	Identifier         string  `xml:"Identifier"`
	RefVectorIndex     int     `xml:"RefVectorIndex"`
	FXFixed            bool    `xml:"FXFixed"`
	TOAFixed           bool    `xml:"TOAFixed"`
	SRPFixed           bool    `xml:"SRPFixed"`
	SignalNormal       bool    `xml:"SignalNormal,omitempty"`
	FxCenter           float64 `xml:"FxC,omitempty"`
	FxBandwidth        float64 `xml:"FxBW,omitempty"`
	TOASaved           float64 `xml:"TOASaved,omitempty"`
	TxRcvPolarization  string  `xml:"Polarization>TxPol,omitempty"`
	RcvPolarization    string  `xml:"Polarization>RcvPol,omitempty"`
}
