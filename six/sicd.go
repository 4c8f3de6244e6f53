package six

import "encoding/xml"

// SICD is the complex (I/Q) SAR image product object model: a fixed
// tree of substructures rooted at the version namespace.
type SICD struct {
	XMLName xml.Name `xml:"SICD"`

	Version Version `xml:"-"`

	CollectionInfo  CollectionInfo   `xml:"CollectionInfo"`
	ImageCreation   *ImageCreation   `xml:"ImageCreation,omitempty"`
	ImageData       ImageData        `xml:"ImageData"`
	GeoData         GeoData          `xml:"GeoData"`
	Grid            Grid             `xml:"Grid"`
	Timeline        Timeline         `xml:"Timeline"`
	Position        Position         `xml:"Position"`
	RadarCollection RadarCollection  `xml:"RadarCollection"`
	ImageFormation  ImageFormation   `xml:"ImageFormation"`
	SCPCOA          SCPCOA           `xml:"SCPCOA"`
	Radiometric     *Radiometric     `xml:"Radiometric,omitempty"`
	Antenna         *Antenna         `xml:"Antenna,omitempty"`
	ErrorStatistics *ErrorStatistics `xml:"ErrorStatistics,omitempty"`
	MatchInfo       *MatchInfo       `xml:"MatchInfo,omitempty"`

	ProcessingLog ProcessingLog `xml:"-"`
}

// Family implements Product.
func (s *SICD) Family() Family { return FamilySICD }

// ProductVersion implements Product.
func (s *SICD) ProductVersion() Version { return s.Version }

// Log implements Product.
func (s *SICD) Log() *ProcessingLog { return &s.ProcessingLog }
