package six

import "encoding/xml"

// SIDD is the derived, pixel-ready SAR image product object model. It
// shares most of SICD's measurement substructures plus the SIDD-only
// display, exploitation, reprocessing, processing, and annotation
// blocks.
type SIDD struct {
	XMLName xml.Name `xml:"SIDD"`

	Version Version `xml:"-"`

	ProductCreation ImageCreation `xml:"ProductCreation>ProcessorInformation"`
	Display         Display       `xml:"Display"`
	GeoData         GeoData       `xml:"GeoData"`
	Measurement     Measurement   `xml:"Measurement"`
	ExploitationFeatures ExploitationFeatures `xml:"ExploitationFeatures"`
	DownstreamReprocessing *DownstreamReprocessing `xml:"DownstreamReprocessing,omitempty"`
	ProductProcessing *ProductProcessing `xml:"ProductProcessing,omitempty"`
	Annotations     []Annotation  `xml:"Annotations>Annotation,omitempty"`

	ProcessingLog ProcessingLog `xml:"-"`
}

// Family implements Product.
func (s *SIDD) Family() Family { return FamilySIDD }

// ProductVersion implements Product.
func (s *SIDD) ProductVersion() Version { return s.Version }

// Log implements Product.
func (s *SIDD) Log() *ProcessingLog { return &s.ProcessingLog }

// Display carries the pixel-to-display mapping parameters.
type Display struct {
	PixelType       string `xml:"PixelType"`
	NumBands        int    `xml:"NumBands"`
	DefaultBandDisplay int `xml:"DefaultBandDisplay,omitempty"`
}

// Measurement carries the derived product's own pixel-to-ground
// projection, the SIDD analogue of SICD's Grid/Position/SCPCOA trio.
type Measurement struct {
	ProjectionType string  `xml:"ProjectionType"`
	PixelFootprint RowColInt `xml:"PixelFootprint"`
	ARPPoly        XYZPoly `xml:"ARPPoly"`
}

// ExploitationFeatures carries the collection(s) a derived product was
// exploited from.
type ExploitationFeatures struct {
	Collections []ExploitationCollection `xml:"Collection"`
}

// ExploitationCollection is one source-collection entry of
// ExploitationFeatures.
type ExploitationCollection struct {
	Identifier string `xml:"Identifier"`
	CollectorName string `xml:"Information>CollectorName"`
	GrazeAngle float64 `xml:"Geometry>Azimuth,omitempty"`
}

// GeometricChip describes a chip taken from a larger reprocessed image.
type GeometricChip struct {
	ChipSize RowColInt `xml:"ChipSize"`
	OriginalUpperLeft RowColInt `xml:"OriginalUpperLeftCoordinate"`
	OriginalUpperRight RowColInt `xml:"OriginalUpperRightCoordinate"`
	OriginalLowerLeft RowColInt `xml:"OriginalLowerLeftCoordinate"`
	OriginalLowerRight RowColInt `xml:"OriginalLowerRightCoordinate"`
}

// DownstreamReprocessing carries post-formation geometric and
// processing-event metadata.
type DownstreamReprocessing struct {
	GeometricChip *GeometricChip `xml:"GeometricChip,omitempty"`
}

// ProductProcessing records an ordered list of processing modules
// applied after image formation.
type ProductProcessing struct {
	ProcessingModules []ProcessingModule `xml:"ProcessingModule"`
}

// ProcessingModule is one named processing step, optionally nesting
// further modules.
type ProcessingModule struct {
	ModuleName string             `xml:"ModuleName"`
	ModuleParameters []string      `xml:"ModuleParameter,omitempty"`
	Children   []ProcessingModule `xml:"ProcessingModule,omitempty"`
}

// Annotation is a single user annotation over the derived image.
type Annotation struct {
	Identifier string    `xml:"Identifier"`
	SpatialReferenceSystem string `xml:"SpatialReferenceSystem,omitempty"`
	Vertices   []RowCol  `xml:"Object>Polygon>Vertex,omitempty"`
}
