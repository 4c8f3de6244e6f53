package record

import (
	"fmt"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/field"
	"github.com/nitro-go/nitro/tre"
)

// ImageMode is the IMODE byte MIL-STD-2500C defines: B (band-interleaved
// by block), P (by pixel), R (by row), S (band-sequential).
type ImageMode byte

const (
	ModeBlockInterleaved ImageMode = 'B'
	ModePixelInterleaved ImageMode = 'P'
	ModeRowInterleaved   ImageMode = 'R'
	ModeBandSequential   ImageMode = 'S'
)

// ImageSubheader holds the fields of an NITF image segment subheader that
// matter to the record invariants and to image I/O: identification, pixel
// geometry, blocking geometry, compression code, and the stacking fields
// (IDLVL/IALVL/ILOC) the writer uses to reassemble multi-segment logical
// images.
type ImageSubheader struct {
	ImageID        *field.Field // IID1, 10
	DateTime       *field.Field // IDATIM, 14
	Source         *field.Field // ISORCE, 42
	Security       *Security
	EncryptionFlag *field.Field // ENCRYP, 1

	NRows        *field.Field // NROWS, 8
	NCols        *field.Field // NCOLS, 8
	PixelType    *field.Field // PVTYPE, 3
	Representation *field.Field // IREP, 8
	Category     *field.Field // ICAT, 8
	ActualBPP    *field.Field // ABPP, 2
	PixelJustify *field.Field // PJUST, 1
	CoordSystem  *field.Field // ICORDS, 1
	CornerCoords *field.Field // IGEOLO, 60

	Compression *field.Field // IC, 2
	NumBands    *field.Field // NBANDS, 1

	Mode  *field.Field // IMODE, 1
	NBPR  *field.Field // blocks per row, 4
	NBPC  *field.Field // blocks per column, 4
	NPPBH *field.Field // pixels per block horizontal, 4
	NPPBV *field.Field // pixels per block vertical, 4
	NBPP  *field.Field // bits per pixel per band, 2

	DisplayLevel *field.Field // IDLVL, 3
	AttachLevel  *field.Field // IALVL, 3
	LocRow       *field.Field // ILOC row offset, 5
	LocCol       *field.Field // ILOC col offset, 5
	Magnification *field.Field // IMAG, 4

	ExtensionLength *field.Field // combined TRE-area length, 5
	Extensions      *Extensions

	// PadValue is the declared pad-pixel value for masked/edge blocks,
	// one byte per band for simplicity — real NITF derives width from
	// NBPP; NITRO stores it directly.
	PadValue byte
}

// NewImageSubheader creates a default-initialized image subheader.
func NewImageSubheader() *ImageSubheader {
	sh := &ImageSubheader{
		ImageID:         field.New(field.BCSA, 10),
		DateTime:        field.New(field.BCSN, 14),
		Source:          field.New(field.BCSA, 42),
		Security:        NewSecurity(),
		EncryptionFlag:  field.New(field.BCSN, 1),
		NRows:           field.New(field.BCSN, 8),
		NCols:           field.New(field.BCSN, 8),
		PixelType:       field.New(field.BCSA, 3),
		Representation:  field.New(field.BCSA, 8),
		Category:        field.New(field.BCSA, 8),
		ActualBPP:       field.New(field.BCSN, 2),
		PixelJustify:    field.New(field.BCSA, 1),
		CoordSystem:     field.New(field.BCSA, 1),
		CornerCoords:    field.New(field.BCSA, 60),
		Compression:     field.New(field.BCSA, 2),
		NumBands:        field.New(field.BCSN, 1),
		Mode:            field.New(field.BCSA, 1),
		NBPR:            field.New(field.BCSN, 4),
		NBPC:            field.New(field.BCSN, 4),
		NPPBH:           field.New(field.BCSN, 4),
		NPPBV:           field.New(field.BCSN, 4),
		NBPP:            field.New(field.BCSN, 2),
		DisplayLevel:    field.New(field.BCSN, 3),
		AttachLevel:     field.New(field.BCSN, 3),
		LocRow:          field.New(field.BCSN, 5),
		LocCol:          field.New(field.BCSN, 5),
		Magnification:   field.New(field.BCSA, 4),
		ExtensionLength: field.New(field.BCSN, 5),
		Extensions:      NewExtensions(),
	}

	_ = sh.Mode.SetString("B")
	_ = sh.Compression.SetString("NC")
	_ = sh.NumBands.SetUint(endian.GetBigEndianEngine(), 1)

	return sh
}

// ValidateModeAndMask checks the MIL-STD-2500C invariant: when IMODE='S',
// the block mask table length is blocksPerRow*blocksPerCol*numBands;
// otherwise it is blocksPerRow*blocksPerCol.
func (sh *ImageSubheader) ValidateModeAndMask(maskTableLen int) error {
	engine := endian.GetBigEndianEngine()

	nbpr, err := sh.NBPR.AsUint(engine)
	if err != nil {
		return err
	}

	nbpc, err := sh.NBPC.AsUint(engine)
	if err != nil {
		return err
	}

	nbands, err := sh.NumBands.AsUint(engine)
	if err != nil {
		return err
	}

	mode, err := sh.Mode.AsString()
	if err != nil {
		return err
	}

	expected := int(nbpr * nbpc)
	if ImageMode(mode[0]) == ModeBandSequential {
		expected *= int(nbands)
	}

	if maskTableLen != expected {
		return fmt.Errorf("record: image subheader mode %s expects mask table length %d, got %d: %w", mode, expected, maskTableLen, errs.ErrInvalidObject)
	}

	return nil
}

// Clone returns a deep, independently-owned copy.
func (sh *ImageSubheader) Clone(registry *tre.Registry) (*ImageSubheader, error) {
	clone := NewImageSubheader()
	for _, pair := range sh.scalarFields() {
		if err := clone.fieldByName(pair.name).SetRaw(pair.f.Bytes()); err != nil {
			return nil, err
		}
	}

	clone.Security = sh.Security.Clone()
	clone.PadValue = sh.PadValue

	ext, err := sh.Extensions.Clone(registry)
	if err != nil {
		return nil, err
	}

	clone.Extensions = ext

	return clone, nil
}

type namedField struct {
	name string
	f    *field.Field
}

func (sh *ImageSubheader) scalarFields() []namedField {
	return []namedField{
		{"ImageID", sh.ImageID}, {"DateTime", sh.DateTime}, {"Source", sh.Source},
		{"EncryptionFlag", sh.EncryptionFlag}, {"NRows", sh.NRows}, {"NCols", sh.NCols},
		{"PixelType", sh.PixelType}, {"Representation", sh.Representation}, {"Category", sh.Category},
		{"ActualBPP", sh.ActualBPP}, {"PixelJustify", sh.PixelJustify}, {"CoordSystem", sh.CoordSystem},
		{"CornerCoords", sh.CornerCoords}, {"Compression", sh.Compression}, {"NumBands", sh.NumBands},
		{"Mode", sh.Mode}, {"NBPR", sh.NBPR}, {"NBPC", sh.NBPC}, {"NPPBH", sh.NPPBH}, {"NPPBV", sh.NPPBV},
		{"NBPP", sh.NBPP}, {"DisplayLevel", sh.DisplayLevel}, {"AttachLevel", sh.AttachLevel},
		{"LocRow", sh.LocRow}, {"LocCol", sh.LocCol}, {"Magnification", sh.Magnification},
		{"ExtensionLength", sh.ExtensionLength},
	}
}

func (sh *ImageSubheader) fieldByName(name string) *field.Field {
	for _, pair := range sh.scalarFields() {
		if pair.name == name {
			return pair.f
		}
	}

	return nil
}

// Bytes serializes the subheader in wire order: identification fields,
// the 167-byte security block, pixel/blocking geometry, the stacking
// fields, and the Extensions section framed behind ExtensionLength.
func (sh *ImageSubheader) Bytes(registry *tre.Registry) ([]byte, error) {
	var out []byte

	out = append(out, sh.ImageID.Bytes()...)
	out = append(out, sh.DateTime.Bytes()...)
	out = append(out, sh.Source.Bytes()...)
	out = append(out, sh.Security.Bytes()...)
	out = append(out, sh.EncryptionFlag.Bytes()...)
	out = append(out, sh.NRows.Bytes()...)
	out = append(out, sh.NCols.Bytes()...)
	out = append(out, sh.PixelType.Bytes()...)
	out = append(out, sh.Representation.Bytes()...)
	out = append(out, sh.Category.Bytes()...)
	out = append(out, sh.ActualBPP.Bytes()...)
	out = append(out, sh.PixelJustify.Bytes()...)
	out = append(out, sh.CoordSystem.Bytes()...)
	out = append(out, sh.CornerCoords.Bytes()...)
	out = append(out, sh.Compression.Bytes()...)
	out = append(out, sh.NumBands.Bytes()...)
	out = append(out, sh.Mode.Bytes()...)
	out = append(out, sh.NBPR.Bytes()...)
	out = append(out, sh.NBPC.Bytes()...)
	out = append(out, sh.NPPBH.Bytes()...)
	out = append(out, sh.NPPBV.Bytes()...)
	out = append(out, sh.NBPP.Bytes()...)
	out = append(out, sh.DisplayLevel.Bytes()...)
	out = append(out, sh.AttachLevel.Bytes()...)
	out = append(out, sh.LocRow.Bytes()...)
	out = append(out, sh.LocCol.Bytes()...)
	out = append(out, sh.Magnification.Bytes()...)

	extBytes, err := sh.Extensions.Bytes(registry)
	if err != nil {
		return nil, err
	}

	engine := endian.GetBigEndianEngine()
	if err := sh.ExtensionLength.SetUint(engine, uint64(len(extBytes))); err != nil {
		return nil, err
	}

	out = append(out, sh.ExtensionLength.Bytes()...)
	out = append(out, extBytes...)

	return out, nil
}

// ParseImageSubheader reads an image subheader starting at the front of
// data and returns it along with the number of bytes consumed.
func ParseImageSubheader(data []byte, registry *tre.Registry) (*ImageSubheader, int, error) {
	sh := NewImageSubheader()
	offset := 0

	readField := func(f *field.Field) error {
		if offset+f.Len() > len(data) {
			return fmt.Errorf("record: image subheader truncated at offset %d: %w", offset, errs.ErrInvalidHeaderSize)
		}

		if err := f.SetRaw(data[offset : offset+f.Len()]); err != nil {
			return err
		}

		offset += f.Len()

		return nil
	}

	for _, f := range []*field.Field{sh.ImageID, sh.DateTime, sh.Source} {
		if err := readField(f); err != nil {
			return nil, 0, err
		}
	}

	if offset+SecurityBlockSize > len(data) {
		return nil, 0, fmt.Errorf("record: image subheader truncated at security block: %w", errs.ErrInvalidHeaderSize)
	}

	if err := sh.Security.Parse(data[offset : offset+SecurityBlockSize]); err != nil {
		return nil, 0, err
	}

	offset += SecurityBlockSize

	for _, f := range []*field.Field{
		sh.EncryptionFlag, sh.NRows, sh.NCols, sh.PixelType, sh.Representation,
		sh.Category, sh.ActualBPP, sh.PixelJustify, sh.CoordSystem, sh.CornerCoords,
		sh.Compression, sh.NumBands, sh.Mode, sh.NBPR, sh.NBPC, sh.NPPBH, sh.NPPBV,
		sh.NBPP, sh.DisplayLevel, sh.AttachLevel, sh.LocRow, sh.LocCol, sh.Magnification,
		sh.ExtensionLength,
	} {
		if err := readField(f); err != nil {
			return nil, 0, err
		}
	}

	engine := endian.GetBigEndianEngine()

	extLen, err := sh.ExtensionLength.AsUint(engine)
	if err != nil {
		return nil, 0, err
	}

	ext, err := ParseExtensions(registry, data[offset:], int(extLen))
	if err != nil {
		return nil, 0, err
	}

	sh.Extensions = ext
	offset += int(extLen)

	return sh, offset, nil
}
