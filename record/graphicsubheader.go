package record

import (
	"fmt"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/field"
	"github.com/nitro-go/nitro/tre"
)

// GraphicSubheader is the NITF graphic (CGM) segment subheader. NITRO
// treats the CGM payload itself as an opaque blob but still models the
// subheader's own structure and Extensions section, since those are core
// record-model concerns.
type GraphicSubheader struct {
	GraphicID       *field.Field // SID, 10
	GraphicName     *field.Field // SNAME, 20
	Security        *Security
	EncryptionFlag  *field.Field // ENCRYP, 1
	GraphicType     *field.Field // SFMT, 1 ("C" for CGM)
	DisplayLevel    *field.Field // SDLVL, 3
	AttachLevel     *field.Field // SALVL, 3
	LocRow          *field.Field // SLOC row, 5
	LocCol          *field.Field // SLOC col, 5
	BoundRow1       *field.Field // SBND1 row, 5
	BoundCol1       *field.Field // SBND1 col, 5
	BoundRow2       *field.Field // SBND2 row, 5
	BoundCol2       *field.Field // SBND2 col, 5
	ExtensionLength *field.Field // 4
	Extensions      *Extensions
}

// NewGraphicSubheader creates a default-initialized graphic subheader.
func NewGraphicSubheader() *GraphicSubheader {
	sh := &GraphicSubheader{
		GraphicID:       field.New(field.BCSA, 10),
		GraphicName:     field.New(field.BCSA, 20),
		Security:        NewSecurity(),
		EncryptionFlag:  field.New(field.BCSN, 1),
		GraphicType:     field.New(field.BCSA, 1),
		DisplayLevel:    field.New(field.BCSN, 3),
		AttachLevel:     field.New(field.BCSN, 3),
		LocRow:          field.New(field.BCSN, 5),
		LocCol:          field.New(field.BCSN, 5),
		BoundRow1:       field.New(field.BCSN, 5),
		BoundCol1:       field.New(field.BCSN, 5),
		BoundRow2:       field.New(field.BCSN, 5),
		BoundCol2:       field.New(field.BCSN, 5),
		ExtensionLength: field.New(field.BCSN, 4),
		Extensions:      NewExtensions(),
	}
	_ = sh.GraphicType.SetString("C")

	return sh
}

// Clone returns a deep, independently-owned copy.
func (sh *GraphicSubheader) Clone(registry *tre.Registry) (*GraphicSubheader, error) {
	clone := NewGraphicSubheader()
	_ = clone.GraphicID.SetRaw(sh.GraphicID.Bytes())
	_ = clone.GraphicName.SetRaw(sh.GraphicName.Bytes())
	clone.Security = sh.Security.Clone()
	_ = clone.EncryptionFlag.SetRaw(sh.EncryptionFlag.Bytes())
	_ = clone.GraphicType.SetRaw(sh.GraphicType.Bytes())
	_ = clone.DisplayLevel.SetRaw(sh.DisplayLevel.Bytes())
	_ = clone.AttachLevel.SetRaw(sh.AttachLevel.Bytes())
	_ = clone.LocRow.SetRaw(sh.LocRow.Bytes())
	_ = clone.LocCol.SetRaw(sh.LocCol.Bytes())
	_ = clone.BoundRow1.SetRaw(sh.BoundRow1.Bytes())
	_ = clone.BoundCol1.SetRaw(sh.BoundCol1.Bytes())
	_ = clone.BoundRow2.SetRaw(sh.BoundRow2.Bytes())
	_ = clone.BoundCol2.SetRaw(sh.BoundCol2.Bytes())
	_ = clone.ExtensionLength.SetRaw(sh.ExtensionLength.Bytes())

	ext, err := sh.Extensions.Clone(registry)
	if err != nil {
		return nil, err
	}

	clone.Extensions = ext

	return clone, nil
}

func (sh *GraphicSubheader) scalarFields() []*field.Field {
	return []*field.Field{
		sh.GraphicID, sh.GraphicName, sh.EncryptionFlag, sh.GraphicType,
		sh.DisplayLevel, sh.AttachLevel, sh.LocRow, sh.LocCol,
		sh.BoundRow1, sh.BoundCol1, sh.BoundRow2, sh.BoundCol2,
	}
}

// Bytes serializes the subheader in wire order.
func (sh *GraphicSubheader) Bytes(registry *tre.Registry) ([]byte, error) {
	var out []byte
	out = append(out, sh.GraphicID.Bytes()...)
	out = append(out, sh.GraphicName.Bytes()...)
	out = append(out, sh.Security.Bytes()...)
	out = append(out, sh.EncryptionFlag.Bytes()...)
	out = append(out, sh.GraphicType.Bytes()...)
	out = append(out, sh.DisplayLevel.Bytes()...)
	out = append(out, sh.AttachLevel.Bytes()...)
	out = append(out, sh.LocRow.Bytes()...)
	out = append(out, sh.LocCol.Bytes()...)
	out = append(out, sh.BoundRow1.Bytes()...)
	out = append(out, sh.BoundCol1.Bytes()...)
	out = append(out, sh.BoundRow2.Bytes()...)
	out = append(out, sh.BoundCol2.Bytes()...)

	extBytes, err := sh.Extensions.Bytes(registry)
	if err != nil {
		return nil, err
	}

	if err := sh.ExtensionLength.SetUint(endian.GetBigEndianEngine(), uint64(len(extBytes))); err != nil {
		return nil, err
	}

	out = append(out, sh.ExtensionLength.Bytes()...)
	out = append(out, extBytes...)

	return out, nil
}

// ParseGraphicSubheader reads a graphic subheader from the front of data.
func ParseGraphicSubheader(data []byte, registry *tre.Registry) (*GraphicSubheader, int, error) {
	sh := NewGraphicSubheader()
	offset := 0

	readField := func(f *field.Field) error {
		if offset+f.Len() > len(data) {
			return fmt.Errorf("record: graphic subheader truncated at offset %d: %w", offset, errs.ErrInvalidHeaderSize)
		}

		if err := f.SetRaw(data[offset : offset+f.Len()]); err != nil {
			return err
		}

		offset += f.Len()

		return nil
	}

	for _, f := range []*field.Field{sh.GraphicID, sh.GraphicName} {
		if err := readField(f); err != nil {
			return nil, 0, err
		}
	}

	if offset+SecurityBlockSize > len(data) {
		return nil, 0, fmt.Errorf("record: graphic subheader truncated at security block: %w", errs.ErrInvalidHeaderSize)
	}

	if err := sh.Security.Parse(data[offset : offset+SecurityBlockSize]); err != nil {
		return nil, 0, err
	}

	offset += SecurityBlockSize

	for _, f := range []*field.Field{
		sh.EncryptionFlag, sh.GraphicType, sh.DisplayLevel, sh.AttachLevel,
		sh.LocRow, sh.LocCol, sh.BoundRow1, sh.BoundCol1, sh.BoundRow2, sh.BoundCol2,
		sh.ExtensionLength,
	} {
		if err := readField(f); err != nil {
			return nil, 0, err
		}
	}

	extLen, err := sh.ExtensionLength.AsUint(endian.GetBigEndianEngine())
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
