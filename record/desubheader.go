package record

import (
	"fmt"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/field"
	"github.com/nitro-go/nitro/tre"
)

// TREOverflowTypeID is the reserved DES type-id that marks a data
// extension segment as carrying overflowed TREs from another segment's
// extension area, rather than an application-defined DES.
const TREOverflowTypeID = "TRE_OVERFLOW"

// DESubheader is the NITF data extension segment subheader. DESDATA is
// owned by the segment, not this type; when TypeID is TREOverflowTypeID
// the payload is itself a sequence of framed TREs rather than opaque
// application data (see Record.OverflowExtensions and Extensions.Overflow).
type DESubheader struct {
	TypeID           *field.Field // DESTAG, 25
	Version          *field.Field // DESVER, 2
	Security         *Security
	OverflowedHeader *field.Field // DESOFLW, 6 (segment kind the TREs overflowed from; blank if none)
	OverflowedItem   *field.Field // DESITEM, 3 (1-based index of the segment overflowed from)

	// UserDefinedSubheaderLength / UserDefinedSubheaderFields model a
	// DES's own user-defined subheader block. The SICD/SIDD DES binding
	// rides in here: DESSHF carries the XML_DATA_CONTENT block.
	UserDefinedSubheaderLength *field.Field // DESSHL, 4
	UserDefinedSubheaderFields []byte
}

// NewDESubheader creates a default-initialized DES subheader.
func NewDESubheader() *DESubheader {
	sh := &DESubheader{
		TypeID:                     field.New(field.BCSA, 25),
		Version:                    field.New(field.BCSN, 2),
		Security:                   NewSecurity(),
		OverflowedHeader:           field.New(field.BCSA, 6),
		OverflowedItem:             field.New(field.BCSN, 3),
		UserDefinedSubheaderLength: field.New(field.BCSN, 4),
	}
	_ = sh.Version.SetString("01")

	return sh
}

// IsOverflow reports whether this DES carries overflowed TREs rather than
// application data.
func (sh *DESubheader) IsOverflow() bool {
	v, err := sh.TypeID.AsString()
	return err == nil && v == TREOverflowTypeID
}

// Clone returns a deep, independently-owned copy.
func (sh *DESubheader) Clone(_ *tre.Registry) (*DESubheader, error) {
	clone := NewDESubheader()
	_ = clone.TypeID.SetRaw(sh.TypeID.Bytes())
	_ = clone.Version.SetRaw(sh.Version.Bytes())
	clone.Security = sh.Security.Clone()
	_ = clone.OverflowedHeader.SetRaw(sh.OverflowedHeader.Bytes())
	_ = clone.OverflowedItem.SetRaw(sh.OverflowedItem.Bytes())
	_ = clone.UserDefinedSubheaderLength.SetRaw(sh.UserDefinedSubheaderLength.Bytes())
	clone.UserDefinedSubheaderFields = append([]byte(nil), sh.UserDefinedSubheaderFields...)

	return clone, nil
}

// Bytes serializes the subheader in wire order.
func (sh *DESubheader) Bytes() ([]byte, error) {
	var out []byte
	out = append(out, sh.TypeID.Bytes()...)
	out = append(out, sh.Version.Bytes()...)
	out = append(out, sh.Security.Bytes()...)
	out = append(out, sh.OverflowedHeader.Bytes()...)
	out = append(out, sh.OverflowedItem.Bytes()...)

	if err := sh.UserDefinedSubheaderLength.SetUint(endian.GetBigEndianEngine(), uint64(len(sh.UserDefinedSubheaderFields))); err != nil {
		return nil, err
	}

	out = append(out, sh.UserDefinedSubheaderLength.Bytes()...)
	out = append(out, sh.UserDefinedSubheaderFields...)

	return out, nil
}

// ParseDESubheader reads a DES subheader from the front of data.
func ParseDESubheader(data []byte) (*DESubheader, int, error) {
	sh := NewDESubheader()
	offset := 0

	readField := func(f *field.Field) error {
		if offset+f.Len() > len(data) {
			return fmt.Errorf("record: DES subheader truncated at offset %d: %w", offset, errs.ErrInvalidHeaderSize)
		}

		if err := f.SetRaw(data[offset : offset+f.Len()]); err != nil {
			return err
		}

		offset += f.Len()

		return nil
	}

	for _, f := range []*field.Field{sh.TypeID, sh.Version} {
		if err := readField(f); err != nil {
			return nil, 0, err
		}
	}

	if offset+SecurityBlockSize > len(data) {
		return nil, 0, fmt.Errorf("record: DES subheader truncated at security block: %w", errs.ErrInvalidHeaderSize)
	}

	if err := sh.Security.Parse(data[offset : offset+SecurityBlockSize]); err != nil {
		return nil, 0, err
	}

	offset += SecurityBlockSize

	for _, f := range []*field.Field{sh.OverflowedHeader, sh.OverflowedItem, sh.UserDefinedSubheaderLength} {
		if err := readField(f); err != nil {
			return nil, 0, err
		}
	}

	shl, err := sh.UserDefinedSubheaderLength.AsUint(endian.GetBigEndianEngine())
	if err != nil {
		return nil, 0, err
	}

	if offset+int(shl) > len(data) {
		return nil, 0, fmt.Errorf("record: DES subheader truncated at user-defined fields: %w", errs.ErrInvalidHeaderSize)
	}

	sh.UserDefinedSubheaderFields = append([]byte(nil), data[offset:offset+int(shl)]...)
	offset += int(shl)

	return sh, offset, nil
}
