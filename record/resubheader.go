package record

import (
	"fmt"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/field"
	"github.com/nitro-go/nitro/tre"
)

// RESubheader is the NITF reserved extension segment subheader. RESDATA is
// opaque application data owned by the segment.
type RESubheader struct {
	TypeID                     *field.Field // RESTAG, 25
	Version                    *field.Field // RESVER, 2
	Security                   *Security
	UserDefinedSubheaderLength *field.Field // RESSHL, 4
	UserDefinedSubheaderFields []byte
}

// NewRESubheader creates a default-initialized RES subheader.
func NewRESubheader() *RESubheader {
	sh := &RESubheader{
		TypeID:                     field.New(field.BCSA, 25),
		Version:                    field.New(field.BCSN, 2),
		Security:                   NewSecurity(),
		UserDefinedSubheaderLength: field.New(field.BCSN, 4),
	}
	_ = sh.Version.SetString("01")

	return sh
}

// Clone returns a deep, independently-owned copy.
func (sh *RESubheader) Clone(_ *tre.Registry) (*RESubheader, error) {
	clone := NewRESubheader()
	_ = clone.TypeID.SetRaw(sh.TypeID.Bytes())
	_ = clone.Version.SetRaw(sh.Version.Bytes())
	clone.Security = sh.Security.Clone()
	_ = clone.UserDefinedSubheaderLength.SetRaw(sh.UserDefinedSubheaderLength.Bytes())
	clone.UserDefinedSubheaderFields = append([]byte(nil), sh.UserDefinedSubheaderFields...)

	return clone, nil
}

// Bytes serializes the subheader in wire order.
func (sh *RESubheader) Bytes() ([]byte, error) {
	var out []byte
	out = append(out, sh.TypeID.Bytes()...)
	out = append(out, sh.Version.Bytes()...)
	out = append(out, sh.Security.Bytes()...)

	if err := sh.UserDefinedSubheaderLength.SetUint(endian.GetBigEndianEngine(), uint64(len(sh.UserDefinedSubheaderFields))); err != nil {
		return nil, err
	}

	out = append(out, sh.UserDefinedSubheaderLength.Bytes()...)
	out = append(out, sh.UserDefinedSubheaderFields...)

	return out, nil
}

// ParseRESubheader reads an RES subheader from the front of data.
func ParseRESubheader(data []byte) (*RESubheader, int, error) {
	sh := NewRESubheader()
	offset := 0

	readField := func(f *field.Field) error {
		if offset+f.Len() > len(data) {
			return fmt.Errorf("record: RES subheader truncated at offset %d: %w", offset, errs.ErrInvalidHeaderSize)
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
		return nil, 0, fmt.Errorf("record: RES subheader truncated at security block: %w", errs.ErrInvalidHeaderSize)
	}

	if err := sh.Security.Parse(data[offset : offset+SecurityBlockSize]); err != nil {
		return nil, 0, err
	}

	offset += SecurityBlockSize

	if err := readField(sh.UserDefinedSubheaderLength); err != nil {
		return nil, 0, err
	}

	shl, err := sh.UserDefinedSubheaderLength.AsUint(endian.GetBigEndianEngine())
	if err != nil {
		return nil, 0, err
	}

	if offset+int(shl) > len(data) {
		return nil, 0, fmt.Errorf("record: RES subheader truncated at user-defined fields: %w", errs.ErrInvalidHeaderSize)
	}

	sh.UserDefinedSubheaderFields = append([]byte(nil), data[offset:offset+int(shl)]...)
	offset += int(shl)

	return sh, offset, nil
}
