package record

import (
	"fmt"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/field"
	"github.com/nitro-go/nitro/tre"
)

// TextSubheader is the NITF text segment subheader. NITRO stores the text
// body itself as an opaque byte slice on the owning segment; this type
// only models the subheader fields proper.
type TextSubheader struct {
	TextID          *field.Field // TEXTID, 7
	TextAttachLevel *field.Field // TXTALVL, 3
	DateTime        *field.Field // TXTDT, 14
	TextTitle       *field.Field // TXTITL, 80
	Security        *Security
	EncryptionFlag  *field.Field // ENCRYP, 1
	TextFormat      *field.Field // TXTFMT, 3 ("STA" or "U8S" etc.)
	ExtensionLength *field.Field // 5
	Extensions      *Extensions
}

// NewTextSubheader creates a default-initialized text subheader.
func NewTextSubheader() *TextSubheader {
	sh := &TextSubheader{
		TextID:          field.New(field.BCSA, 7),
		TextAttachLevel: field.New(field.BCSN, 3),
		DateTime:        field.New(field.BCSN, 14),
		TextTitle:       field.New(field.BCSA, 80),
		Security:        NewSecurity(),
		EncryptionFlag:  field.New(field.BCSN, 1),
		TextFormat:      field.New(field.BCSA, 3),
		ExtensionLength: field.New(field.BCSN, 5),
		Extensions:      NewExtensions(),
	}
	_ = sh.TextFormat.SetString("STA")

	return sh
}

// Clone returns a deep, independently-owned copy.
func (sh *TextSubheader) Clone(registry *tre.Registry) (*TextSubheader, error) {
	clone := NewTextSubheader()
	_ = clone.TextID.SetRaw(sh.TextID.Bytes())
	_ = clone.TextAttachLevel.SetRaw(sh.TextAttachLevel.Bytes())
	_ = clone.DateTime.SetRaw(sh.DateTime.Bytes())
	_ = clone.TextTitle.SetRaw(sh.TextTitle.Bytes())
	clone.Security = sh.Security.Clone()
	_ = clone.EncryptionFlag.SetRaw(sh.EncryptionFlag.Bytes())
	_ = clone.TextFormat.SetRaw(sh.TextFormat.Bytes())
	_ = clone.ExtensionLength.SetRaw(sh.ExtensionLength.Bytes())

	ext, err := sh.Extensions.Clone(registry)
	if err != nil {
		return nil, err
	}

	clone.Extensions = ext

	return clone, nil
}

// Bytes serializes the subheader in wire order.
func (sh *TextSubheader) Bytes(registry *tre.Registry) ([]byte, error) {
	var out []byte
	out = append(out, sh.TextID.Bytes()...)
	out = append(out, sh.TextAttachLevel.Bytes()...)
	out = append(out, sh.DateTime.Bytes()...)
	out = append(out, sh.TextTitle.Bytes()...)
	out = append(out, sh.Security.Bytes()...)
	out = append(out, sh.EncryptionFlag.Bytes()...)
	out = append(out, sh.TextFormat.Bytes()...)

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

// ParseTextSubheader reads a text subheader from the front of data.
func ParseTextSubheader(data []byte, registry *tre.Registry) (*TextSubheader, int, error) {
	sh := NewTextSubheader()
	offset := 0

	readField := func(f *field.Field) error {
		if offset+f.Len() > len(data) {
			return fmt.Errorf("record: text subheader truncated at offset %d: %w", offset, errs.ErrInvalidHeaderSize)
		}

		if err := f.SetRaw(data[offset : offset+f.Len()]); err != nil {
			return err
		}

		offset += f.Len()

		return nil
	}

	for _, f := range []*field.Field{sh.TextID, sh.TextAttachLevel, sh.DateTime, sh.TextTitle} {
		if err := readField(f); err != nil {
			return nil, 0, err
		}
	}

	if offset+SecurityBlockSize > len(data) {
		return nil, 0, fmt.Errorf("record: text subheader truncated at security block: %w", errs.ErrInvalidHeaderSize)
	}

	if err := sh.Security.Parse(data[offset : offset+SecurityBlockSize]); err != nil {
		return nil, 0, err
	}

	offset += SecurityBlockSize

	for _, f := range []*field.Field{sh.EncryptionFlag, sh.TextFormat, sh.ExtensionLength} {
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
