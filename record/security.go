package record

import (
	"fmt"

	"github.com/nitro-go/nitro/field"
)

// Security is the 167-byte NITF security block shared by the file header
// and every subheader: classification, control and handling, releasing
// instructions, declassification metadata, and the classification
// authority chain.
type Security struct {
	Classification          *field.Field // CLAS, 1 byte
	ClassificationSystem     *field.Field // CLSY, 2 bytes
	Codewords                *field.Field // CODE, 11 bytes
	ControlAndHandling       *field.Field // CTLH, 2 bytes
	ReleasingInstructions    *field.Field // REL, 20 bytes
	DeclassificationType     *field.Field // DCTP, 2 bytes
	DeclassificationDate     *field.Field // DCDT, 8 bytes
	DeclassificationExempt   *field.Field // DCXM, 4 bytes
	DowngradeLevel           *field.Field // DG, 1 byte
	DowngradeDate            *field.Field // DGDT, 8 bytes
	ClassificationText       *field.Field // CLTX, 43 bytes
	ClassificationAuthType   *field.Field // CATP, 1 byte
	ClassificationAuthority  *field.Field // CAUT, 40 bytes
	ClassificationReason     *field.Field // CRSN, 1 byte
	SecuritySourceDate       *field.Field // SRDT, 8 bytes
	SecurityControlNumber    *field.Field // CTLN, 15 bytes
}

// SecurityBlockSize is the fixed wire size of a Security block: the
// field widths sum to exactly 167 bytes.
const SecurityBlockSize = 1 + 2 + 11 + 2 + 20 + 2 + 8 + 4 + 1 + 8 + 43 + 1 + 40 + 1 + 8 + 15

// NewSecurity creates a Security block defaulted to all-spaces
// unclassified placeholders, except Classification which defaults to
// "U".
func NewSecurity() *Security {
	s := &Security{
		Classification:         field.New(field.BCSA, 1),
		ClassificationSystem:   field.New(field.BCSA, 2),
		Codewords:              field.New(field.BCSA, 11),
		ControlAndHandling:     field.New(field.BCSA, 2),
		ReleasingInstructions:  field.New(field.BCSA, 20),
		DeclassificationType:   field.New(field.BCSA, 2),
		DeclassificationDate:   field.New(field.BCSA, 8),
		DeclassificationExempt: field.New(field.BCSA, 4),
		DowngradeLevel:         field.New(field.BCSA, 1),
		DowngradeDate:          field.New(field.BCSA, 8),
		ClassificationText:     field.New(field.BCSA, 43),
		ClassificationAuthType: field.New(field.BCSA, 1),
		ClassificationAuthority: field.New(field.BCSA, 40),
		ClassificationReason:   field.New(field.BCSA, 1),
		SecuritySourceDate:     field.New(field.BCSA, 8),
		SecurityControlNumber:  field.New(field.BCSA, 15),
	}
	_ = s.Classification.SetString("U")

	return s
}

// fields returns the block's Fields in wire order.
func (s *Security) fields() []*field.Field {
	return []*field.Field{
		s.Classification, s.ClassificationSystem, s.Codewords, s.ControlAndHandling,
		s.ReleasingInstructions, s.DeclassificationType, s.DeclassificationDate,
		s.DeclassificationExempt, s.DowngradeLevel, s.DowngradeDate, s.ClassificationText,
		s.ClassificationAuthType, s.ClassificationAuthority, s.ClassificationReason,
		s.SecuritySourceDate, s.SecurityControlNumber,
	}
}

// Parse reads a SecurityBlockSize-byte buffer into the block's Fields.
func (s *Security) Parse(data []byte) error {
	if len(data) < SecurityBlockSize {
		return fmt.Errorf("record: security block needs %d bytes, got %d", SecurityBlockSize, len(data))
	}

	offset := 0
	for _, f := range s.fields() {
		if err := f.SetRaw(data[offset : offset+f.Len()]); err != nil {
			return err
		}

		offset += f.Len()
	}

	return nil
}

// Bytes serializes the block in wire order.
func (s *Security) Bytes() []byte {
	out := make([]byte, 0, SecurityBlockSize)
	for _, f := range s.fields() {
		out = append(out, f.Bytes()...)
	}

	return out
}

// Clone returns a deep, independently-owned copy.
func (s *Security) Clone() *Security {
	clone := NewSecurity()
	_ = clone.Parse(s.Bytes())

	return clone
}
