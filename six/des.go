package six

import (
	"fmt"

	"github.com/nitro-go/nitro/endian"
	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/record"
)

// XMLDataContentTag is the DES user-defined subheader tag that carries
// product XML.
const XMLDataContentTag = "XML_DATA_CONTENT"

// XMLDataContentSubheaderLength is the fixed byte length of the
// XML_DATA_CONTENT user-defined subheader.
const XMLDataContentSubheaderLength = 773

// DESVersion is the two-byte DESVER field value SICD/SIDD/CPHD DES
// subheaders declare. The XML_DATA_CONTENT schema names its own content
// version as the integer constant 4, but fielded files render DESVER as
// "01" regardless; downstream consumers accept both, so the divergence
// is preserved rather than reconciled.
const DESVersion = "01"

// BindToDES packages xmlData as a DES carrying SICD/SIDD/CPHD content:
// sets the subheader's type-id, DESVER, and a zero-filled
// XMLDataContentSubheaderLength-byte user-defined subheader block. The
// length and version markers are what NITF readers key on to recognize
// the segment.
func BindToDES(sh *record.DESubheader, data []byte) ([]byte, error) {
	if err := sh.TypeID.SetString(XMLDataContentTag); err != nil {
		return nil, fmt.Errorf("six: setting DES type-id: %w", err)
	}

	if err := sh.Version.SetString(DESVersion); err != nil {
		return nil, fmt.Errorf("six: setting DESVER: %w", err)
	}

	if err := sh.UserDefinedSubheaderLength.SetUint(endian.GetBigEndianEngine(), XMLDataContentSubheaderLength); err != nil {
		return nil, fmt.Errorf("six: setting DESSHL: %w", err)
	}

	sh.UserDefinedSubheaderFields = make([]byte, XMLDataContentSubheaderLength)

	return data, nil
}

// ExtractFromDES validates that sh carries SICD/SIDD/CPHD content, for a
// caller that has already read the DES's data block separately. It
// returns only an error.
func ExtractFromDES(sh *record.DESubheader) error {
	typeID, err := sh.TypeID.AsString()
	if err != nil {
		return err
	}

	if typeID != XMLDataContentTag {
		return fmt.Errorf("six: DES type-id %q is not %s: %w", typeID, XMLDataContentTag, errs.ErrUnknownVersion)
	}

	return nil
}
