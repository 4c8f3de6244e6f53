package six

import (
	"testing"

	"github.com/nitro-go/nitro/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindToDESSetsFixedFields(t *testing.T) {
	sh := record.NewDESubheader()

	out, err := BindToDES(sh, []byte("<SICD/>"))
	require.NoError(t, err)
	assert.Equal(t, []byte("<SICD/>"), out)

	typeID, err := sh.TypeID.AsString()
	require.NoError(t, err)
	assert.Equal(t, XMLDataContentTag, typeID)

	version, err := sh.Version.AsString()
	require.NoError(t, err)
	assert.Equal(t, DESVersion, version)

	assert.Len(t, sh.UserDefinedSubheaderFields, XMLDataContentSubheaderLength)
}

func TestExtractFromDESRejectsOtherTypeIDs(t *testing.T) {
	sh := record.NewDESubheader()
	require.NoError(t, sh.TypeID.SetString("CSSHUMP_DES"))

	err := ExtractFromDES(sh)
	assert.Error(t, err)
}

func TestExtractFromDESAcceptsXMLDataContent(t *testing.T) {
	sh := record.NewDESubheader()
	_, err := BindToDES(sh, []byte("<SIDD/>"))
	require.NoError(t, err)

	assert.NoError(t, ExtractFromDES(sh))
}
