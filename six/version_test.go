package six

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNamespace(t *testing.T) {
	cases := []struct {
		uri    string
		family Family
		want   Version
	}{
		{"urn:SICD:1.2.1", FamilySICD, Version{1, 2, 1}},
		{"urn:SIDD:3.0.0", FamilySIDD, Version{3, 0, 0}},
		{"urn:CPHD:1.0.1", FamilyCPHD, Version{1, 0, 1}},
	}

	for _, c := range cases {
		family, version, err := ParseNamespace(c.uri)
		require.NoError(t, err)
		assert.Equal(t, c.family, family)
		assert.Equal(t, c.want, version)
	}
}

func TestParseNamespaceUnknown(t *testing.T) {
	_, _, err := ParseNamespace("urn:FOO:1.0.0")
	assert.Error(t, err)
}

func TestParseNamespaceMalformedVersion(t *testing.T) {
	_, _, err := ParseNamespace("urn:SICD:1.2")
	assert.Error(t, err)

	_, _, err = ParseNamespace("urn:SICD:1.a.1")
	assert.Error(t, err)
}

func TestNamespaceRoundTrip(t *testing.T) {
	uri := Namespace(FamilySIDD, Version{3, 0, 0})
	assert.Equal(t, "urn:SIDD:3.0.0", uri)

	family, version, err := ParseNamespace(uri)
	require.NoError(t, err)
	assert.Equal(t, FamilySIDD, family)
	assert.Equal(t, Version{3, 0, 0}, version)
}

func TestVersionLess(t *testing.T) {
	assert.True(t, Version{1, 0, 0}.Less(Version{1, 2, 1}))
	assert.False(t, Version{1, 2, 1}.Less(Version{1, 0, 0}))
	assert.False(t, Version{1, 2, 1}.Less(Version{1, 2, 1}))
}
