package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitro-go/nitro/tre"
)

func TestExtensionsRoundTripWithRegistry(t *testing.T) {
	registry := tre.NewRegistry(nil)
	tre.RegisterBundled(registry)

	ext := NewExtensions()

	payload := make([]byte, 74)
	copy(payload, []byte("0001"))
	inst, err := registry.ParseTRE("PATCHA", payload)
	require.NoError(t, err)
	ext.Add(inst)

	size, err := ext.EncodedSize(registry)
	require.NoError(t, err)
	assert.Equal(t, tre.TagLength+74, size)

	encoded, err := ext.Bytes(registry)
	require.NoError(t, err)

	parsed, err := ParseExtensions(registry, encoded, len(encoded))
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.Len())
}

func TestExtensionsOpaqueTREPreserved(t *testing.T) {
	registry := tre.NewRegistry(nil)

	ext := NewExtensions()
	inst, err := registry.ParseTRE("ZZZZZZ", []byte("abc"))
	require.NoError(t, err)
	ext.Add(inst)

	clone, err := ext.Clone(registry)
	require.NoError(t, err)

	all := clone.All()
	require.Len(t, all, 1)
	assert.True(t, all[0].IsOpaque())
	assert.Equal(t, []byte("abc"), all[0].Opaque)
}

func TestExtensionsRemove(t *testing.T) {
	registry := tre.NewRegistry(nil)
	ext := NewExtensions()

	a, _ := registry.ParseTRE("ZZZZZZ", []byte("a"))
	b, _ := registry.ParseTRE("ZZZZZZ", []byte("b"))
	ext.Add(a)
	ext.Add(b)

	ext.Remove(0)
	require.Equal(t, 1, ext.Len())
	assert.Equal(t, []byte("b"), ext.All()[0].Opaque)
}
