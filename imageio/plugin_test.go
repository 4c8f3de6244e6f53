package imageio

import (
	"testing"

	"github.com/nitro-go/nitro/compress"
	"github.com/nitro-go/nitro/iostream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecBlockPluginRoundTrip(t *testing.T) {
	codec, err := compress.CreateCodec(compress.CodeNone, "")
	require.NoError(t, err)

	info := sampleInfo()
	ch := iostream.NewMemoryChannel(make([]byte, info.BlockSizeBytes()*int64(info.NumBlocks())))

	plugin := NewCodecBlockPlugin(codec)
	require.NoError(t, plugin.StartWrite(ch, 0, info))

	block := make([]byte, info.BlockSizeBytes())
	for i := range block {
		block[i] = byte(i)
	}

	require.NoError(t, plugin.WriteBlock(0, block))

	readPlugin := NewCodecBlockPlugin(codec)
	require.NoError(t, readPlugin.Start(ch, 0, 0, info, nil))

	got, err := readPlugin.ReadBlock(0)
	require.NoError(t, err)
	assert.Equal(t, block, got)

	assert.NoError(t, plugin.Destruct())
	plugin.FreeBlock(got)
}
