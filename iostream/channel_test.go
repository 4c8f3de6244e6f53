package iostream

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitro-go/nitro/errs"
)

func TestMemoryChannelReadWriteSeek(t *testing.T) {
	ch := NewMemoryChannel([]byte("hello"))

	size, err := ch.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	buf := make([]byte, 5)
	n, err := ch.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	// Past the end: end-of-stream, not an I/O error.
	_, err = ch.Read(buf)
	assert.ErrorIs(t, err, io.EOF)

	pos, err := ch.Seek(1, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pos)

	_, err = ch.Write([]byte("ELLO!"))
	require.NoError(t, err)

	size, err = ch.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)
	assert.Equal(t, "hELLO!", string(ch.Bytes()))
}

func TestMemoryChannelWriteGrows(t *testing.T) {
	ch := NewMemoryChannel(nil)

	_, err := ch.Seek(3, io.SeekStart)
	require.NoError(t, err)

	n, err := ch.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	size, err := ch.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)
	assert.Equal(t, []byte{0, 0, 0, 'a', 'b', 'c'}, ch.Bytes())
}

func TestMemoryChannelSeekErrors(t *testing.T) {
	ch := NewMemoryChannel([]byte("x"))

	_, err := ch.Seek(-2, io.SeekStart)
	assert.ErrorIs(t, err, errs.ErrSeeking)

	_, err = ch.Seek(0, 99)
	assert.ErrorIs(t, err, errs.ErrSeeking)
}

func TestTell(t *testing.T) {
	ch := NewMemoryChannel([]byte("abcdef"))

	_, err := ch.Seek(4, io.SeekStart)
	require.NoError(t, err)

	pos, err := Tell(ch)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)
}

func TestFileChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channel.bin")

	ch, err := OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)

	_, err = ch.Write([]byte("0123456789"))
	require.NoError(t, err)

	size, err := ch.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	_, err = ch.Seek(2, io.SeekStart)
	require.NoError(t, err)

	buf := make([]byte, 3)
	_, err = io.ReadFull(ch, buf)
	require.NoError(t, err)
	assert.Equal(t, "234", string(buf))

	require.NoError(t, ch.Close())
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider()

	err := p.Load("ACFTB")
	assert.ErrorIs(t, err, errs.ErrLoadingPlugin)

	p.Register("ACFTB", map[string]Hook{
		"ACFTB_handler": func() string { return "ok" },
	})

	require.NoError(t, p.Load("ACFTB"))
	assert.True(t, p.IsValid("ACFTB"))

	hook, err := p.Resolve("ACFTB", "ACFTB_handler")
	require.NoError(t, err)

	fn, ok := hook.(func() string)
	require.True(t, ok)
	assert.Equal(t, "ok", fn())

	_, err = p.Resolve("ACFTB", "ACFTB_init")
	assert.ErrorIs(t, err, errs.ErrRetrievingHook)

	_, err = p.Resolve("STREOB", "STREOB_handler")
	assert.ErrorIs(t, err, errs.ErrUninitializedRead)

	require.NoError(t, p.Unload("ACFTB"))
	assert.False(t, p.IsValid("ACFTB"))
}

func TestResolvePluginPath(t *testing.T) {
	assert.Nil(t, ResolvePluginPath(""))

	sep := string(os.PathListSeparator)
	dirs := ResolvePluginPath("/opt/tres" + sep + " " + sep + "./plugins/")
	assert.Equal(t, []string{"/opt/tres", "plugins"}, dirs)
}
