// Package iostream provides the seekable byte-channel abstraction and
// the plugin-provider abstraction used by the TRE engine's dynamic
// loader.
//
// Any concrete stream a Reader/Writer drives — an on-disk file, an
// in-memory buffer, or a caller-supplied implementation — must implement
// the six operations of Channel. Go's os.File and bytes.Reader already
// satisfy most of io.ReadWriteSeeker; Channel adds Size and a Close that
// tolerates being called on streams with no backing descriptor.
package iostream

import "io"

// Channel is the total interface a NITF byte source/sink must implement:
// read, write, seek, tell, size, close. It is satisfied by *FileChannel
// and *MemoryChannel; *os.File alone lacks Size.
type Channel interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Size returns the total size of the channel's backing storage in
	// bytes.
	Size() (int64, error)
}

// Tell returns the channel's current offset without moving it, by seeking
// relative zero — the io.Seeker equivalent of ftell.
func Tell(ch Channel) (int64, error) {
	return ch.Seek(0, io.SeekCurrent)
}
