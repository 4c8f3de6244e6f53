package iostream

import (
	"fmt"
	"io"

	"github.com/nitro-go/nitro/errs"
)

// MemoryChannel is an in-memory Channel, used by tests and by callers
// assembling a NITF file without touching disk.
type MemoryChannel struct {
	buf    []byte
	offset int64
}

// NewMemoryChannel wraps an existing byte slice (copied) as a Channel.
func NewMemoryChannel(initial []byte) *MemoryChannel {
	buf := make([]byte, len(initial))
	copy(buf, initial)

	return &MemoryChannel{buf: buf}
}

func (m *MemoryChannel) Read(p []byte) (int, error) {
	if m.offset >= int64(len(m.buf)) {
		return 0, io.EOF
	}

	n := copy(p, m.buf[m.offset:])
	m.offset += int64(n)

	return n, nil
}

func (m *MemoryChannel) Write(p []byte) (int, error) {
	end := m.offset + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}

	n := copy(m.buf[m.offset:end], p)
	m.offset = end

	return n, nil
}

func (m *MemoryChannel) Seek(offset int64, whence int) (int64, error) {
	var target int64

	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = m.offset + offset
	case io.SeekEnd:
		target = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("iostream: invalid whence %d: %w", whence, errs.ErrSeeking)
	}

	if target < 0 {
		return 0, fmt.Errorf("iostream: negative seek target %d: %w", target, errs.ErrSeeking)
	}

	m.offset = target

	return m.offset, nil
}

func (m *MemoryChannel) Size() (int64, error) {
	return int64(len(m.buf)), nil
}

func (m *MemoryChannel) Close() error {
	return nil
}

// Bytes returns the channel's current backing slice. Callers must not
// retain it across further writes.
func (m *MemoryChannel) Bytes() []byte {
	return m.buf
}
