package field

import (
	"fmt"
	"strconv"

	"github.com/nitro-go/nitro/endian"
)

// Dynamic is the resizable Field variant used only during TRE assembly
// (package tre), where a descriptor's computed-length or loop-driven field
// is not pinned to a fixed width ahead of time. Once a Dynamic field is
// finalized with Freeze, callers get back a fixed-width Field.
type Dynamic struct {
	category Category
	data     []byte
}

// NewDynamic creates an empty resizable field of the given category.
func NewDynamic(category Category) *Dynamic {
	return &Dynamic{category: category}
}

// SetString replaces the buffer with s verbatim (no padding — padding is a
// property of a fixed-width Field, applied at Freeze time by the caller if
// needed).
func (d *Dynamic) SetString(s string) {
	d.data = []byte(s)
}

// SetUint replaces the buffer with the decimal rendering of v.
func (d *Dynamic) SetUint(v uint64) {
	d.data = []byte(strconv.FormatUint(v, 10))
}

// SetRaw replaces the buffer with a copy of b.
func (d *Dynamic) SetRaw(b []byte) {
	d.data = append(d.data[:0], b...)
}

// Len returns the current buffer length.
func (d *Dynamic) Len() int { return len(d.data) }

// Bytes returns the current buffer. Callers must not mutate it.
func (d *Dynamic) Bytes() []byte { return d.data }

// Freeze produces a fixed-width Field of the requested length, padding (or
// erroring, via the same rules as Field.SetRaw/SetString) to fit.
func (d *Dynamic) Freeze(length int) (*Field, error) {
	f := New(d.category, length)
	switch d.category {
	case BCSA, BCSAPlus, BCSN, BCSNPlus:
		if err := f.SetString(string(d.data)); err != nil {
			return nil, fmt.Errorf("field: freezing dynamic field: %w", err)
		}
	case Binary:
		if err := f.SetRaw(d.data); err != nil {
			return nil, fmt.Errorf("field: freezing dynamic field: %w", err)
		}
	}

	return f, nil
}

// FreezeBinaryUint freezes a numeric value directly as a big-endian BINARY
// field of the given width, bypassing the text buffer entirely.
func (d *Dynamic) FreezeBinaryUint(engine endian.EndianEngine, width int, v uint64) (*Field, error) {
	f := New(Binary, width)
	if err := f.SetUint(engine, v); err != nil {
		return nil, err
	}

	return f, nil
}
