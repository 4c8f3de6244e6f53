package record

import (
	"github.com/nitro-go/nitro/tre"
)

// Extensions is the ordered sequence of TREs a subheader carries. Its
// own length is not stored here: the parent subheader's
// *-extension-length Field is recomputed from the sum of contained TRE
// sizes on write, and caps TRE parsing on read.
type Extensions struct {
	instances []*tre.Instance
	// Overflow, when non-nil, names the DES that carries any TREs that
	// did not fit the subheader's own extension-length field.
	Overflow *OverflowRef
}

// OverflowRef points from a subheader's Extensions to the overflow DES
// created to carry it.
type OverflowRef struct {
	DESIndex int
}

// NewExtensions creates an empty Extensions section.
func NewExtensions() *Extensions {
	return &Extensions{}
}

// Add appends inst to the section.
func (e *Extensions) Add(inst *tre.Instance) {
	e.instances = append(e.instances, inst)
}

// All returns the contained TRE instances in order. Callers must not
// mutate the returned slice's length; mutate in place or use Add/Remove.
func (e *Extensions) All() []*tre.Instance {
	return e.instances
}

// Remove deletes the TRE at index.
func (e *Extensions) Remove(index int) {
	e.instances = append(e.instances[:index], e.instances[index+1:]...)
}

// Len returns the number of contained TREs.
func (e *Extensions) Len() int {
	return len(e.instances)
}

// EncodedSize returns the total wire size (including each TRE's 11-byte
// prefix) if encoded right now with registry.
func (e *Extensions) EncodedSize(registry *tre.Registry) (int, error) {
	total := 0

	for _, inst := range e.instances {
		payload, err := registry.EncodeTRE(inst)
		if err != nil {
			return 0, err
		}

		total += tre.TagLength + len(payload)
	}

	return total, nil
}

// Bytes encodes every contained TRE in order, each framed with its 11-byte
// tag+length prefix.
func (e *Extensions) Bytes(registry *tre.Registry) ([]byte, error) {
	var out []byte

	for _, inst := range e.instances {
		payload, err := registry.EncodeTRE(inst)
		if err != nil {
			return nil, err
		}

		framed, err := tre.WriteOne(inst.Tag, payload)
		if err != nil {
			return nil, err
		}

		out = append(out, framed...)
	}

	return out, nil
}

// ParseExtensions reads TREs from data until capLen bytes are consumed.
func ParseExtensions(registry *tre.Registry, data []byte, capLen int) (*Extensions, error) {
	ext := NewExtensions()

	if capLen > len(data) {
		capLen = len(data)
	}

	offset := 0
	for offset < capLen {
		tag, payload, next, err := tre.ReadOne(data[:capLen], offset)
		if err != nil {
			return nil, err
		}

		inst, err := registry.ParseTRE(tag, payload)
		if err != nil {
			return nil, err
		}

		ext.Add(inst)
		offset = next
	}

	return ext, nil
}

// Clone returns a deep copy. TRE Instances are copied field-by-field via
// re-encode/parse through registry so the clone shares no storage with
// the original.
func (e *Extensions) Clone(registry *tre.Registry) (*Extensions, error) {
	clone := NewExtensions()

	for _, inst := range e.instances {
		if inst.IsOpaque() {
			cp := tre.NewInstance(inst.Tag)
			cp.Length = inst.Length
			cp.Opaque = append([]byte(nil), inst.Opaque...)
			clone.Add(cp)

			continue
		}

		payload, err := registry.EncodeTRE(inst)
		if err != nil {
			return nil, err
		}

		cp, err := registry.ParseTRE(inst.Tag, payload)
		if err != nil {
			return nil, err
		}

		clone.Add(cp)
	}

	if e.Overflow != nil {
		ov := *e.Overflow
		clone.Overflow = &ov
	}

	return clone, nil
}
