package tre

import (
	"github.com/nitro-go/nitro/field"
)

// Instance is a parsed TRE: a flat ordered map from dotted field-path
// (e.g. "AXISNAME[3]") to Field. The descriptor that
// produced it is the sole source of truth about encoding; Instance itself
// is just storage plus iteration order.
//
// When no descriptor could be resolved for a tag (unknown tag, or no
// variant matches the payload length), Opaque holds the raw bytes instead
// and Fields/order are empty.
type Instance struct {
	Tag    string
	Length int // on-the-wire payload length, excluding the 11-byte prefix

	fields map[string]*field.Field
	order  []string

	Opaque []byte
}

// NewInstance creates an empty, resolved Instance for tag.
func NewInstance(tag string) *Instance {
	return &Instance{Tag: tag, fields: make(map[string]*field.Field)}
}

// IsOpaque reports whether this Instance is an unresolved byte blob.
func (inst *Instance) IsOpaque() bool {
	return inst.Opaque != nil
}

// Field implements FieldLookup.
func (inst *Instance) Field(dottedPath string) (*field.Field, bool) {
	f, ok := inst.fields[dottedPath]

	return f, ok
}

// Set stores f under dottedPath, appending it to iteration order if new.
func (inst *Instance) Set(dottedPath string, f *field.Field) {
	if _, exists := inst.fields[dottedPath]; !exists {
		inst.order = append(inst.order, dottedPath)
	}

	inst.fields[dottedPath] = f
}

// Get returns the Field at dottedPath. Reporting a miss as an error is
// the caller's responsibility; Get here just reports ok.
func (inst *Instance) Get(dottedPath string) (*field.Field, bool) {
	f, ok := inst.fields[dottedPath]

	return f, ok
}

// Iter yields (dotted-name, Field) pairs in descriptor order. The
// returned iterator is restartable.
func (inst *Instance) Iter() func(yield func(string, *field.Field) bool) {
	return func(yield func(string, *field.Field) bool) {
		for _, name := range inst.order {
			if !yield(name, inst.fields[name]) {
				return
			}
		}
	}
}

// Len returns the number of populated fields.
func (inst *Instance) Len() int {
	return len(inst.order)
}
