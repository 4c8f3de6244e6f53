package tre

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/nitro-go/nitro/errs"
	"github.com/nitro-go/nitro/iostream"
)

// Registry is the TRE plugin registry: keyed by
// 6-character TRE tag, holding one or more DescriptorSets distinguished by
// expected on-the-wire length. Descriptor sets come only from in-process
// registration (RegisterStatic); for a tag with none, the configured
// iostream.Provider is asked to Load it, but a successful Load adds no
// descriptor sets. The registry caches
// the first successful resolution per tag, keyed by an xxHash64 of
// tag+length so repeated lookups for the same (tag, length) pair are O(1)
// without re-walking the candidate list.
//
// The registry is an explicit value rather than process-global state so
// tests can instantiate a private instance with its own lifecycle.
type Registry struct {
	mu       sync.RWMutex
	sets     map[string][]DescriptorSet
	provider iostream.Provider
	cache    map[uint64]*DescriptorSet
}

// NewRegistry creates an empty registry backed by provider (nil defaults
// to a fresh iostream.StaticProvider, i.e. no dynamic loading).
func NewRegistry(provider iostream.Provider) *Registry {
	if provider == nil {
		provider = iostream.NewStaticProvider()
	}

	return &Registry{
		sets:     make(map[string][]DescriptorSet),
		provider: provider,
		cache:    make(map[uint64]*DescriptorSet),
	}
}

// RegisterStatic adds an in-process descriptor set for tag. This is the
// "first-class, already-loaded" registration path; dynamic plugin
// resolution via the Provider is only consulted for tags with no
// statically registered sets.
func (r *Registry) RegisterStatic(tag string, sets ...DescriptorSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[tag] = append(r.sets[tag], sets...)
}

func cacheKey(tag string, length int) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(tag)
	_, _ = h.Write([]byte{byte(length), byte(length >> 8), byte(length >> 16), byte(length >> 24)})

	return h.Sum64()
}

// Resolve selects the DescriptorSet for tag whose declared length
// equals wireLength, or the Wildcard fallback if present. An
// exact-length match wins over the wildcard, which is always tried last
// regardless of registration order.
//
// Returns (nil, false) rather than an error when the tag is entirely
// unknown or no variant matches — callers treat that as "fall back to an
// opaque blob," not a hard failure.
func (r *Registry) Resolve(tag string, wireLength int) (*DescriptorSet, bool) {
	key := cacheKey(tag, wireLength)

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()

		return cached, true
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	sets, ok := r.sets[tag]
	if !ok {
		if err := r.provider.Load(tag); err == nil {
			// A loaded plugin contributes no descriptor sets here; only
			// sets added with RegisterStatic are used.
			sets = r.sets[tag]
		}
	}

	var wildcard *DescriptorSet

	for i := range sets {
		if sets[i].Wildcard {
			wildcard = &sets[i]

			continue
		}

		if sets[i].ExpectedLength == wireLength {
			r.cache[key] = &sets[i]

			return &sets[i], true
		}
	}

	if wildcard != nil {
		r.cache[key] = wildcard

		return wildcard, true
	}

	return nil, false
}

// ParseTRE resolves tag+wireLength against r and parses payload, falling
// back to an opaque Instance when no descriptor set is found.
func (r *Registry) ParseTRE(tag string, payload []byte) (*Instance, error) {
	set, ok := r.Resolve(tag, len(payload))
	if !ok {
		inst := NewInstance(tag)
		inst.Length = len(payload)
		inst.Opaque = append([]byte(nil), payload...)

		return inst, nil
	}

	inst, err := Parse(tag, set.Descriptor, payload)
	if err != nil {
		return nil, fmt.Errorf("tre: %w", err)
	}

	return inst, nil
}

// EncodeTRE re-encodes inst using tag+inst.Length's resolved descriptor
// set. An opaque Instance round-trips its raw bytes verbatim.
func (r *Registry) EncodeTRE(inst *Instance) ([]byte, error) {
	if inst.IsOpaque() {
		return inst.Opaque, nil
	}

	set, ok := r.Resolve(inst.Tag, inst.Length)
	if !ok {
		return nil, fmt.Errorf("tre: %s: %w", inst.Tag, errs.ErrUnknownTRETag)
	}

	return Encode(inst.Tag, set.Descriptor, inst)
}
