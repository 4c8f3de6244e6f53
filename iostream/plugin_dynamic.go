//go:build (linux || darwin) && cgo

package iostream

import (
	"fmt"
	"plugin"
	"sync"

	"github.com/nitro-go/nitro/errs"
)

// DynamicProvider resolves TRE plugins from real shared objects
// (.so/.dylib) using Go's plugin package, following the "<tag>_init" /
// "<tag>_handler" export convention. Only available on platforms Go's
// plugin package supports; static builds use StaticProvider instead.
type DynamicProvider struct {
	mu      sync.Mutex
	plugins map[string]*plugin.Plugin
}

// NewDynamicProvider creates an empty dynamic loader.
func NewDynamicProvider() *DynamicProvider {
	return &DynamicProvider{plugins: make(map[string]*plugin.Plugin)}
}

func (p *DynamicProvider) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.plugins[path]; ok {
		return nil
	}

	pl, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("iostream: loading plugin %q: %w: %w", path, err, errs.ErrLoadingPlugin)
	}

	p.plugins[path] = pl

	return nil
}

func (p *DynamicProvider) Unload(path string) error {
	// Go's plugin package offers no unload primitive; a loaded .so lives
	// for the process lifetime. Evict the cache entry so Load re-resolves
	// a fresh handle on a future version bump during tests that reload
	// under a different build.
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.plugins, path)

	return nil
}

func (p *DynamicProvider) IsValid(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.plugins[path]

	return ok
}

func (p *DynamicProvider) Resolve(path, symbol string) (Hook, error) {
	p.mu.Lock()
	pl, ok := p.plugins[path]
	p.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("iostream: plugin %q not loaded: %w", path, errs.ErrUninitializedRead)
	}

	sym, err := pl.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("iostream: resolving %q in %q: %w: %w", symbol, path, err, errs.ErrRetrievingHook)
	}

	return Hook(sym), nil
}

var _ Provider = (*DynamicProvider)(nil)
