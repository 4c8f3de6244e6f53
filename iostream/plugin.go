package iostream

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nitro-go/nitro/errs"
)

// Hook is a resolved plugin symbol, the shared-object-loader equivalent
// of an untyped function pointer. Callers type-assert it to the
// concrete function signature they expect.
type Hook any

// Provider abstracts the shared-object loader: load, unload, resolve.
// It has two implementations so static-linking builds (embedded
// targets, sandboxes without dlopen) can substitute a compiled-in
// registry for the dynamic loader.
type Provider interface {
	// Load makes the plugin named by path available for symbol
	// resolution. For StaticProvider, path is a logical key, not a
	// filesystem path.
	Load(path string) error
	// Unload releases the plugin. Safe to call on an unloaded path.
	Unload(path string) error
	// IsValid reports whether path currently has a loaded plugin.
	IsValid(path string) bool
	// Resolve looks up symbol in the plugin loaded from path.
	Resolve(path, symbol string) (Hook, error)
}

// StaticProvider is a compiled-in registry: Register pairs a logical
// path (conventionally the TRE tag) with a map of symbol name to Hook.
// This is the default provider; no plugin is ever auto-loaded.
type StaticProvider struct {
	mu      sync.Mutex
	symbols map[string]map[string]Hook
}

// NewStaticProvider creates an empty static registry.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{symbols: make(map[string]map[string]Hook)}
}

// Register adds path's symbol table to the registry. Safe to call before
// or instead of Load.
func (p *StaticProvider) Register(path string, symbols map[string]Hook) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.symbols[path] = symbols
}

func (p *StaticProvider) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.symbols[path]; !ok {
		return fmt.Errorf("iostream: no statically registered plugin for %q: %w", path, errs.ErrLoadingPlugin)
	}

	return nil
}

func (p *StaticProvider) Unload(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.symbols, path)

	return nil
}

func (p *StaticProvider) IsValid(path string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.symbols[path]

	return ok
}

func (p *StaticProvider) Resolve(path, symbol string) (Hook, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	table, ok := p.symbols[path]
	if !ok {
		return nil, fmt.Errorf("iostream: plugin %q not loaded: %w", path, errs.ErrUninitializedRead)
	}

	hook, ok := table[symbol]
	if !ok {
		return nil, fmt.Errorf("iostream: plugin %q has no symbol %q: %w", path, symbol, errs.ErrRetrievingHook)
	}

	return hook, nil
}

var _ Provider = (*StaticProvider)(nil)

// ResolvePluginPath splits a NITRO_PLUGIN_PATH-style environment value
// (colon-separated on POSIX) into its candidate directories, in search
// order.
func ResolvePluginPath(envValue string) []string {
	if envValue == "" {
		return nil
	}

	parts := strings.Split(envValue, string(os.PathListSeparator))
	dirs := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			dirs = append(dirs, filepath.Clean(p))
		}
	}

	return dirs
}
