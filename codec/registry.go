package codec

import (
	"strings"
	"sync"

	"github.com/cfgdoc/cfgdoc/debug"
	"github.com/cfgdoc/cfgdoc/format"
	"github.com/cfgdoc/cfgdoc/ir"
)

// Constructor builds a fresh codec instance for a registered key.
type Constructor func() Codec

// Registry maps format keys to codec constructors. It is an explicit
// owned structure, not package-level state: callers hold one and may
// keep registering at runtime. Keys are case-insensitive. Registration
// is safe to run concurrently with lookups.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: map[string]Constructor{},
	}
}

// Register adds or replaces the codec for key.
func (r *Registry) Register(key string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[strings.ToLower(key)] = ctor
}

// Keys returns the registered keys, unordered.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	return keys
}

// Codec returns a codec for key.
func (r *Registry) Codec(key string) (Codec, error) {
	r.mu.RLock()
	ctor, ok := r.codecs[strings.ToLower(key)]
	r.mu.RUnlock()
	if !ok {
		return nil, &ir.UnsupportedFormatError{Key: key}
	}
	return ctor(), nil
}

// ForFormat returns a codec for a detected format.
func (r *Registry) ForFormat(f format.Format) (Codec, error) {
	return r.Codec(f.String())
}

// Resolve detects the format of filename (sniffing content for
// ".config" files) and returns the matching codec.
func (r *Registry) Resolve(filename string, content []byte) (Codec, error) {
	f, err := format.Detect(filename, content)
	if err != nil {
		ext := filename
		if i := strings.LastIndexByte(filename, '.'); i >= 0 {
			ext = filename[i+1:]
		}
		return nil, &ir.UnsupportedFormatError{Key: ext}
	}
	if debug.Codec() {
		debug.Logf("resolved %q to format %s\n", filename, f)
	}
	return r.ForFormat(f)
}
