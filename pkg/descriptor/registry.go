package descriptor

import (
	"path"
	"sync"
)

// Registry holds natively registered Go handlers keyed by
// content-root-relative directory ("" for the content root). It is the
// compile-time alternative to Lua descriptors for projects that prefer
// Go: a registry entry shadows the descriptor files in its directory
// for every capability it defines.
type Registry struct {
	mu    sync.RWMutex
	byDir map[string]Handlers
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byDir: make(map[string]Handlers)}
}

// Register claims capabilities for a content directory. Registering the
// same directory twice replaces the previous entry.
func (r *Registry) Register(dir string, h Handlers) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byDir[normalizeDir(dir)] = h
}

// Lookup returns the handlers registered for a directory.
func (r *Registry) Lookup(dir string) (Handlers, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byDir[normalizeDir(dir)]
	return h, ok
}

func normalizeDir(dir string) string {
	dir = path.Clean("/" + dir)
	if dir == "/" {
		return ""
	}
	return dir[1:]
}
