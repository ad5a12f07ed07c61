package descriptor

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

// Loader resolves descriptor capabilities for content directories. The
// native registry is consulted first; otherwise the Lua file is loaded
// in an isolated state. Load failures are contained at the file
// granularity: they are logged and reported as "capability absent",
// never propagated, so one broken file cannot prevent the rest of the
// tree from serving.
type Loader struct {
	root     string
	registry *Registry
	logger   *slog.Logger
	client   *http.Client
}

// File names of the code-bearing descriptors the loader understands.
const (
	providerFile = "page.lua"
	apiFile      = "route.lua"
)

// NewLoader creates a loader over the given content root. registry may
// be nil when no native handlers are used.
func NewLoader(root string, registry *Registry, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Loader{
		root:     root,
		registry: registry,
		logger:   logger,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Registry returns the loader's native registry.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Provider returns the data provider for a content directory, together
// with a release function, or ok=false when the directory has none.
func (l *Loader) Provider(dir string) (fn ProviderFunc, release func(), ok bool) {
	if h, found := l.registry.Lookup(dir); found && h.Provider != nil {
		return h.Provider, func() {}, true
	}

	file := l.open(path.Join(dir, providerFile))
	if file == nil {
		return nil, nil, false
	}
	fn, ok = file.provider()
	if !ok {
		l.logger.Warn("provider descriptor exports no provider function",
			"path", file.rel, "accepted", providerAliases)
		file.close()
		return nil, nil, false
	}
	return fn, file.close, true
}

// HasProvider reports whether a provider exists for the directory
// without loading it.
func (l *Loader) HasProvider(dir string) bool {
	if h, found := l.registry.Lookup(dir); found && h.Provider != nil {
		return true
	}
	return l.exists(path.Join(dir, providerFile))
}

// VerbHandler returns the handler for one HTTP verb of the API
// descriptor in dir.
func (l *Loader) VerbHandler(dir, verb string) (fn APIFunc, release func(), ok bool) {
	if h, found := l.registry.Lookup(dir); found && len(h.Verbs) > 0 {
		fn, ok := h.Verbs[verb]
		if !ok {
			return nil, nil, false
		}
		return fn, func() {}, true
	}

	file := l.open(path.Join(dir, apiFile))
	if file == nil {
		return nil, nil, false
	}
	fn, ok = file.verbHandler(verb)
	if !ok {
		file.close()
		return nil, nil, false
	}
	return fn, file.close, true
}

// ErrorHandler loads the error descriptor at the given content-relative
// path (as discovered by the ancestor finder).
func (l *Loader) ErrorHandler(rel string) (fn ErrorFunc, release func(), ok bool) {
	if h, found := l.registry.Lookup(path.Dir(rel)); found && h.Error != nil {
		return h.Error, func() {}, true
	}

	file := l.open(rel)
	if file == nil {
		return nil, nil, false
	}
	fn, ok = file.errorHandler()
	if !ok {
		l.logger.Warn("error descriptor exports no handler",
			"path", file.rel, "accepted", errorAliases)
		file.close()
		return nil, nil, false
	}
	return fn, file.close, true
}

// LoadingHandler loads the loading descriptor at the given
// content-relative path.
func (l *Loader) LoadingHandler(rel string) (fn LoadingFunc, release func(), ok bool) {
	if h, found := l.registry.Lookup(path.Dir(rel)); found && h.Loading != nil {
		return h.Loading, func() {}, true
	}

	file := l.open(rel)
	if file == nil {
		return nil, nil, false
	}
	fn, ok = file.loadingHandler()
	if !ok {
		l.logger.Warn("loading descriptor exports no handler",
			"path", file.rel, "accepted", loadingAliases)
		file.close()
		return nil, nil, false
	}
	return fn, file.close, true
}

// Verbs implements the scanner's VerbLister over an absolute API
// descriptor path. Registry entries shadow the file.
func (l *Loader) Verbs(absPath string) []string {
	rel, err := filepath.Rel(l.root, absPath)
	if err != nil {
		l.logger.Warn("API descriptor outside content root", "path", absPath)
		return nil
	}
	dir := path.Dir(filepath.ToSlash(rel))
	if dir == "." {
		dir = ""
	}

	if h, found := l.registry.Lookup(dir); found && len(h.Verbs) > 0 {
		verbs := make([]string, 0, len(h.Verbs))
		for _, verb := range verbOrder {
			if _, ok := h.Verbs[verb]; ok {
				verbs = append(verbs, verb)
			}
		}
		return verbs
	}

	file := l.open(path.Join(dir, apiFile))
	if file == nil {
		return nil
	}
	defer file.close()
	return file.verbs()
}

// open loads a Lua descriptor by content-relative path. Returns nil
// when the file is absent or fails to load; failures are logged here.
func (l *Loader) open(rel string) *luaFile {
	abs := filepath.Join(l.root, filepath.FromSlash(rel))
	if !l.exists(rel) {
		return nil
	}

	file, err := loadLuaFile(abs, rel, l.client)
	if err != nil {
		l.logger.Error("failed to load descriptor", "path", rel, "error", err)
		return nil
	}
	return file
}

func (l *Loader) exists(rel string) bool {
	info, err := os.Stat(filepath.Join(l.root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}
