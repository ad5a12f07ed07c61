// Package assets resolves fingerprinted static asset paths.
//
// A deploy step may fingerprint static files and write a manifest.json
// into the static directory mapping source names to hashed names:
//
//	{
//	  "css/site.css": "css/site.e5f6a7b8.css",
//	  "js/app.js": "js/app.a1b2c3d4.js"
//	}
//
// When a manifest is present, templates resolve assets through the
// asset function and get the fingerprinted path back:
//
//	<link rel="stylesheet" href="{{ asset("css/site.css") }}">
//	<!-- renders: /static/css/site.e5f6a7b8.css -->
//
// Without a manifest the same expression passes the path through
// unchanged, so templates are identical in development and production.
package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// ManifestName is the manifest file looked up in the static directory.
const ManifestName = "manifest.json"

// Manifest holds the mapping from source asset paths to fingerprinted
// paths. It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// Load reads a manifest file in JSON format:
// {"css/site.css": "css/site.abc123.css"}
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return &Manifest{entries: entries}, nil
}

// LoadDir reads ManifestName from the given static directory. It
// returns (nil, nil) when the directory has no manifest.
func LoadDir(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(path)
}

// Resolve returns the fingerprinted path for the given source path, or
// the source path unchanged when it is not in the manifest.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has reports whether the manifest contains the given source path.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[source]
	return ok
}

// Set adds or updates an entry.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[source] = resolved
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}
