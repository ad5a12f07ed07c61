package router

import (
	"path/filepath"
	"strings"
)

// Resolver translates content-root-relative descriptor file paths into
// URL patterns, and patterns back into directories on disk.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given content root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Root returns the content root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps a content-root-relative file path to its route pattern.
// The final path element is the descriptor file name and never
// contributes a segment: a page descriptor directly at the content root
// resolves to "/", not "/page".
//
// Returns false for paths that are empty or escape the content root.
func (r *Resolver) Resolve(relFile string) (Pattern, bool) {
	relFile = filepath.ToSlash(relFile)
	if relFile == "" || strings.HasPrefix(relFile, "/") {
		return Pattern{}, false
	}

	parts := strings.Split(relFile, "/")
	dirs := parts[:len(parts)-1]

	segments := make([]Segment, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" || dir == "." || dir == ".." {
			return Pattern{}, false
		}
		segments = append(segments, ClassifySegment(dir))
	}
	return Pattern{segments: segments}, true
}

// Dir returns the absolute directory the pattern's descriptors would
// live in, by rewriting the serialized parameters back to their on-disk
// names. Group directories cannot be reconstructed this way; prefer the
// source directory recorded in the route entry when one is available.
func (r *Resolver) Dir(p Pattern) string {
	return filepath.Join(r.root, filepath.FromSlash(p.FilesystemPath()))
}
