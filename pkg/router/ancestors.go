package router

import (
	"os"
	"path/filepath"
	"strings"
)

// Chain holds the optional descriptor paths found along a route's
// ancestor directories, root-first. Each list is independent: a level
// may contribute a layout but no error handler, or neither.
//
// Paths are content-root-relative, suitable both as template
// identifiers and for joining with the content root.
type Chain struct {
	Layouts  []string
	Errors   []string
	Loadings []string
}

// Finder enumerates the ancestor directories of a resolved route and
// checks each for layout, error and loading descriptors.
//
// It walks the concrete source directory recorded at scan time, not the
// abstract pattern: a dynamic segment still maps to exactly one
// directory on disk, and group directories are only visible here.
type Finder struct {
	root string
}

// NewFinder creates a finder over the given content root.
func NewFinder(root string) *Finder {
	return &Finder{root: root}
}

// Find rebuilds the descriptor chain for a route's source directory
// ("" for the content root). Missing descriptors at a level are
// skipped; the chain is derived fresh on every call.
func (f *Finder) Find(sourceDir string) Chain {
	var chain Chain

	levels := []string{""}
	if sourceDir != "" {
		acc := ""
		for _, part := range strings.Split(sourceDir, "/") {
			if acc == "" {
				acc = part
			} else {
				acc = acc + "/" + part
			}
			levels = append(levels, acc)
		}
	}

	for _, level := range levels {
		if rel, ok := f.present(level, LayoutTemplate); ok {
			chain.Layouts = append(chain.Layouts, rel)
		}
		if rel, ok := f.present(level, ErrorDescriptor); ok {
			chain.Errors = append(chain.Errors, rel)
		}
		if rel, ok := f.present(level, LoadingDescriptor); ok {
			chain.Loadings = append(chain.Loadings, rel)
		}
	}
	return chain
}

func (f *Finder) present(level, name string) (string, bool) {
	rel := name
	if level != "" {
		rel = level + "/" + name
	}
	info, err := os.Stat(filepath.Join(f.root, filepath.FromSlash(rel)))
	if err != nil || info.IsDir() {
		return "", false
	}
	return rel, true
}
