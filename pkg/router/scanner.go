package router

import (
	"io/fs"
	"log/slog"
	"path/filepath"
)

// Well-known descriptor file names within a content directory.
const (
	PageTemplate      = "page.html"    // leaf page markup
	PageProvider      = "page.lua"     // data provider for the page
	LayoutTemplate    = "layout.html"  // layout wrapping descendant pages
	ErrorDescriptor   = "error.lua"    // error fallback handler
	LoadingDescriptor = "loading.lua"  // loading fallback handler
	APIDescriptor     = "route.lua"    // HTTP verb handlers
)

// VerbLister reports which HTTP verbs an API descriptor file exports.
// Implementations must contain load failures at the file granularity
// and report them as an empty verb list.
type VerbLister interface {
	Verbs(path string) []string
}

// Scanner walks the content root once, discovering every page and API
// descriptor and resolving it into a route entry.
type Scanner struct {
	resolver *Resolver
	verbs    VerbLister
	logger   *slog.Logger
}

// NewScanner creates a scanner over the given content root. verbs may
// be nil, in which case API descriptors register no entries.
func NewScanner(root string, verbs VerbLister, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		resolver: NewResolver(root),
		verbs:    verbs,
		logger:   logger,
	}
}

// Resolver returns the scanner's path resolver.
func (s *Scanner) Resolver() *Resolver {
	return s.resolver
}

// Scan builds a fresh table from a full walk of the content root.
// One unreadable directory or broken descriptor never aborts the scan;
// it is logged and the walk continues.
func (s *Scanner) Scan() (*Table, error) {
	table := newTable()

	root := s.resolver.Root()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("content walk error", "path", path, "error", err)
			return fs.SkipDir
		}
		if d.IsDir() {
			return nil
		}

		switch d.Name() {
		case PageTemplate:
			s.addPage(table, path)
		case APIDescriptor:
			s.addAPI(table, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return table, nil
}

func (s *Scanner) addPage(table *Table, path string) {
	rel, pattern, ok := s.resolveFile(path)
	if !ok {
		return
	}
	entry := Entry{
		Pattern:   pattern,
		Kind:      KindPage,
		SourceDir: sourceDir(rel),
	}
	s.logger.Debug("registering page route", "pattern", pattern.String(), "dir", entry.SourceDir)
	table.add(entry)
}

func (s *Scanner) addAPI(table *Table, path string) {
	rel, pattern, ok := s.resolveFile(path)
	if !ok {
		return
	}
	if s.verbs == nil {
		return
	}

	// One entry per exported verb, all under the same pattern.
	for _, verb := range s.verbs.Verbs(path) {
		if VerbMethod(verb) == "" {
			s.logger.Warn("ignoring unknown verb in API descriptor", "path", path, "verb", verb)
			continue
		}
		entry := Entry{
			Pattern:   pattern,
			Kind:      KindAPI,
			SourceDir: sourceDir(rel),
			Verb:      verb,
		}
		s.logger.Debug("registering API route", "pattern", pattern.String(), "verb", verb)
		table.add(entry)
	}
}

// sourceDir normalizes a descriptor's directory: the content root
// itself is recorded as "".
func sourceDir(rel string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return ""
	}
	return dir
}

func (s *Scanner) resolveFile(path string) (rel string, pattern Pattern, ok bool) {
	rel, err := filepath.Rel(s.resolver.Root(), path)
	if err != nil {
		s.logger.Warn("descriptor outside content root", "path", path, "error", err)
		return "", Pattern{}, false
	}
	pattern, ok = s.resolver.Resolve(rel)
	if !ok {
		s.logger.Warn("unresolvable descriptor path", "path", rel)
		return "", Pattern{}, false
	}
	return rel, pattern, true
}
