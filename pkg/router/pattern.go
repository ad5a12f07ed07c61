package router

import (
	"fmt"
	"path"
	"strings"
)

// Pattern is an ordered sequence of route segments together with its
// serialized URL form ("/", "/{id}", "/blog/{slug:path}").
//
// Serialization and parsing are inverse operations modulo group elision:
// group segments never appear in the serialized form, so a parsed
// pattern can never contain one.
type Pattern struct {
	segments []Segment
}

// NewPattern builds a pattern from classified segments.
func NewPattern(segments ...Segment) Pattern {
	return Pattern{segments: segments}
}

// Segments returns a copy of the pattern's segments.
func (p Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// String serializes the pattern. Group segments are elided; the empty
// pattern serializes to "/".
func (p Pattern) String() string {
	var b strings.Builder
	for _, seg := range p.segments {
		part, ok := seg.URL()
		if !ok {
			continue
		}
		b.WriteByte('/')
		b.WriteString(part)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// Params returns the parameter names in order, catch-all included.
func (p Pattern) Params() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.Kind == SegmentDynamic || seg.Kind == SegmentCatchAll {
			names = append(names, seg.Value)
		}
	}
	return names
}

// CatchAll reports whether the pattern ends in a catch-all segment and
// returns its parameter name.
func (p Pattern) CatchAll() (string, bool) {
	if n := len(p.segments); n > 0 && p.segments[n-1].Kind == SegmentCatchAll {
		return p.segments[n-1].Value, true
	}
	return "", false
}

// FilesystemPath rewrites the pattern back into a content-root-relative
// directory path: {name} becomes [name] and {name:path} becomes
// [[name]]. The result is "" for the root pattern.
//
// This inverse is lossy: group directories are absent from the URL and
// cannot be reconstructed. Request-time lookups must therefore use the
// source directory recorded at scan time (Entry.SourceDir) instead of
// round-tripping the URL string.
func (p Pattern) FilesystemPath() string {
	parts := make([]string, 0, len(p.segments))
	for _, seg := range p.segments {
		parts = append(parts, seg.FilesystemName())
	}
	return path.Join(parts...)
}

// ParsePattern parses a serialized pattern back into its segments. The
// catch-all marker is only valid on the final segment.
func ParsePattern(s string) (Pattern, error) {
	if s == "" || s[0] != '/' {
		return Pattern{}, fmt.Errorf("pattern %q must start with /", s)
	}
	if s == "/" {
		return Pattern{}, nil
	}

	raw := strings.Split(strings.Trim(s, "/"), "/")
	segments := make([]Segment, 0, len(raw))
	for i, part := range raw {
		if part == "" {
			return Pattern{}, fmt.Errorf("pattern %q has an empty segment", s)
		}
		if strings.HasPrefix(part, "{") != strings.HasSuffix(part, "}") {
			return Pattern{}, fmt.Errorf("pattern %q has unbalanced braces in %q", s, part)
		}
		if !strings.HasPrefix(part, "{") {
			segments = append(segments, Segment{Kind: SegmentStatic, Value: part})
			continue
		}

		inner := part[1 : len(part)-1]
		if inner == "" {
			return Pattern{}, fmt.Errorf("pattern %q has an unnamed parameter", s)
		}
		if name, ok := strings.CutSuffix(inner, ":path"); ok {
			if name == "" {
				return Pattern{}, fmt.Errorf("pattern %q has an unnamed catch-all", s)
			}
			if i != len(raw)-1 {
				return Pattern{}, fmt.Errorf("pattern %q has a catch-all before the final segment", s)
			}
			segments = append(segments, Segment{Kind: SegmentCatchAll, Value: name})
			continue
		}
		if strings.Contains(inner, ":") {
			return Pattern{}, fmt.Errorf("pattern %q has an unsupported parameter marker %q", s, part)
		}
		segments = append(segments, Segment{Kind: SegmentDynamic, Value: inner})
	}
	return Pattern{segments: segments}, nil
}
