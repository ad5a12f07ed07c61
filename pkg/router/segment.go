package router

import "strings"

// SegmentKind classifies one directory segment of the content tree.
type SegmentKind int

const (
	// SegmentStatic matches its name verbatim, case-sensitively.
	SegmentStatic SegmentKind = iota

	// SegmentDynamic matches exactly one path component ("[name]" on disk).
	SegmentDynamic

	// SegmentCatchAll matches the remaining path, slashes included
	// ("[[name]]" on disk).
	SegmentCatchAll

	// SegmentGroup contributes to the filesystem path but is elided from
	// the URL pattern ("(name)" on disk).
	SegmentGroup
)

// String returns the kind name for logs and error messages.
func (k SegmentKind) String() string {
	switch k {
	case SegmentStatic:
		return "static"
	case SegmentDynamic:
		return "dynamic"
	case SegmentCatchAll:
		return "catch-all"
	case SegmentGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Segment is one classified path segment. Value holds the static name,
// the parameter name, or the group name depending on Kind.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// ClassifySegment maps a single filesystem segment to its route segment.
//
// The double-bracket test must run before the single-bracket test: a
// catch-all segment also satisfies the single-bracket test, so the order
// here is a correctness requirement.
func ClassifySegment(seg string) Segment {
	switch {
	case len(seg) > 4 && strings.HasPrefix(seg, "[[") && strings.HasSuffix(seg, "]]"):
		return Segment{Kind: SegmentCatchAll, Value: seg[2 : len(seg)-2]}
	case len(seg) > 2 && strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") &&
		!strings.HasPrefix(seg[1:], "["):
		return Segment{Kind: SegmentDynamic, Value: seg[1 : len(seg)-1]}
	case len(seg) > 2 && strings.HasPrefix(seg, "(") && strings.HasSuffix(seg, ")"):
		return Segment{Kind: SegmentGroup, Value: seg[1 : len(seg)-1]}
	default:
		return Segment{Kind: SegmentStatic, Value: seg}
	}
}

// URL returns the serialized URL form of the segment and whether the
// segment appears in the pattern at all. Group segments return false:
// they are lost on serialization by design.
func (s Segment) URL() (string, bool) {
	switch s.Kind {
	case SegmentDynamic:
		return "{" + s.Value + "}", true
	case SegmentCatchAll:
		return "{" + s.Value + ":path}", true
	case SegmentGroup:
		return "", false
	default:
		return s.Value, true
	}
}

// FilesystemName returns the on-disk directory name for the segment.
func (s Segment) FilesystemName() string {
	switch s.Kind {
	case SegmentDynamic:
		return "[" + s.Value + "]"
	case SegmentCatchAll:
		return "[[" + s.Value + "]]"
	case SegmentGroup:
		return "(" + s.Value + ")"
	default:
		return s.Value
	}
}
