package router

import "testing"

func TestClassifySegment(t *testing.T) {
	tests := []struct {
		seg       string
		wantKind  SegmentKind
		wantValue string
	}{
		{"blog", SegmentStatic, "blog"},
		{"About", SegmentStatic, "About"},
		{"v2.1", SegmentStatic, "v2.1"},
		{"[slug]", SegmentDynamic, "slug"},
		{"[id]", SegmentDynamic, "id"},
		{"[[path]]", SegmentCatchAll, "path"},
		{"[[rest]]", SegmentCatchAll, "rest"},
		{"(marketing)", SegmentGroup, "marketing"},
		{"(admin)", SegmentGroup, "admin"},
		// Degenerate bracket forms stay static.
		{"[]", SegmentStatic, "[]"},
		{"[[]]", SegmentStatic, "[[]]"},
		{"()", SegmentStatic, "()"},
		{"[x", SegmentStatic, "[x"},
		{"x]", SegmentStatic, "x]"},
	}

	for _, tt := range tests {
		got := ClassifySegment(tt.seg)
		if got.Kind != tt.wantKind || got.Value != tt.wantValue {
			t.Errorf("ClassifySegment(%q) = {%v %q}, want {%v %q}",
				tt.seg, got.Kind, got.Value, tt.wantKind, tt.wantValue)
		}
	}
}

func TestClassifySegmentCatchAllBeforeDynamic(t *testing.T) {
	// A catch-all segment also satisfies the single-bracket test; the
	// double-bracket check must win.
	got := ClassifySegment("[[slug]]")
	if got.Kind != SegmentCatchAll {
		t.Fatalf("ClassifySegment([[slug]]) kind = %v, want catch-all", got.Kind)
	}
	if got.Value != "slug" {
		t.Fatalf("ClassifySegment([[slug]]) value = %q, want slug", got.Value)
	}
}

func TestSegmentURL(t *testing.T) {
	tests := []struct {
		seg     Segment
		want    string
		visible bool
	}{
		{Segment{SegmentStatic, "blog"}, "blog", true},
		{Segment{SegmentDynamic, "id"}, "{id}", true},
		{Segment{SegmentCatchAll, "path"}, "{path:path}", true},
		{Segment{SegmentGroup, "marketing"}, "", false},
	}

	for _, tt := range tests {
		got, visible := tt.seg.URL()
		if got != tt.want || visible != tt.visible {
			t.Errorf("(%v %q).URL() = (%q, %v), want (%q, %v)",
				tt.seg.Kind, tt.seg.Value, got, visible, tt.want, tt.visible)
		}
	}
}

func TestSegmentFilesystemName(t *testing.T) {
	tests := []struct {
		seg  Segment
		want string
	}{
		{Segment{SegmentStatic, "blog"}, "blog"},
		{Segment{SegmentDynamic, "id"}, "[id]"},
		{Segment{SegmentCatchAll, "path"}, "[[path]]"},
		{Segment{SegmentGroup, "marketing"}, "(marketing)"},
	}

	for _, tt := range tests {
		if got := tt.seg.FilesystemName(); got != tt.want {
			t.Errorf("(%v %q).FilesystemName() = %q, want %q",
				tt.seg.Kind, tt.seg.Value, got, tt.want)
		}
	}
}
