package router

import (
	"reflect"
	"testing"
)

func TestFinderFind(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"layout.html",
		"error.lua",
		"blog/layout.html",
		"blog/[slug]/page.html",
		"blog/[slug]/layout.html",
		"blog/[slug]/loading.lua",
	} {
		writeContentFile(t, root, rel)
	}

	chain := NewFinder(root).Find("blog/[slug]")

	wantLayouts := []string{"layout.html", "blog/layout.html", "blog/[slug]/layout.html"}
	if !reflect.DeepEqual(chain.Layouts, wantLayouts) {
		t.Errorf("Layouts = %v, want %v (root first)", chain.Layouts, wantLayouts)
	}
	if !reflect.DeepEqual(chain.Errors, []string{"error.lua"}) {
		t.Errorf("Errors = %v, want [error.lua]", chain.Errors)
	}
	if !reflect.DeepEqual(chain.Loadings, []string{"blog/[slug]/loading.lua"}) {
		t.Errorf("Loadings = %v, want the leaf loading descriptor", chain.Loadings)
	}
}

func TestFinderFindRoot(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "layout.html")

	chain := NewFinder(root).Find("")
	if !reflect.DeepEqual(chain.Layouts, []string{"layout.html"}) {
		t.Errorf("Layouts = %v, want [layout.html]", chain.Layouts)
	}
	if len(chain.Errors) != 0 || len(chain.Loadings) != 0 {
		t.Errorf("unexpected descriptors: %+v", chain)
	}
}

func TestFinderWalksGroupDirectories(t *testing.T) {
	// Group directories are invisible in the URL but concrete on disk;
	// layouts inside them still apply.
	root := t.TempDir()
	for _, rel := range []string{
		"(shop)/layout.html",
		"(shop)/cart/page.html",
	} {
		writeContentFile(t, root, rel)
	}

	chain := NewFinder(root).Find("(shop)/cart")
	if !reflect.DeepEqual(chain.Layouts, []string{"(shop)/layout.html"}) {
		t.Errorf("Layouts = %v, want [(shop)/layout.html]", chain.Layouts)
	}
}

func TestFinderMissingLevelsSkipped(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "a/b/c/page.html")

	chain := NewFinder(root).Find("a/b/c")
	if len(chain.Layouts)+len(chain.Errors)+len(chain.Loadings) != 0 {
		t.Fatalf("descriptors found in empty tree: %+v", chain)
	}
}
