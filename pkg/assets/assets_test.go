package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManifestResolve(t *testing.T) {
	m := NewManifest()
	m.Set("css/site.css", "css/site.abc123.css")

	if got := m.Resolve("css/site.css"); got != "css/site.abc123.css" {
		t.Errorf("Resolve = %q", got)
	}
	if got := m.Resolve("js/app.js"); got != "js/app.js" {
		t.Errorf("Resolve of unknown asset = %q, want passthrough", got)
	}
	if !m.Has("css/site.css") || m.Has("js/app.js") {
		t.Error("Has mismatch")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(`{"css/site.css": "css/site.e5f6.css"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := m.Resolve("css/site.css"); got != "css/site.e5f6.css" {
		t.Errorf("Resolve = %q", got)
	}
}

func TestLoadManifestInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(`{broken`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	m, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir on empty dir: %v", err)
	}
	if m != nil {
		t.Error("LoadDir should return nil without a manifest")
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(`{"a.js": "a.1.js"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err = LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if m == nil || m.Resolve("a.js") != "a.1.js" {
		t.Errorf("LoadDir manifest = %v", m)
	}
}

func TestResolverPrefixes(t *testing.T) {
	m := NewManifest()
	m.Set("css/site.css", "css/site.abc123.css")

	r := NewResolver(m, "/static/")
	if got := r.Asset("css/site.css"); got != "/static/css/site.abc123.css" {
		t.Errorf("Asset = %q", got)
	}

	p := NewPassthroughResolver("/static/")
	if got := p.Asset("css/site.css"); got != "/static/css/site.css" {
		t.Errorf("passthrough Asset = %q", got)
	}
}
