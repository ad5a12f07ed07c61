package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetKnownTemplates(t *testing.T) {
	for _, name := range []string{"minimal", "full", "api"} {
		tmpl, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q): %v", name, err)
			continue
		}
		if tmpl.Name != name {
			t.Errorf("Get(%q).Name = %q", name, tmpl.Name)
		}
		if len(tmpl.Files) == 0 {
			t.Errorf("Get(%q) has no files", name)
		}
	}
}

func TestGetUnknownTemplate(t *testing.T) {
	if _, err := Get("spa"); err == nil {
		t.Error("Get(spa) should fail")
	}
}

func TestList(t *testing.T) {
	names := List()
	if len(names) != 3 {
		t.Errorf("List() = %v, want 3 templates", names)
	}
}

func TestCreateInterpolatesConfig(t *testing.T) {
	dir := t.TempDir()

	tmpl, err := Get("minimal")
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Create(dir, Config{
		ProjectName: "my-site",
		Description: "A test site",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(dir, "content", "page.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "Welcome to my-site") {
		t.Errorf("page.html missing project name:\n%s", page)
	}
	if !strings.Contains(string(page), "A test site") {
		t.Errorf("page.html missing description:\n%s", page)
	}
}

func TestCreateKeepsTemplateSyntax(t *testing.T) {
	dir := t.TempDir()

	tmpl, err := Get("full")
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Create(dir, Config{ProjectName: "site"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The scaffold's own placeholders use [[ ]]; the generated page
	// templates keep their {{ }} expressions verbatim.
	layout, err := os.ReadFile(filepath.Join(dir, "content", "layout.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(layout), "{{ children }}") {
		t.Errorf("layout.html lost its children slot:\n%s", layout)
	}

	page, err := os.ReadFile(filepath.Join(dir, "content", "blog", "[slug]", "page.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "{{ pathParams.slug }}") {
		t.Errorf("dynamic page lost its param expression:\n%s", page)
	}
}

func TestCreateWritesAPIScaffold(t *testing.T) {
	dir := t.TempDir()

	tmpl, err := Get("api")
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Create(dir, Config{ProjectName: "svc"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	route, err := os.ReadFile(filepath.Join(dir, "content", "api", "items", "[id]", "route.lua"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(route), "req.params.id") {
		t.Errorf("route.lua missing param access:\n%s", route)
	}
}
