package routefs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/routefs-dev/routefs/pkg/descriptor"
)

func writeFile(t *testing.T, root, rel, src string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func newTestApp(t *testing.T, content string, cfg Config) *App {
	t.Helper()
	cfg.ContentDir = content
	cfg.DevMode = true
	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return app
}

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServeRootPage(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", `<h1>Home</h1>`)

	app := newTestApp(t, content, Config{})
	rec := get(t, app, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `<h1>Home</h1>` {
		t.Errorf("body = %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestServeDynamicSegmentWithLayouts(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "layout.html", `<body>{{ children }}</body>`)
	writeFile(t, content, "blog/[slug]/layout.html", `<article>{{ children }}</article>`)
	writeFile(t, content, "blog/[slug]/page.html", `<h1>{{ pathParams.slug }}</h1>`)

	app := newTestApp(t, content, Config{})
	rec := get(t, app, "/blog/hello-world")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog/hello-world = %d, want 200", rec.Code)
	}
	want := `<body><article><h1>hello-world</h1></article></body>`
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestServeCatchAll(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "docs/[[path]]/page.html", `<p>{{ pathParams.path }}</p>`)

	app := newTestApp(t, content, Config{})
	rec := get(t, app, "/docs/guide/install")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /docs/guide/install = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `<p>guide/install</p>` {
		t.Errorf("body = %q", got)
	}
}

func TestGroupDirectoryElidedFromURL(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "(marketing)/pricing/page.html", `<h1>Pricing</h1>`)
	writeFile(t, content, "(marketing)/layout.html", `<nav></nav>{{ children }}`)

	app := newTestApp(t, content, Config{})

	rec := get(t, app, "/pricing")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /pricing = %d, want 200", rec.Code)
	}
	// The group's layout still applies even though it is invisible in
	// the URL.
	if got := rec.Body.String(); got != `<nav></nav><h1>Pricing</h1>` {
		t.Errorf("body = %q", got)
	}

	if rec := get(t, app, "/(marketing)/pricing"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /(marketing)/pricing = %d, want 404", rec.Code)
	}
}

func TestProviderPropsReachPage(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "blog/page.html", `<h1>{{ title }}</h1>`)
	writeFile(t, content, "blog/page.lua", `function props(req) return {title = "From Lua"} end`)

	app := newTestApp(t, content, Config{})
	rec := get(t, app, "/blog")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `<h1>From Lua</h1>` {
		t.Errorf("body = %q", got)
	}
}

func TestProviderFailureServesErrorPage(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "error.lua", `function error_handler(req, err) return "<h1>oops</h1>" end`)
	writeFile(t, content, "blog/page.html", `<h1>never</h1>`)
	writeFile(t, content, "blog/page.lua", `function props(req) error("db down") end`)

	app := newTestApp(t, content, Config{})
	rec := get(t, app, "/blog")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("GET /blog = %d, want 500", rec.Code)
	}
	if got := rec.Body.String(); got != `<h1>oops</h1>` {
		t.Errorf("body = %q, want the error descriptor output", got)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", `<h1>Home</h1>`)

	app := newTestApp(t, content, Config{})
	if rec := get(t, app, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope = %d, want 404", rec.Code)
	}
}

func TestAPIRoute(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "api/items/route.lua", `
function get(req)
    return {items = {"a", "b"}}
end
function post(req)
    return {created = true}, 201
end`)

	app := newTestApp(t, content, Config{})

	rec := get(t, app, "/api/items")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/items = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `{"items":["a","b"]}` {
		t.Errorf("body = %s", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/items", nil))
	if rec.Code != http.StatusCreated {
		t.Errorf("POST /api/items = %d, want 201", rec.Code)
	}

	// No exported delete handler, so the verb is not routed.
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/items", nil))
	if rec.Code == http.StatusOK {
		t.Errorf("DELETE /api/items = %d, want non-200", rec.Code)
	}
}

func TestAPIRouteWithParams(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "api/users/[id]/route.lua", `
function get(req)
    return {id = req.params.id}
end`)

	app := newTestApp(t, content, Config{})
	rec := get(t, app, "/api/users/42")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/users/42 = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `{"id":"42"}` {
		t.Errorf("body = %s", got)
	}
}

func TestReloadPicksUpNewRoutes(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", `<h1>Home</h1>`)

	app := newTestApp(t, content, Config{})
	if rec := get(t, app, "/about"); rec.Code != http.StatusNotFound {
		t.Fatalf("GET /about before reload = %d, want 404", rec.Code)
	}

	writeFile(t, content, "about/page.html", `<h1>About</h1>`)
	if err := app.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	rec := get(t, app, "/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /about after reload = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `<h1>About</h1>` {
		t.Errorf("body = %q", got)
	}
}

func TestRoutesListing(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", ``)
	writeFile(t, content, "blog/[slug]/page.html", ``)
	writeFile(t, content, "api/items/route.lua", `function get(req) return {} end`)

	app := newTestApp(t, content, Config{})

	patterns := make(map[string]bool)
	for _, e := range app.Routes() {
		patterns[e.Pattern.String()+" "+e.Verb] = true
	}
	for _, want := range []string{"/ ", "/blog/{slug} ", "/api/items get"} {
		if !patterns[want] {
			t.Errorf("Routes() missing %q; got %v", want, patterns)
		}
	}
}

func TestNativeRegistryHandlers(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", `<h1>{{ who }}</h1>`)

	reg := descriptor.NewRegistry()
	reg.Register("", descriptor.Handlers{
		Provider: func(ctx context.Context, req *descriptor.Request) (descriptor.Result, error) {
			return descriptor.Result{Props: descriptor.Props{"who": "Go"}}, nil
		},
	})

	app := newTestApp(t, content, Config{Registry: reg})
	rec := get(t, app, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `<h1>Go</h1>` {
		t.Errorf("body = %q, want props from the Go registry", got)
	}
}

func TestMissingContentDir(t *testing.T) {
	if _, err := New(Config{ContentDir: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("New should fail for a missing content directory")
	}
}

func TestStaticFileServing(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", `<h1>Home</h1>`)

	static := t.TempDir()
	writeFile(t, static, "css/site.css", `body{}`)

	app := newTestApp(t, content, Config{
		Static: StaticConfig{Dir: static, Prefix: "/static/"},
	})

	rec := get(t, app, "/static/css/site.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /static/css/site.css = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `body{}` {
		t.Errorf("body = %q", got)
	}

	// Pages still resolve alongside static serving.
	if rec := get(t, app, "/"); rec.Code != http.StatusOK {
		t.Errorf("GET / = %d, want 200", rec.Code)
	}
}

func TestAssetResolutionWithManifest(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", `<link href="{{ asset("css/site.css") }}">`)

	static := t.TempDir()
	writeFile(t, static, "manifest.json", `{"css/site.css": "css/site.abc123.css"}`)
	writeFile(t, static, "css/site.abc123.css", `body{}`)

	app := newTestApp(t, content, Config{
		Static: StaticConfig{Dir: static, Prefix: "/static/"},
	})

	rec := get(t, app, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `<link href="/static/css/site.abc123.css">` {
		t.Errorf("body = %q, want fingerprinted asset path", got)
	}
}

func TestAssetResolutionWithoutManifest(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", `<link href="{{ asset("css/site.css") }}">`)

	static := t.TempDir()
	app := newTestApp(t, content, Config{
		Static: StaticConfig{Dir: static, Prefix: "/static/"},
	})

	rec := get(t, app, "/")
	if got := rec.Body.String(); got != `<link href="/static/css/site.css">` {
		t.Errorf("body = %q, want passthrough asset path", got)
	}
}

func TestStaticTraversalRejected(t *testing.T) {
	content := t.TempDir()
	writeFile(t, content, "page.html", ``)

	static := t.TempDir()
	writeFile(t, static, "ok.txt", `ok`)

	app := newTestApp(t, content, Config{
		Static: StaticConfig{Dir: static, Prefix: "/static/"},
	})

	for _, path := range []string{
		"/static/../secret",
		"/static/..%2fsecret",
		"/static//etc/passwd",
		"/static/a\\b",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = path
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			t.Errorf("GET %s = 200, want rejection", path)
		}
	}
}
