package routefs

import (
	"net/http"
	"os"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/routefs-dev/routefs/internal/errors"
	"github.com/routefs-dev/routefs/pkg/assets"
	"github.com/routefs-dev/routefs/pkg/compose"
	"github.com/routefs-dev/routefs/pkg/descriptor"
	"github.com/routefs-dev/routefs/pkg/router"
	"github.com/routefs-dev/routefs/pkg/template"
)

// App serves a content tree over HTTP. It scans the tree into a route
// table at construction, builds a mux from the table, and serves page
// and API routes plus static files.
//
// The mux and the table behind it are immutable snapshots: Reload
// rebuilds both from scratch and swaps them in atomically, so in-flight
// requests always see one consistent routing generation.
type App struct {
	config Config

	loader  *descriptor.Loader
	scanner *router.Scanner
	table   *router.Holder
	engine  *compose.Engine

	mux atomic.Pointer[chi.Mux]

	staticDir    string
	staticPrefix string
	staticFS     http.FileSystem
}

// New creates an App and performs the initial content scan.
func New(cfg Config) (*App, error) {
	cfg.applyDefaults()

	if info, err := os.Stat(cfg.ContentDir); err != nil || !info.IsDir() {
		return nil, errors.New("S001").
			WithDetail("Content directory: " + cfg.ContentDir).
			WithSuggestion("Create the directory or set Config.ContentDir")
	}

	loader := descriptor.NewLoader(cfg.ContentDir, cfg.Registry, cfg.Logger)

	engine := cfg.Engine
	if engine == nil {
		var err error
		engine, err = template.NewPongo2Engine(cfg.ContentDir, !cfg.DevMode)
		if err != nil {
			return nil, err
		}
	}

	var opts []compose.Option
	if cfg.Injector != nil {
		opts = append(opts, compose.WithInjector(cfg.Injector))
	}
	if cfg.Static.Dir != "" {
		resolver, err := staticResolver(cfg.Static.Dir, cfg.Static.Prefix)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compose.WithAssetResolver(resolver.Asset))
	}

	app := &App{
		config:       cfg,
		loader:       loader,
		scanner:      router.NewScanner(cfg.ContentDir, loader, cfg.Logger),
		table:        router.NewHolder(),
		engine:       compose.NewEngine(cfg.ContentDir, loader, engine, cfg.Logger, opts...),
		staticDir:    cfg.Static.Dir,
		staticPrefix: cfg.Static.Prefix,
	}
	if cfg.Static.Dir != "" {
		app.staticFS = http.Dir(cfg.Static.Dir)
	}

	if err := app.Reload(); err != nil {
		return nil, err
	}
	return app, nil
}

// ServeHTTP implements http.Handler. Static files are checked first;
// everything else goes through the current mux snapshot.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if a.staticFS != nil && a.shouldServeStatic(r.URL.Path) {
		a.serveStatic(w, r)
		return
	}
	a.mux.Load().ServeHTTP(w, r)
}

// Reload rescans the content tree and swaps in a fresh route table and
// mux. On scan failure the previous generation keeps serving.
func (a *App) Reload() error {
	table, err := a.table.Replace(a.scanner.Scan)
	if err != nil {
		return errors.New("S003").Wrap(err)
	}
	a.mux.Store(a.buildMux(table))
	a.config.Logger.Info("route table loaded", "routes", table.Len())
	return nil
}

// Routes returns the current route entries in discovery order.
func (a *App) Routes() []router.Entry {
	return a.table.Load().Entries()
}

// Registry returns the native handler registry. Register handlers
// before the first request, or call Reload after registering API verbs
// so they appear in the route table.
func (a *App) Registry() *descriptor.Registry {
	return a.loader.Registry()
}

// Handler returns the App as an http.Handler.
func (a *App) Handler() http.Handler {
	return a
}

// Run starts an HTTP server on addr and blocks.
func (a *App) Run(addr string) error {
	a.config.Logger.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, a); err != nil {
		return errors.New("L004").Wrap(err)
	}
	return nil
}

// buildMux registers every table entry against a fresh mux.
func (a *App) buildMux(table *router.Table) *chi.Mux {
	mux := chi.NewRouter()
	for _, entry := range table.Entries() {
		pattern := chiPattern(entry.Pattern)
		switch entry.Kind {
		case router.KindPage:
			mux.Get(pattern, a.pageHandler(entry))
		case router.KindAPI:
			mux.Method(router.VerbMethod(entry.Verb), pattern, a.apiHandler(entry))
		}
	}
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return mux
}

// staticResolver builds the template asset resolver for a static
// directory: manifest-backed when the directory carries a fingerprint
// manifest, prefix-only passthrough otherwise.
func staticResolver(dir, prefix string) (assets.Resolver, error) {
	manifest, err := assets.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return assets.NewPassthroughResolver(prefix), nil
	}
	return assets.NewResolver(manifest, prefix), nil
}

// chiPattern rewrites a route pattern into chi's syntax. Dynamic
// segments map directly; a catch-all becomes chi's trailing wildcard.
func chiPattern(p router.Pattern) string {
	s := p.String()
	if name, ok := p.CatchAll(); ok {
		s = strings.TrimSuffix(s, "{"+name+":path}") + "*"
	}
	return s
}
