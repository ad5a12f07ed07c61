// Package routefs serves a website whose URL structure is the shape of
// a directory tree. A directory under the content root becomes a URL
// path: page.html files become pages, route.lua files become API
// endpoints, [param] directories become dynamic segments, [[param]]
// directories become catch-alls, and (group) directories organize files
// without affecting URLs.
//
// Create an App over a content directory and serve it:
//
//	app, err := routefs.New(routefs.Config{
//	    ContentDir: "content",
//	    Static:     routefs.StaticConfig{Dir: "static", Prefix: "/static/"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":3000", app)
package routefs

import (
	"log/slog"

	"github.com/routefs-dev/routefs/pkg/compose"
	"github.com/routefs-dev/routefs/pkg/descriptor"
	"github.com/routefs-dev/routefs/pkg/template"
)

// CacheControlMode selects the cache header strategy for static files.
type CacheControlMode int

const (
	// CacheControlNone disables caching. Useful in development.
	CacheControlNone CacheControlMode = iota

	// CacheControlProduction caches fingerprinted assets aggressively
	// and everything else with revalidation.
	CacheControlProduction
)

// StaticConfig configures static file serving.
type StaticConfig struct {
	// Dir is the directory containing static files. Empty disables
	// static serving.
	Dir string

	// Prefix is the URL prefix static files are served under.
	// Defaults to "/static/".
	Prefix string

	// CacheControl selects the cache header strategy.
	CacheControl CacheControlMode

	// Headers are additional response headers for static files.
	Headers map[string]string
}

// Config configures an App.
type Config struct {
	// ContentDir is the root of the content tree. Defaults to
	// "content".
	ContentDir string

	// Static configures static file serving.
	Static StaticConfig

	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger

	// DevMode disables template caching so content edits show up
	// without a restart.
	DevMode bool

	// Engine overrides the template backend. Defaults to the pongo2
	// engine rooted at ContentDir.
	Engine template.Engine

	// Injector wraps data provider invocation. Defaults to calling
	// the provider directly.
	Injector compose.Injector

	// Registry holds natively registered Go handlers. Entries shadow
	// the Lua descriptors in their directories. May be nil.
	Registry *descriptor.Registry
}

func (c *Config) applyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/static/"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
