// Package compose builds full HTML pages from resolved routes: it runs
// the route's data provider, renders the leaf page template, and folds
// the ancestor layout chain around it from the innermost layout
// outward.
//
// Failure containment follows the route structure. A failing provider
// aborts the page (the caller decides what to serve instead); a failing
// layout is skipped so the page still reaches the client; a failing
// leaf template degrades to a diagnostic placeholder that the layouts
// still wrap.
package compose

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/routefs-dev/routefs/pkg/descriptor"
	"github.com/routefs-dev/routefs/pkg/router"
	"github.com/routefs-dev/routefs/pkg/template"
)

// Injector invokes a data provider on behalf of the engine. Hosts can
// replace it to wrap provider calls with their own services, defaults
// or instrumentation. The default injector calls the provider directly.
type Injector func(ctx context.Context, req *descriptor.Request, provider descriptor.ProviderFunc) (descriptor.Result, error)

func defaultInjector(ctx context.Context, req *descriptor.Request, provider descriptor.ProviderFunc) (descriptor.Result, error) {
	return provider(ctx, req)
}

// Engine composes pages for resolved routes.
type Engine struct {
	root   string
	loader *descriptor.Loader
	finder *router.Finder
	tpl    template.Engine
	logger *slog.Logger
	tracer trace.Tracer
	inject Injector
	asset  func(string) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithInjector replaces the provider invocation hook.
func WithInjector(in Injector) Option {
	return func(e *Engine) {
		if in != nil {
			e.inject = in
		}
	}
}

// WithAssetResolver exposes an asset function to templates that maps a
// source asset path to its URL, typically through a fingerprint
// manifest.
func WithAssetResolver(resolve func(string) string) Option {
	return func(e *Engine) {
		if resolve != nil {
			e.asset = resolve
		}
	}
}

// WithTracer sets the tracer used for composition spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// NewEngine creates a composition engine over the given content root.
func NewEngine(root string, loader *descriptor.Loader, tpl template.Engine, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		root:   root,
		loader: loader,
		finder: router.NewFinder(root),
		tpl:    tpl,
		logger: logger,
		tracer: otel.Tracer("routefs/compose"),
		inject: defaultInjector,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildPage renders the full page for a route entry: provide, render
// the leaf, fold the layouts. It returns ErrNotFound when the entry's
// directory holds no page template and a *ProviderError when the data
// provider fails; every other failure degrades inside the page.
func (e *Engine) BuildPage(ctx context.Context, entry router.Entry, req *descriptor.Request) (string, error) {
	ctx, span := e.tracer.Start(ctx, "compose.page",
		trace.WithAttributes(attribute.String("route", req.Route)))
	defer span.End()

	leaf := path.Join(entry.SourceDir, router.PageTemplate)
	if !e.fileExists(leaf) {
		return "", ErrNotFound
	}

	props, err := e.provide(ctx, entry, req)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	renderCtx := e.renderContext(req, props)
	html := e.renderLeaf(ctx, leaf, renderCtx)
	return e.foldLayouts(ctx, entry, renderCtx, html), nil
}

// provide runs the route's data provider, if any, and awaits a deferred
// result. The await is the only suspension point in a page build.
func (e *Engine) provide(ctx context.Context, entry router.Entry, req *descriptor.Request) (descriptor.Props, error) {
	provider, release, ok := e.loader.Provider(entry.SourceDir)
	if !ok {
		return nil, nil
	}
	defer release()

	ctx, span := e.tracer.Start(ctx, "compose.provide")
	defer span.End()

	res, err := e.inject(ctx, req, provider)
	if err != nil {
		return nil, &ProviderError{Route: req.Route, Err: err}
	}
	if res.Done == nil {
		return res.Props, nil
	}

	select {
	case out := <-res.Done:
		if out.Err != nil {
			return nil, &ProviderError{Route: req.Route, Err: out.Err}
		}
		return out.Props, nil
	case <-ctx.Done():
		return nil, &ProviderError{Route: req.Route, Err: ctx.Err()}
	}
}

// renderLeaf renders the page template. A template failure degrades to
// a diagnostic placeholder so the surrounding layouts still render.
func (e *Engine) renderLeaf(ctx context.Context, name string, renderCtx map[string]any) string {
	_, span := e.tracer.Start(ctx, "compose.render",
		trace.WithAttributes(attribute.String("template", name)))
	defer span.End()

	html, err := e.tpl.Render(name, renderCtx)
	if err != nil {
		span.RecordError(err)
		e.logger.Error("page template failed to render", "template", name, "error", err)
		return fmt.Sprintf("<!-- failed to render %s -->", name)
	}
	return html
}

// foldLayouts wraps the rendered page in its ancestor layouts, from the
// innermost layout outward. A failing layout is logged and skipped; the
// levels around it still apply.
func (e *Engine) foldLayouts(ctx context.Context, entry router.Entry, renderCtx map[string]any, html string) string {
	layouts := e.finder.Find(entry.SourceDir).Layouts
	if len(layouts) == 0 {
		return html
	}

	_, span := e.tracer.Start(ctx, "compose.fold",
		trace.WithAttributes(attribute.Int("layouts", len(layouts))))
	defer span.End()

	for i := len(layouts) - 1; i >= 0; i-- {
		layoutCtx := make(map[string]any, len(renderCtx)+1)
		for k, v := range renderCtx {
			layoutCtx[k] = v
		}
		layoutCtx[template.ChildrenKey] = html

		out, err := e.tpl.Render(layouts[i], layoutCtx)
		if err != nil {
			span.RecordError(err)
			e.logger.Error("layout failed to render, skipping level",
				"layout", layouts[i], "error", err)
			continue
		}
		html = out
	}
	return html
}

// renderContext assembles the mapping every template at a level sees.
// Props merge at the top level; the reserved keys win on collision.
func (e *Engine) renderContext(req *descriptor.Request, props descriptor.Props) map[string]any {
	ctx := make(map[string]any, len(props)+3)
	for k, v := range props {
		ctx[k] = v
	}
	ctx["request"] = map[string]any{
		"method": req.Method,
		"path":   req.Path,
		"route":  req.Route,
	}
	ctx["pathParams"] = req.PathParams
	ctx["queryParams"] = flattenQuery(req)
	if e.asset != nil {
		ctx["asset"] = e.asset
	}
	return ctx
}

func flattenQuery(req *descriptor.Request) map[string]string {
	q := make(map[string]string, len(req.QueryParams))
	for k, vs := range req.QueryParams {
		if len(vs) > 0 {
			q[k] = vs[0]
		}
	}
	return q
}

func (e *Engine) fileExists(rel string) bool {
	info, err := os.Stat(filepath.Join(e.root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}
