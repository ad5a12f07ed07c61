package compose

import (
	"context"

	"github.com/routefs-dev/routefs/pkg/descriptor"
)

// Built-in fallback markup served when no descriptor along the route's
// ancestor chain produces a page.
const (
	defaultErrorHTML   = `<!doctype html><html><head><title>Error</title></head><body><h1>Something went wrong</h1></body></html>`
	defaultLoadingHTML = `<!doctype html><html><head><title>Loading</title></head><body><p>Loading…</p></body></html>`
)

// RenderErrorPage renders the error fallback for a route. The ancestor
// chain is searched leaf-first; the first handler that loads and
// renders wins. It always produces markup: when every handler is absent
// or fails, the built-in fallback is returned.
func (e *Engine) RenderErrorPage(ctx context.Context, sourceDir string, req *descriptor.Request, cause error) string {
	handlers := e.finder.Find(sourceDir).Errors
	for i := len(handlers) - 1; i >= 0; i-- {
		fn, release, ok := e.loader.ErrorHandler(handlers[i])
		if !ok {
			continue
		}
		html, err := fn(ctx, req, cause)
		release()
		if err != nil {
			e.logger.Error("error handler failed, trying next level",
				"descriptor", handlers[i], "error", err)
			continue
		}
		return html
	}
	return defaultErrorHTML
}

// RenderLoadingPage renders the loading fallback for a route, searched
// and degraded the same way as RenderErrorPage.
func (e *Engine) RenderLoadingPage(ctx context.Context, sourceDir string, req *descriptor.Request) string {
	handlers := e.finder.Find(sourceDir).Loadings
	for i := len(handlers) - 1; i >= 0; i-- {
		fn, release, ok := e.loader.LoadingHandler(handlers[i])
		if !ok {
			continue
		}
		html, err := fn(ctx, req)
		release()
		if err != nil {
			e.logger.Error("loading handler failed, trying next level",
				"descriptor", handlers[i], "error", err)
			continue
		}
		return html
	}
	return defaultLoadingHTML
}
