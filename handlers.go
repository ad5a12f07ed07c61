package routefs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/routefs-dev/routefs/pkg/compose"
	"github.com/routefs-dev/routefs/pkg/descriptor"
	"github.com/routefs-dev/routefs/pkg/middleware"
	"github.com/routefs-dev/routefs/pkg/router"
)

// pageHandler serves one page route: compose the page, or translate
// composition failures into responses. A missing template is a 404; a
// failed provider is a 500 rendered through the error-page chain.
func (a *App) pageHandler(entry router.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := a.descriptorRequest(entry, r)

		html, err := a.engine.BuildPage(r.Context(), entry, req)
		if err != nil {
			a.renderPageError(w, r, entry, req, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
	}
}

func (a *App) renderPageError(w http.ResponseWriter, r *http.Request, entry router.Entry, req *descriptor.Request, err error) {
	if errors.Is(err, compose.ErrNotFound) {
		http.NotFound(w, r)
		return
	}

	var perr *compose.ProviderError
	if errors.As(err, &perr) {
		a.config.Logger.Error("page provider failed",
			"route", entry.Pattern.String(), "error", perr.Err)
		middleware.RecordRenderError("descriptor")
		html := a.engine.RenderErrorPage(r.Context(), entry.SourceDir, req, perr.Err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(html))
		return
	}

	a.config.Logger.Error("page composition failed",
		"route", entry.Pattern.String(), "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// apiHandler serves one verb of an API route. The descriptor is loaded
// per dispatch, so edits to route.lua take effect without a reload as
// long as the verb set is unchanged.
func (a *App) apiHandler(entry router.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn, release, ok := a.loader.VerbHandler(entry.SourceDir, entry.Verb)
		if !ok {
			// The descriptor lost this verb since the last scan.
			http.NotFound(w, r)
			return
		}
		defer release()

		res, err := fn(r.Context(), a.descriptorRequest(entry, r))
		if err != nil {
			a.config.Logger.Error("API handler failed",
				"route", entry.Pattern.String(), "verb", entry.Verb, "error", err)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
			return
		}

		if res.ContentType != "" {
			w.Header().Set("Content-Type", res.ContentType)
		}
		w.WriteHeader(res.Status)
		if len(res.Body) > 0 {
			w.Write(res.Body)
		}
	}
}

// descriptorRequest builds the request view descriptors and templates
// see, with path parameters pulled out of the chi route context.
func (a *App) descriptorRequest(entry router.Entry, r *http.Request) *descriptor.Request {
	return &descriptor.Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Route:       entry.Pattern.String(),
		PathParams:  a.pathParams(entry, r),
		QueryParams: r.URL.Query(),
		Header:      r.Header,
	}
}

func (a *App) pathParams(entry router.Entry, r *http.Request) map[string]string {
	names := entry.Pattern.Params()
	if len(names) == 0 {
		return nil
	}

	catchAll, hasCatchAll := entry.Pattern.CatchAll()
	params := make(map[string]string, len(names))
	for _, name := range names {
		if hasCatchAll && name == catchAll {
			// The catch-all is registered as chi's wildcard.
			params[name] = chi.URLParam(r, "*")
			continue
		}
		params[name] = chi.URLParam(r, name)
	}
	return params
}
