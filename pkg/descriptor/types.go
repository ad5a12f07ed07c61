package descriptor

import (
	"context"
	"net/http"
	"net/url"
)

// Request is the request view handed to descriptor functions. It is
// built fresh per invocation and never shared across requests.
type Request struct {
	// Method is the HTTP method of the request.
	Method string

	// Path is the concrete request path (/blog/hello).
	Path string

	// Route is the serialized route pattern (/blog/{slug}).
	Route string

	// PathParams maps route parameter names to their matched values.
	PathParams map[string]string

	// QueryParams holds the parsed query string.
	QueryParams url.Values

	// Header holds the request headers.
	Header http.Header
}

// Props is a data provider's output mapping, merged into the render
// context of the page and its layouts.
type Props map[string]any

// Outcome is the delivered result of a deferred provider.
type Outcome struct {
	Props Props
	Err   error
}

// Result is a provider invocation result. Either Props is populated
// immediately, or Done is non-nil and the caller must await exactly one
// Outcome from it before continuing.
type Result struct {
	Props Props
	Done  <-chan Outcome
}

// ProviderFunc produces props for a page render.
type ProviderFunc func(ctx context.Context, req *Request) (Result, error)

// APIResult is the response produced by an API verb handler.
type APIResult struct {
	Status      int
	ContentType string
	Body        []byte
}

// APIFunc handles one HTTP verb of an API route.
type APIFunc func(ctx context.Context, req *Request) (*APIResult, error)

// ErrorFunc renders an error fallback page for an already-known error.
type ErrorFunc func(ctx context.Context, req *Request, cause error) (string, error)

// LoadingFunc renders a loading fallback page.
type LoadingFunc func(ctx context.Context, req *Request) (string, error)

// Handlers is the full capability set a descriptor may export. Any
// field may be nil.
type Handlers struct {
	Provider ProviderFunc
	Verbs    map[string]APIFunc
	Error    ErrorFunc
	Loading  LoadingFunc
}

// Accepted exported names, checked in order.
var (
	providerAliases = []string{"props", "get_props", "page_props"}
	errorAliases    = []string{"error_handler", "handle_error"}
	loadingAliases  = []string{"loading_handler", "handle_loading"}
)
