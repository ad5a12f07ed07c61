package assets

// Resolver resolves a source asset path to its full URL path,
// including the static prefix and any fingerprinted filename.
type Resolver interface {
	Asset(source string) string
}

// manifestResolver wraps a Manifest to implement Resolver.
type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with a URL prefix.
//
//	manifest, _ := assets.Load("static/manifest.json")
//	resolver := assets.NewResolver(manifest, "/static/")
//	resolver.Asset("css/site.css") // "/static/css/site.e5f6a7b8.css"
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

// passthrough returns assets unchanged apart from the prefix.
type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that applies only the
// prefix. Used when no manifest exists, typically in development, so
// template asset expressions behave the same in both modes.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(source string) string {
	return p.prefix + source
}
