// Package template renders page and layout templates from the content
// tree. The default backend is pongo2, so templates use Jinja-style
// syntax ({{ title }}, {% for %}, {% extends %}).
package template

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// ChildrenKey is the context key under which a layout receives the
// already-rendered markup of its inner level. The value is pre-escaped
// HTML and is injected unescaped.
const ChildrenKey = "children"

// Engine renders a template by content-root-relative name against a
// context mapping.
type Engine interface {
	Render(name string, ctx map[string]any) (string, error)
}

// Pongo2Engine renders templates through a pongo2 template set rooted
// at the content directory. With caching enabled a template is parsed
// once and reused; in development pass cache=false so edits show up
// without a restart.
type Pongo2Engine struct {
	set *pongo2.TemplateSet
}

// NewPongo2Engine creates an engine over the given content root.
func NewPongo2Engine(root string, cache bool) (*Pongo2Engine, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(root)
	if err != nil {
		return nil, fmt.Errorf("template root %s: %w", root, err)
	}
	set := pongo2.NewSet("content", loader)
	set.Debug = !cache
	return &Pongo2Engine{set: set}, nil
}

// Render implements Engine.
func (e *Pongo2Engine) Render(name string, ctx map[string]any) (string, error) {
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", name, err)
	}

	pctx := make(pongo2.Context, len(ctx))
	for k, v := range ctx {
		pctx[k] = v
	}
	// Inner markup is already rendered HTML; keep pongo2 from
	// escaping it a second time.
	if children, ok := pctx[ChildrenKey].(string); ok {
		pctx[ChildrenKey] = pongo2.AsSafeValue(children)
	}

	out, err := tpl.Execute(pctx)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return out, nil
}
