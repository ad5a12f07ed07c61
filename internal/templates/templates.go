package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/routefs-dev/routefs/internal/errors"
)

// Config contains scaffold configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Description is a short project description.
	Description string
}

// Template represents a project scaffold.
type Template struct {
	// Name is the scaffold name.
	Name string

	// Description describes the scaffold.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available scaffolds.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"full":    fullTemplate(),
	"api":     apiTemplate(),
}

// Get returns a scaffold by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "template '%s' not found (available: minimal, full, api)", name)
	}
	return tmpl, nil
}

// List returns all available scaffold names.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}

// Create generates a project from the scaffold.
func (t *Template) Create(dir string, cfg Config) error {
	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Delims("[[", "]]").Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}

		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

// minimalTemplate returns the minimal scaffold: a single page.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A single page and its layout",
		Files: map[string]string{
			"content/layout.html": `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>[[.ProjectName]]</title>
</head>
<body>
    <main>{{ children }}</main>
</body>
</html>
`,
			"content/page.html": `<h1>Welcome to [[.ProjectName]]</h1>
<p>[[.Description]]</p>
<p>Edit content/page.html and watch this page update.</p>
`,
			"routefs.json": `{
  "name": "[[.ProjectName]]",
  "dev": {
    "port": 3000,
    "hotReload": true
  }
}
`,
		},
	}
}

// fullTemplate returns the full scaffold with dynamic pages, an API
// route, descriptors and a stylesheet.
func fullTemplate() *Template {
	return &Template{
		Name:        "full",
		Description: "Complete starter with pages, descriptors and an API route",
		Files: map[string]string{
			"content/layout.html": `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>[[.ProjectName]]</title>
    <link rel="stylesheet" href="/static/css/site.css">
</head>
<body>
    <nav>
        <a href="/">Home</a>
        <a href="/blog/hello-world">Blog</a>
        <a href="/about">About</a>
    </nav>
    <main>{{ children }}</main>
</body>
</html>
`,
			"content/page.html": `<h1>Welcome to [[.ProjectName]]</h1>
<p>[[.Description]]</p>
<p>This site is served straight from the content directory:</p>
<ul>
    <li><code>content/page.html</code> is this page</li>
    <li><code>content/blog/[slug]/page.html</code> matches any /blog/... URL</li>
    <li><code>content/api/hello/route.lua</code> answers /api/hello</li>
</ul>
`,
			"content/about/page.html": `<h1>About</h1>
<p>[[.Description]]</p>
`,
			"content/blog/layout.html": `<section class="blog">{{ children }}</section>
`,
			"content/blog/[slug]/page.html": `<article>
    <h1>{{ title }}</h1>
    <p>This page lives at /blog/{{ pathParams.slug }}.</p>
</article>
`,
			"content/blog/[slug]/page.lua": `function props(req)
    return {
        title = req.params.slug
    }
end
`,
			"content/error.lua": `function error_handler(req, err)
    return "<h1>Something went wrong</h1><p>" .. err .. "</p>"
end
`,
			"content/api/hello/route.lua": `function get(req)
    return {
        message = "hello from " .. req.path
    }
end

function post(req)
    return { created = true }, 201
end
`,
			"static/css/site.css": `body {
    font-family: system-ui, sans-serif;
    max-width: 640px;
    margin: 2rem auto;
    padding: 0 1rem;
}

nav a {
    margin-right: 1rem;
}
`,
			"routefs.json": `{
  "name": "[[.ProjectName]]",
  "paths": {
    "content": "content",
    "static": "static"
  },
  "dev": {
    "port": 3000,
    "host": "localhost",
    "hotReload": true,
    "watch": ["content", "static"]
  }
}
`,
			"README.md": `# [[.ProjectName]]

[[.Description]]

## Getting Started

` + "```" + `bash
# Serve with live reload
routefs serve --dev

# List the route table
routefs routes
` + "```" + `

## Project Structure

` + "```" + `
[[.ProjectName]]/
├── content/             # The URL tree: directories are routes
│   ├── layout.html      # Wraps every page below it
│   ├── page.html        # /
│   ├── blog/[slug]/     # /blog/{slug}
│   └── api/hello/       # /api/hello
├── static/              # Served under /static/
└── routefs.json         # Configuration
` + "```" + `
`,
		},
	}
}

// apiTemplate returns the API-only scaffold.
func apiTemplate() *Template {
	return &Template{
		Name:        "api",
		Description: "API routes only, no pages",
		Files: map[string]string{
			"content/api/health/route.lua": `function get(req)
    return { status = "ok" }
end
`,
			"content/api/items/route.lua": `local items = { "first", "second" }

function get(req)
    return { items = items }
end

function post(req)
    return { created = true }, 201
end
`,
			"content/api/items/[id]/route.lua": `function get(req)
    return { id = req.params.id }
end
`,
			"routefs.json": `{
  "name": "[[.ProjectName]]",
  "dev": {
    "port": 3000
  }
}
`,
			"README.md": `# [[.ProjectName]]

[[.Description]]

## API Endpoints

- ` + "`" + `GET /api/health` + "`" + ` - Health check
- ` + "`" + `GET /api/items` + "`" + ` - List items
- ` + "`" + `GET /api/items/{id}` + "`" + ` - Fetch one item
`,
		},
	}
}
