package margarita

import (
	"context"
	"strings"
	"sync"
)

// Composer renders an ordered list of snippets against one shared context
// and joins them into a single prompt. Snippets are parsed once and cached
// for the composer's lifetime. Composition is all-or-nothing: any failing
// snippet fails the whole composition.
type Composer struct {
	engine *Engine

	mu    sync.Mutex
	cache map[string]*Template
}

// NewComposer creates a composer over the given engine.
func NewComposer(engine *Engine) *Composer {
	return &Composer{
		engine: engine,
		cache:  make(map[string]*Template),
	}
}

// Compose renders each snippet path in order and joins the results with a
// blank line.
func (c *Composer) Compose(ctx context.Context, snippetPaths []string, data map[string]any) (string, error) {
	return c.ComposeContext(ctx, snippetPaths, NewContext(data))
}

// ComposeContext is Compose over a prepared Context. An empty snippet list
// composes to the empty string.
func (c *Composer) ComposeContext(ctx context.Context, snippetPaths []string, vars *Context) (string, error) {
	parts := make([]string, 0, len(snippetPaths))
	for _, path := range snippetPaths {
		tmpl, err := c.template(ctx, path)
		if err != nil {
			return "", err
		}
		out, err := tmpl.RenderContext(ctx, vars)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}

	return strings.Join(parts, ComposeSeparator), nil
}

// template returns the parsed template for a snippet path, loading it
// through the engine's store on first use.
func (c *Composer) template(ctx context.Context, path string) (*Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl, ok := c.cache[path]; ok {
		return tmpl, nil
	}

	tmpl, err := c.load(ctx, path)
	if err != nil {
		return nil, err
	}
	c.cache[path] = tmpl
	return tmpl, nil
}

func (c *Composer) load(ctx context.Context, path string) (*Template, error) {
	store := c.engine.Store()
	if store == nil {
		return c.engine.ParseFile(path)
	}
	source, _, err := store.Load(ctx, path)
	if err != nil {
		return nil, NewIncludeNotFoundError(path, Position{}, err)
	}
	return c.engine.parseNamed(path, source)
}

// ClearCache drops all cached templates, forcing reloads on next use.
func (c *Composer) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*Template)
}
