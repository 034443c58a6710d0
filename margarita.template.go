package margarita

import (
	"context"

	"github.com/itsatony/go-margarita/internal"
)

// Template is a parsed template: immutable front-matter metadata plus an
// immutable node tree. Parse once, render many times; a template is safe
// for concurrent renders.
type Template struct {
	engine   *Engine
	name     string
	source   string
	metadata *Metadata
	nodes    []internal.Node
}

// Name returns the template's file path, or "" for string templates.
func (t *Template) Name() string {
	return t.name
}

// Source returns the original template source.
func (t *Template) Source() string {
	return t.source
}

// Metadata returns the template's front matter. Never nil.
func (t *Template) Metadata() *Metadata {
	return t.metadata
}

// Render produces the template's output against the given variables.
func (t *Template) Render(ctx context.Context, data map[string]any) (string, error) {
	return t.RenderContext(ctx, NewContext(data))
}

// RenderContext renders against a prepared Context, allowing one context
// snapshot to serve many templates.
func (t *Template) RenderContext(ctx context.Context, vars *Context) (string, error) {
	if vars == nil {
		vars = NewContext(nil)
	}
	return t.engine.renderNodes(ctx, t.nodes, vars)
}
