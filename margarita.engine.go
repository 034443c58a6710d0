package margarita

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/itsatony/go-margarita/internal"
)

// Engine parses templates and renders them against contexts. An engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	store          SnippetStore
	maxDepth       int
	lenientMissing bool
	logger         *zap.Logger
}

// New creates an Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	store := config.store
	if store == nil && config.basePath != "" {
		fsStore, err := NewFilesystemStore(config.basePath)
		if err != nil {
			return nil, err
		}
		store = fsStore
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxDepth := config.maxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Engine{
		store:          store,
		maxDepth:       maxDepth,
		lenientMissing: config.lenientMissing,
		logger:         logger,
	}, nil
}

// MustNew creates an Engine and panics on configuration errors.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("margarita: %v", err))
	}
	return engine
}

// Store returns the engine's snippet store, or nil when none is configured.
func (e *Engine) Store() SnippetStore {
	return e.store
}

// Parse compiles template source into an immutable Template.
func (e *Engine) Parse(source string) (*Template, error) {
	return e.parseNamed("", source)
}

// ParseFile reads and compiles a template file. Relative paths resolve
// against the engine's filesystem store when one is configured.
func (e *Engine) ParseFile(path string) (*Template, error) {
	resolved := path
	if fsStore, ok := e.store.(*FilesystemStore); ok && !filepath.IsAbs(path) {
		resolved = filepath.Join(fsStore.BasePath(), filepath.FromSlash(path))
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, NewIncludeNotFoundError(path, Position{}, err)
	}
	return e.parseNamed(path, string(data))
}

func (e *Engine) parseNamed(name, source string) (*Template, error) {
	metaRaw, nodes, err := internal.ParseDocument(source, e.logger)
	if err != nil {
		return nil, wrapInternalError(err)
	}
	meta, err := parseMetadata(metaRaw)
	if err != nil {
		return nil, err
	}
	return &Template{
		engine:   e,
		name:     name,
		source:   source,
		metadata: meta,
		nodes:    nodes,
	}, nil
}

// Render parses and renders template source in one step.
func (e *Engine) Render(ctx context.Context, source string, data map[string]any) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return tmpl.Render(ctx, data)
}

// RenderFile parses and renders a template file in one step.
func (e *Engine) RenderFile(ctx context.Context, path string, data map[string]any) (string, error) {
	tmpl, err := e.ParseFile(path)
	if err != nil {
		return "", err
	}
	return tmpl.Render(ctx, data)
}

// renderNodes runs the internal renderer over a parsed node list.
func (e *Engine) renderNodes(ctx context.Context, nodes []internal.Node, vars *Context) (string, error) {
	var loader internal.IncludeLoader
	if e.store != nil {
		loader = e.store
	}
	renderer := internal.NewRenderer(vars, loader, e.lenientMissing, e.maxDepth, e.logger)
	out, err := renderer.Render(ctx, nodes)
	if err != nil {
		// Context errors surface as their sentinels, not as an internal
		// error value that happens to wrap one.
		if errors.Is(err, context.Canceled) {
			return "", context.Canceled
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", context.DeadlineExceeded
		}
		return "", wrapInternalError(err)
	}
	return out, nil
}

// Render is a package-level convenience: parse and render source against a
// filesystem base path in one call.
func Render(ctx context.Context, source string, data map[string]any, basePath string) (string, error) {
	opts := make([]Option, 0, 1)
	if basePath != "" {
		opts = append(opts, WithBasePath(basePath))
	}
	engine, err := New(opts...)
	if err != nil {
		return "", err
	}
	return engine.Render(ctx, source, data)
}

// Parse is a package-level convenience using a store-less engine. Rendering
// the returned template fails on include markers.
func Parse(source string) (*Template, error) {
	engine, err := New()
	if err != nil {
		return nil, err
	}
	return engine.Parse(source)
}
