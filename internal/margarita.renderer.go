package internal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ContextGetter resolves a variable path to a value. The second return
// reports whether the path resolved at all.
type ContextGetter interface {
	Get(path string) (any, bool)
}

// IncludeLoader resolves an include path to snippet source. The canonical
// form identifies the snippet for cycle detection, so two spellings of the
// same snippet collide.
type IncludeLoader interface {
	Load(ctx context.Context, path string) (source string, canonical string, err error)
}

// Renderer walks an AST and produces output text. A renderer carries
// per-render include state and is not safe for concurrent use; create one
// per render.
type Renderer struct {
	getter   ContextGetter
	loader   IncludeLoader
	lenient  bool
	maxDepth int
	logger   *zap.Logger

	open  map[string]bool
	chain []string
}

// NewRenderer creates a renderer over the given context and snippet source.
// loader may be nil, in which case include markers fail.
func NewRenderer(getter ContextGetter, loader IncludeLoader, lenient bool, maxDepth int, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	logger.Debug(LogMsgRendererCreated, zap.Int(LogFieldDepth, maxDepth))
	return &Renderer{
		getter:   getter,
		loader:   loader,
		lenient:  lenient,
		maxDepth: maxDepth,
		logger:   logger,
		open:     make(map[string]bool),
	}
}

// Render produces the output text for the given nodes.
func (r *Renderer) Render(ctx context.Context, nodes []Node) (string, error) {
	r.logger.Debug(LogMsgRenderStart, zap.Int(LogFieldNodes, len(nodes)))
	var out strings.Builder
	if err := r.renderNodes(ctx, nodes, &out); err != nil {
		return "", err
	}
	r.logger.Debug(LogMsgRenderEnd)
	return out.String(), nil
}

func (r *Renderer) renderNodes(ctx context.Context, nodes []Node, out *strings.Builder) error {
	for _, node := range nodes {
		if err := r.renderNode(ctx, node, out); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderNode(ctx context.Context, node Node, out *strings.Builder) error {
	switch n := node.(type) {
	case *LiteralNode:
		out.WriteString(n.Text)
		return nil
	case *InterpolationNode:
		return r.renderInterpolation(n, out)
	case *BlockNode:
		return r.renderNodes(ctx, n.Children, out)
	case *ConditionalNode:
		return r.renderConditional(ctx, n, out)
	case *IncludeNode:
		return r.renderInclude(ctx, n, out)
	default:
		return &RenderError{
			Kind:     RenderKindContext,
			Message:  fmt.Sprintf(ErrMsgUnknownNode, node.Type()),
			Position: node.Pos(),
		}
	}
}

func (r *Renderer) renderInterpolation(n *InterpolationNode, out *strings.Builder) error {
	value, ok := r.getter.Get(n.Path)
	if !ok {
		if r.lenient {
			return nil
		}
		return &RenderError{
			Kind:     RenderKindContext,
			Message:  ErrMsgMissingVariable,
			Path:     n.Path,
			Position: n.Position,
		}
	}
	out.WriteString(ValueToString(value))
	return nil
}

// renderConditional picks a branch by truthiness. An unresolved condition
// path is falsy, never an error.
func (r *Renderer) renderConditional(ctx context.Context, n *ConditionalNode, out *strings.Builder) error {
	value, _ := r.getter.Get(n.Condition)
	truthy := IsTruthy(value)
	r.logger.Debug(LogMsgBranchSelected,
		zap.String(LogFieldCondition, n.Condition),
		zap.Bool(LogFieldBranch, truthy))
	if truthy {
		return r.renderNodes(ctx, n.Then, out)
	}
	return r.renderNodes(ctx, n.Else, out)
}

// renderInclude loads, parses, and renders a snippet in place. The snippet's
// front matter, if any, is discarded; only the calling document's metadata
// is surfaced. The snippet stays marked open for the duration of its render
// so that cycles fail on re-entry.
func (r *Renderer) renderInclude(ctx context.Context, n *IncludeNode, out *strings.Builder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.loader == nil {
		return &RenderError{
			Kind:     RenderKindIncludeNotFound,
			Message:  ErrMsgNoSnippetSource,
			Path:     n.Path,
			Position: n.Position,
		}
	}
	if len(r.chain) >= r.maxDepth {
		return &RenderError{
			Kind:     RenderKindIncludeCycle,
			Message:  fmt.Sprintf(ErrMsgDepthExceeded, r.maxDepth),
			Path:     n.Path,
			Position: n.Position,
		}
	}

	source, canonical, err := r.loader.Load(ctx, n.Path)
	if err != nil {
		return &RenderError{
			Kind:     RenderKindIncludeNotFound,
			Message:  ErrMsgIncludeLoadFailed,
			Path:     n.Path,
			Position: n.Position,
			Cause:    err,
		}
	}

	if r.open[canonical] {
		return &RenderError{
			Kind:     RenderKindIncludeCycle,
			Message:  fmt.Sprintf(ErrMsgIncludeCycle, cycleChain(r.chain, canonical)),
			Path:     n.Path,
			Position: n.Position,
		}
	}

	r.logger.Debug(LogMsgIncludeDescend,
		zap.String(LogFieldPath, n.Path),
		zap.String(LogFieldCanonical, canonical),
		zap.Int(LogFieldDepth, len(r.chain)+1))

	r.open[canonical] = true
	r.chain = append(r.chain, canonical)
	defer func() {
		delete(r.open, canonical)
		r.chain = r.chain[:len(r.chain)-1]
	}()

	_, nodes, err := ParseDocument(source, r.logger)
	if err != nil {
		return &RenderError{
			Kind:     RenderKindIncludeNotFound,
			Message:  ErrMsgIncludeParseFailed,
			Path:     n.Path,
			Position: n.Position,
			Cause:    err,
		}
	}
	r.logger.Debug(LogMsgIncludeResolved,
		zap.String(LogFieldCanonical, canonical),
		zap.Int(LogFieldNodes, len(nodes)))

	return r.renderNodes(ctx, nodes, out)
}

// cycleChain formats the open include chain for the cycle error message.
func cycleChain(chain []string, repeat string) string {
	parts := make([]string, 0, len(chain)+1)
	parts = append(parts, chain...)
	parts = append(parts, repeat)
	return strings.Join(parts, " -> ")
}

// RenderErrorKind classifies render failures.
type RenderErrorKind int

const (
	// RenderKindContext is a missing or unresolvable variable.
	RenderKindContext RenderErrorKind = iota
	// RenderKindIncludeNotFound is a snippet that could not be loaded or parsed.
	RenderKindIncludeNotFound
	// RenderKindIncludeCycle is a cyclic or too-deep include chain.
	RenderKindIncludeCycle
)

// RenderError represents a render-time failure with position and path context.
type RenderError struct {
	Kind     RenderErrorKind
	Message  string
	Path     string
	Position Position
	Cause    error
}

func (e *RenderError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf(ErrFmtWithCause, msg, e.Cause)
	}
	return fmt.Sprintf(ErrFmtWithPosition, msg, e.Position)
}

// Unwrap returns the underlying cause, if any.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error message constants for renderer
const (
	ErrMsgMissingVariable    = "missing context variable"
	ErrMsgNoSnippetSource    = "no snippet source configured"
	ErrMsgIncludeLoadFailed  = "failed to load included snippet"
	ErrMsgIncludeParseFailed = "failed to parse included snippet"
	ErrMsgIncludeCycle       = "include cycle detected: %s"
	ErrMsgDepthExceeded      = "include depth exceeded limit of %d"
	ErrMsgUnknownNode        = "unknown node type %s"
)
