package internal

import (
	"fmt"
	"strings"
)

// NodeType identifies the kind of an AST node
type NodeType int

const (
	// NodeTypeLiteral is a run of literal text
	NodeTypeLiteral NodeType = iota
	// NodeTypeInterpolation is a variable substitution
	NodeTypeInterpolation
	// NodeTypeBlock is a literal block with interleaved interpolations
	NodeTypeBlock
	// NodeTypeConditional is an if/else directive
	NodeTypeConditional
	// NodeTypeInclude is a snippet inclusion
	NodeTypeInclude
)

// String returns the node type name
func (t NodeType) String() string {
	switch t {
	case NodeTypeLiteral:
		return "Literal"
	case NodeTypeInterpolation:
		return "Interpolation"
	case NodeTypeBlock:
		return "Block"
	case NodeTypeConditional:
		return "Conditional"
	case NodeTypeInclude:
		return "Include"
	default:
		return "Unknown"
	}
}

// Node is the interface implemented by all AST nodes
type Node interface {
	// Type returns the node type
	Type() NodeType
	// Pos returns the source position of the node
	Pos() Position
	// String returns a debug representation
	String() string
}

// LiteralNode is verbatim template text
type LiteralNode struct {
	Text     string
	Position Position
}

func (n *LiteralNode) Type() NodeType { return NodeTypeLiteral }
func (n *LiteralNode) Pos() Position  { return n.Position }
func (n *LiteralNode) String() string {
	return fmt.Sprintf("Literal(%q)", truncateForDisplay(n.Text))
}

// InterpolationNode substitutes a context value addressed by a variable path
type InterpolationNode struct {
	Path     string
	Position Position
}

func (n *InterpolationNode) Type() NodeType { return NodeTypeInterpolation }
func (n *InterpolationNode) Pos() Position  { return n.Position }
func (n *InterpolationNode) String() string {
	return fmt.Sprintf("Interpolation(%s)", n.Path)
}

// BlockNode is a literal block whose children are literal text and
// interpolations only. Indentation and directives have no meaning inside.
type BlockNode struct {
	Children []Node
	Position Position
}

func (n *BlockNode) Type() NodeType { return NodeTypeBlock }
func (n *BlockNode) Pos() Position  { return n.Position }
func (n *BlockNode) String() string {
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = child.String()
	}
	return fmt.Sprintf("Block[%s]", strings.Join(parts, ", "))
}

// ConditionalNode renders Then when the condition path is truthy, Else otherwise.
// Else may be empty.
type ConditionalNode struct {
	Condition string
	Then      []Node
	Else      []Node
	Position  Position
}

func (n *ConditionalNode) Type() NodeType { return NodeTypeConditional }
func (n *ConditionalNode) Pos() Position  { return n.Position }
func (n *ConditionalNode) String() string {
	if len(n.Else) == 0 {
		return fmt.Sprintf("Conditional(%s, then=%d)", n.Condition, len(n.Then))
	}
	return fmt.Sprintf("Conditional(%s, then=%d, else=%d)", n.Condition, len(n.Then), len(n.Else))
}

// IncludeNode splices in another snippet, resolved at render time.
type IncludeNode struct {
	Path     string
	Position Position
}

func (n *IncludeNode) Type() NodeType { return NodeTypeInclude }
func (n *IncludeNode) Pos() Position  { return n.Position }
func (n *IncludeNode) String() string {
	return fmt.Sprintf("Include(%s)", n.Path)
}

// truncateForDisplay shortens long strings for debug output
func truncateForDisplay(s string) string {
	if len(s) > MaxStringDisplayLength {
		return s[:TruncatedStringLength] + TruncationSuffix
	}
	return s
}
