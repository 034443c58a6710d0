package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func parse(t *testing.T, input string) (string, []Node) {
	t.Helper()
	metaRaw, nodes, err := ParseDocument(input, zap.NewNop())
	require.NoError(t, err)
	return metaRaw, nodes
}

func parseErr(t *testing.T, input string) *ParserError {
	t.Helper()
	_, _, err := ParseDocument(input, zap.NewNop())
	require.Error(t, err)
	var parserErr *ParserError
	require.ErrorAs(t, err, &parserErr)
	return parserErr
}

func literalText(t *testing.T, node Node) string {
	t.Helper()
	lit, ok := node.(*LiteralNode)
	require.True(t, ok, "expected literal, got %s", node)
	return lit.Text
}

func TestParser_PlainText(t *testing.T) {
	t.Run("adjacent text coalesces into one literal", func(t *testing.T) {
		_, nodes := parse(t, "Line 1\n  Line 2\n")
		require.Len(t, nodes, 1)
		assert.Equal(t, "Line 1\n  Line 2\n", literalText(t, nodes[0]))
	})

	t.Run("empty input yields no nodes", func(t *testing.T) {
		_, nodes := parse(t, "")
		assert.Empty(t, nodes)
	})
}

func TestParser_Interpolation(t *testing.T) {
	_, nodes := parse(t, "Hello, ${user.name}!")
	require.Len(t, nodes, 3)
	assert.Equal(t, "Hello, ", literalText(t, nodes[0]))

	interp, ok := nodes[1].(*InterpolationNode)
	require.True(t, ok)
	assert.Equal(t, "user.name", interp.Path)
	assert.Equal(t, "!", literalText(t, nodes[2]))
}

func TestParser_Block(t *testing.T) {
	_, nodes := parse(t, "<< A ${x} B >>")
	require.Len(t, nodes, 1)

	block, ok := nodes[0].(*BlockNode)
	require.True(t, ok)
	require.Len(t, block.Children, 3)
	assert.Equal(t, "A ", literalText(t, block.Children[0]))
	assert.IsType(t, &InterpolationNode{}, block.Children[1])
	assert.Equal(t, " B", literalText(t, block.Children[2]))
}

func TestParser_Include(t *testing.T) {
	t.Run("standalone include line carries no indentation or newline", func(t *testing.T) {
		_, nodes := parse(t, "before\n  [[ a.marg ]]\nafter")
		require.Len(t, nodes, 3)
		assert.Equal(t, "before\n", literalText(t, nodes[0]))

		inc, ok := nodes[1].(*IncludeNode)
		require.True(t, ok)
		assert.Equal(t, "a.marg", inc.Path)
		assert.Equal(t, "after", literalText(t, nodes[2]))
	})

	t.Run("inline include keeps surrounding text", func(t *testing.T) {
		_, nodes := parse(t, "x [[ a.marg ]] y")
		require.Len(t, nodes, 3)
		assert.Equal(t, "x ", literalText(t, nodes[0]))
		assert.IsType(t, &IncludeNode{}, nodes[1])
		assert.Equal(t, " y", literalText(t, nodes[2]))
	})
}

func TestParser_Conditional_BlockForm(t *testing.T) {
	t.Run("then branch only", func(t *testing.T) {
		_, nodes := parse(t, "if x:\n  A\nnext")
		require.Len(t, nodes, 2)

		cond, ok := nodes[0].(*ConditionalNode)
		require.True(t, ok)
		assert.Equal(t, "x", cond.Condition)
		require.Len(t, cond.Then, 1)
		assert.Equal(t, "A\n", literalText(t, cond.Then[0]))
		assert.Empty(t, cond.Else)
		assert.Equal(t, "next", literalText(t, nodes[1]))
	})

	t.Run("then and else branches", func(t *testing.T) {
		_, nodes := parse(t, "if x:\n  A\nelse:\n  B\n")
		require.Len(t, nodes, 1)

		cond := nodes[0].(*ConditionalNode)
		require.Len(t, cond.Then, 1)
		assert.Equal(t, "A\n", literalText(t, cond.Then[0]))
		require.Len(t, cond.Else, 1)
		assert.Equal(t, "B\n", literalText(t, cond.Else[0]))
	})

	t.Run("body dedented by first body line width", func(t *testing.T) {
		_, nodes := parse(t, "if x:\n    A\n      deeper\n")
		cond := nodes[0].(*ConditionalNode)
		require.Len(t, cond.Then, 1)
		assert.Equal(t, "A\n  deeper\n", literalText(t, cond.Then[0]))
	})

	t.Run("nested conditionals", func(t *testing.T) {
		_, nodes := parse(t, "if a:\n  if b:\n    X\n  Y\n")
		cond := nodes[0].(*ConditionalNode)
		require.Len(t, cond.Then, 2)

		inner, ok := cond.Then[0].(*ConditionalNode)
		require.True(t, ok)
		assert.Equal(t, "b", inner.Condition)
		require.Len(t, inner.Then, 1)
		assert.Equal(t, "X\n", literalText(t, inner.Then[0]))
		assert.Equal(t, "Y\n", literalText(t, cond.Then[1]))
	})

	t.Run("blank lines stay in the body", func(t *testing.T) {
		_, nodes := parse(t, "if x:\n  A\n\n  B\nend")
		require.Len(t, nodes, 2)
		cond := nodes[0].(*ConditionalNode)
		require.Len(t, cond.Then, 1)
		assert.Equal(t, "A\n\nB\n", literalText(t, cond.Then[0]))
	})
}

func TestParser_Conditional_InlineForm(t *testing.T) {
	t.Run("inline then and else", func(t *testing.T) {
		_, nodes := parse(t, "if x: << A >> else: << B >>")
		require.Len(t, nodes, 1)

		cond := nodes[0].(*ConditionalNode)
		require.Len(t, cond.Then, 1)
		assert.IsType(t, &BlockNode{}, cond.Then[0])
		require.Len(t, cond.Else, 1)
		assert.IsType(t, &BlockNode{}, cond.Else[0])
	})

	t.Run("inline then keeps its line terminator", func(t *testing.T) {
		_, nodes := parse(t, "if x: yes\nafter")
		require.Len(t, nodes, 2)

		cond := nodes[0].(*ConditionalNode)
		require.Len(t, cond.Then, 1)
		assert.Equal(t, "yes\n", literalText(t, cond.Then[0]))
		assert.Equal(t, "after", literalText(t, nodes[1]))
	})

	t.Run("line terminator reaches both branches", func(t *testing.T) {
		_, nodes := parse(t, "if x: A else: B\nnext")
		require.Len(t, nodes, 2)

		cond := nodes[0].(*ConditionalNode)
		require.Len(t, cond.Then, 1)
		assert.Equal(t, "A\n", literalText(t, cond.Then[0]))
		require.Len(t, cond.Else, 1)
		assert.Equal(t, "B\n", literalText(t, cond.Else[0]))
		assert.Equal(t, "next", literalText(t, nodes[1]))
	})
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ParserErrorKind
	}{
		{name: "else without if", input: "else:\n  B\n", kind: ParseKindIndentation},
		{name: "else indent mismatch", input: "if x:\n  A\n  else:\n  B\n", kind: ParseKindIndentation},
		{name: "body shallower than first line", input: "if x:\n    A\n  B\n", kind: ParseKindIndentation},
		{name: "empty if body", input: "if x:\n", kind: ParseKindSyntax},
		{name: "empty if body before dedent", input: "if x:\nnext", kind: ParseKindSyntax},
		{name: "unmatched block close", input: "abc >> def", kind: ParseKindSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parserErr := parseErr(t, tt.input)
			assert.Equal(t, tt.kind, parserErr.Kind)
		})
	}
}

func TestParser_FrontMatter(t *testing.T) {
	t.Run("raw body surfaced separately", func(t *testing.T) {
		metaRaw, nodes := parse(t, "---\ntitle: x\n---\nbody")
		assert.Equal(t, "title: x\n", metaRaw)
		require.Len(t, nodes, 1)
		assert.Equal(t, "body", literalText(t, nodes[0]))
	})

	t.Run("no front matter", func(t *testing.T) {
		metaRaw, _ := parse(t, "body")
		assert.Empty(t, metaRaw)
	})
}
