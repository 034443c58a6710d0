package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// Parser builds an AST from the lexer's token stream. Directive nesting is
// driven by indentation: a conditional's body is the run of lines indented
// deeper than the directive line, dedented by the first body line's width.
type Parser struct {
	tokens []Token
	pos    int
	logger *zap.Logger
}

// NewParser creates a parser for the given token stream.
func NewParser(tokens []Token, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		tokens: tokens,
		pos:    0,
		logger: logger,
	}
}

// ParseDocument tokenizes and parses source in one step, returning the raw
// front-matter body (empty when there is none) and the document's nodes.
func ParseDocument(source string, logger *zap.Logger) (string, []Node, error) {
	lexer := NewLexer(source, logger)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return "", nil, err
	}
	return NewParser(tokens, logger).Parse()
}

// Parse consumes the token stream and returns the raw front-matter body and
// the top-level nodes.
func (p *Parser) Parse() (string, []Node, error) {
	p.logger.Debug(LogMsgParserStart)

	metaRaw := p.parseFrontMatter()

	nodes, err := p.parseBody(-1, 0)
	if err != nil {
		return "", nil, err
	}
	if !p.current().IsEOF() {
		return "", nil, p.syntaxErrorf(p.current().Position, ErrMsgUnexpectedToken, p.current().Type)
	}

	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(nodes)))
	return metaRaw, nodes, nil
}

// parseFrontMatter consumes the fence tokens, if present, and returns the raw body.
func (p *Parser) parseFrontMatter() string {
	if p.current().Type != TokenTypeFenceOpen {
		return ""
	}
	p.advance()
	var raw string
	if p.current().IsText() {
		raw = p.current().Value
		p.advance()
	}
	if p.current().Type == TokenTypeFenceClose {
		p.advance()
	}
	return raw
}

// parseBody parses lines until EOF or until a content line's indentation
// drops to minWidth or below. minWidth -1 means parse to EOF (top level).
// dedent is the number of leading indentation bytes stripped from each line.
// Blank lines always belong to the current body regardless of indentation.
func (p *Parser) parseBody(minWidth, dedent int) ([]Node, error) {
	var nodes []Node

	for !p.current().IsEOF() {
		indent := p.current()
		if indent.Type != TokenTypeIndent {
			return nil, p.syntaxErrorf(indent.Position, ErrMsgUnexpectedToken, indent.Type)
		}

		if !p.isBlankLine() && indent.Width <= minWidth {
			break
		}

		if err := p.parseLine(&nodes, dedent); err != nil {
			return nil, err
		}
	}

	return coalesceLiterals(nodes), nil
}

// isBlankLine reports whether the current INDENT token starts a line with no content.
func (p *Parser) isBlankLine() bool {
	next := p.peekAhead(1)
	return next.IsNewline() || next.IsEOF()
}

// parseLine parses one physical line and appends its nodes.
func (p *Parser) parseLine(nodes *[]Node, dedent int) error {
	indent := p.current()
	p.advance()

	// Directive lines produce no output of their own; their indentation is
	// structural.
	switch p.current().Type {
	case TokenTypeIf:
		node, err := p.parseConditional(p.current())
		if err != nil {
			return err
		}
		*nodes = append(*nodes, node)
		return nil
	case TokenTypeElse:
		return p.indentErrorf(p.current().Position, ErrMsgElseWithoutIf)
	}

	// A line holding a single include marker splices the snippet without
	// contributing its own indentation or line break.
	if p.current().Type == TokenTypeInclude && p.isLineEndAhead(1) {
		inc := p.current()
		*nodes = append(*nodes, &IncludeNode{Path: inc.Value, Position: inc.Position})
		p.advance()
		p.skipNewline()
		return nil
	}

	if ws := dedentIndent(indent.Value, dedent); ws != "" {
		*nodes = append(*nodes, &LiteralNode{Text: ws, Position: indent.Position})
	}

	return p.parseInline(nodes, true)
}

// parseInline parses inline tokens up to and including the line terminator.
// When emitNewline is false the terminator is consumed silently.
func (p *Parser) parseInline(nodes *[]Node, emitNewline bool) error {
	for {
		tok := p.current()
		switch tok.Type {
		case TokenTypeEOF:
			return nil
		case TokenTypeNewline:
			if emitNewline {
				*nodes = append(*nodes, &LiteralNode{Text: tok.Value, Position: tok.Position})
			}
			p.advance()
			return nil
		case TokenTypeText:
			*nodes = append(*nodes, &LiteralNode{Text: tok.Value, Position: tok.Position})
			p.advance()
		case TokenTypeInterpStart:
			node, err := p.parseInterpolation()
			if err != nil {
				return err
			}
			*nodes = append(*nodes, node)
		case TokenTypeInclude:
			*nodes = append(*nodes, &IncludeNode{Path: tok.Value, Position: tok.Position})
			p.advance()
		case TokenTypeBlockOpen:
			node, err := p.parseBlock()
			if err != nil {
				return err
			}
			*nodes = append(*nodes, node)
		case TokenTypeBlockClose:
			return p.syntaxErrorf(tok.Position, ErrMsgUnmatchedBlockClose)
		default:
			return p.syntaxErrorf(tok.Position, ErrMsgUnexpectedToken, tok.Type)
		}
	}
}

// parseInterpolation parses the INTERP_START PATH INTERP_END triple.
func (p *Parser) parseInterpolation() (Node, error) {
	start := p.current()
	p.advance()
	path := p.current()
	if path.Type != TokenTypePath {
		return nil, p.syntaxErrorf(path.Position, ErrMsgUnexpectedToken, path.Type)
	}
	p.advance()
	if p.current().Type != TokenTypeInterpEnd {
		return nil, p.syntaxErrorf(p.current().Position, ErrMsgUnexpectedToken, p.current().Type)
	}
	p.advance()
	return &InterpolationNode{Path: path.Value, Position: start.Position}, nil
}

// parseBlock parses a literal block; children are text and interpolations only.
func (p *Parser) parseBlock() (Node, error) {
	open := p.current()
	p.advance()

	var children []Node
	for {
		tok := p.current()
		switch tok.Type {
		case TokenTypeBlockClose:
			p.advance()
			return &BlockNode{Children: coalesceLiterals(children), Position: open.Position}, nil
		case TokenTypeText:
			children = append(children, &LiteralNode{Text: tok.Value, Position: tok.Position})
			p.advance()
		case TokenTypeInterpStart:
			node, err := p.parseInterpolation()
			if err != nil {
				return nil, err
			}
			children = append(children, node)
		default:
			return nil, p.syntaxErrorf(tok.Position, ErrMsgUnexpectedToken, tok.Type)
		}
	}
}

// parseConditional parses an if directive and its branches. The directive's
// body is either inline after the colon or the indented lines that follow.
func (p *Parser) parseConditional(ifTok Token) (Node, error) {
	p.logger.Debug(LogMsgConditionEval, zap.String(LogFieldCondition, ifTok.Value))
	p.advance()

	node := &ConditionalNode{
		Condition: ifTok.Value,
		Position:  ifTok.Position,
	}

	if !p.isLineEndAhead(0) {
		return p.parseInlineBranches(node)
	}
	p.skipNewline()

	thenNodes, err := p.parseBranch(ifTok.Width)
	if err != nil {
		return nil, err
	}
	node.Then = thenNodes

	if p.atElse() {
		elseTok := p.peekAhead(1)
		if elseTok.Width != ifTok.Width {
			return nil, p.indentErrorf(elseTok.Position, ErrMsgElseIndentMismatch)
		}
		p.advance()
		p.advance()

		if !p.isLineEndAhead(0) {
			var elseNodes []Node
			if err := p.parseInline(&elseNodes, true); err != nil {
				return nil, err
			}
			node.Else = coalesceLiterals(elseNodes)
		} else {
			p.skipNewline()
			elseNodes, err := p.parseBranch(ifTok.Width)
			if err != nil {
				return nil, err
			}
			node.Else = elseNodes
		}
		if len(node.Else) == 0 {
			return nil, p.syntaxErrorf(elseTok.Position, ErrMsgEmptyElseBody)
		}
	}

	if len(node.Then) == 0 {
		return nil, p.syntaxErrorf(ifTok.Position, ErrMsgEmptyIfBody)
	}
	return node, nil
}

// parseInlineBranches parses `if path: <then> [else: <else>]` on one line.
func (p *Parser) parseInlineBranches(node *ConditionalNode) (Node, error) {
	var thenNodes []Node
	for {
		tok := p.current()
		if tok.IsEOF() || tok.IsNewline() || tok.Type == TokenTypeElse {
			break
		}
		if err := p.parseInlineToken(&thenNodes, tok); err != nil {
			return nil, err
		}
	}
	node.Then = coalesceLiterals(thenNodes)
	if len(node.Then) == 0 {
		return nil, p.syntaxErrorf(node.Position, ErrMsgEmptyIfBody)
	}

	if p.current().Type == TokenTypeElse {
		elsePos := p.current().Position
		p.advance()
		var elseNodes []Node
		for {
			tok := p.current()
			if tok.IsEOF() || tok.IsNewline() {
				break
			}
			if err := p.parseInlineToken(&elseNodes, tok); err != nil {
				return nil, err
			}
		}
		node.Else = coalesceLiterals(elseNodes)
		if len(node.Else) == 0 {
			return nil, p.syntaxErrorf(elsePos, ErrMsgEmptyElseBody)
		}
		// The line terminator belongs to whichever branch renders, so both
		// get a copy.
		if nl := p.current(); nl.IsNewline() {
			node.Then = coalesceLiterals(append(node.Then,
				&LiteralNode{Text: nl.Value, Position: nl.Position}))
			node.Else = coalesceLiterals(append(node.Else,
				&LiteralNode{Text: nl.Value, Position: nl.Position}))
			p.advance()
		}
		return node, nil
	}

	// Without an else the line terminator still belongs to the then branch,
	// keeping line structure intact when the branch renders.
	if p.current().IsNewline() {
		node.Then = append(node.Then, &LiteralNode{Text: p.current().Value, Position: p.current().Position})
		node.Then = coalesceLiterals(node.Then)
		p.advance()
	}
	return node, nil
}

// parseInlineToken dispatches a single non-structural inline token.
func (p *Parser) parseInlineToken(nodes *[]Node, tok Token) error {
	switch tok.Type {
	case TokenTypeText:
		*nodes = append(*nodes, &LiteralNode{Text: tok.Value, Position: tok.Position})
		p.advance()
	case TokenTypeInterpStart:
		node, err := p.parseInterpolation()
		if err != nil {
			return err
		}
		*nodes = append(*nodes, node)
	case TokenTypeInclude:
		*nodes = append(*nodes, &IncludeNode{Path: tok.Value, Position: tok.Position})
		p.advance()
	case TokenTypeBlockOpen:
		node, err := p.parseBlock()
		if err != nil {
			return err
		}
		*nodes = append(*nodes, node)
	case TokenTypeBlockClose:
		return p.syntaxErrorf(tok.Position, ErrMsgUnmatchedBlockClose)
	default:
		return p.syntaxErrorf(tok.Position, ErrMsgUnexpectedToken, tok.Type)
	}
	return nil
}

// parseBranch parses the indented body of a directive at width d. The first
// content line fixes the body width b; content lines between d and b are
// malformed, and the branch ends at the first content line at or above d.
func (p *Parser) parseBranch(d int) ([]Node, error) {
	b, ok := p.peekBodyWidth(d)
	if !ok {
		return nil, nil
	}

	var nodes []Node
	for !p.current().IsEOF() {
		indent := p.current()
		if indent.Type != TokenTypeIndent {
			return nil, p.syntaxErrorf(indent.Position, ErrMsgUnexpectedToken, indent.Type)
		}
		if !p.isBlankLine() {
			if indent.Width <= d {
				break
			}
			if indent.Width < b {
				return nil, p.indentErrorf(indent.Position, ErrMsgBodyIndentMismatch)
			}
		}
		if err := p.parseLine(&nodes, b); err != nil {
			return nil, err
		}
	}
	return coalesceLiterals(nodes), nil
}

// peekBodyWidth finds the width of the first content line ahead, skipping
// blank lines. Returns false when the body is empty (next content line is at
// or above the directive width, or the stream ends).
func (p *Parser) peekBodyWidth(d int) (int, bool) {
	offset := 0
	for {
		tok := p.peekAhead(offset)
		if tok.IsEOF() {
			return 0, false
		}
		next := p.peekAhead(offset + 1)
		if next.IsNewline() {
			offset += 2
			continue
		}
		if next.IsEOF() {
			return 0, false
		}
		if tok.Width <= d {
			return 0, false
		}
		return tok.Width, true
	}
}

// atElse reports whether the current line is an else directive line.
func (p *Parser) atElse() bool {
	return p.current().Type == TokenTypeIndent && p.peekAhead(1).Type == TokenTypeElse
}

// isLineEndAhead reports whether the token at the given offset ends the line.
func (p *Parser) isLineEndAhead(offset int) bool {
	tok := p.peekAhead(offset)
	return tok.IsNewline() || tok.IsEOF()
}

// skipNewline consumes a line terminator without emitting it.
func (p *Parser) skipNewline() {
	if p.current().IsNewline() {
		p.advance()
	}
}

// dedentIndent strips the structural prefix from a line's indentation,
// leaving the remainder as literal text.
func dedentIndent(ws string, dedent int) string {
	if dedent <= 0 {
		return ws
	}
	if len(ws) <= dedent {
		return ""
	}
	return ws[dedent:]
}

// coalesceLiterals merges adjacent literal nodes into single runs.
func coalesceLiterals(nodes []Node) []Node {
	if len(nodes) < 2 {
		return nodes
	}
	out := nodes[:0]
	for _, node := range nodes {
		if lit, ok := node.(*LiteralNode); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*LiteralNode); ok {
				prev.Text += lit.Text
				continue
			}
		}
		out = append(out, node)
	}
	return out
}

// Token cursor helpers

// current returns the token at the cursor
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return NewEOFToken(Position{})
	}
	return p.tokens[p.pos]
}

// peekAhead returns the token at cursor+offset
func (p *Parser) peekAhead(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return NewEOFToken(Position{})
	}
	return p.tokens[idx]
}

// advance moves the cursor forward
func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) syntaxErrorf(pos Position, format string, args ...any) error {
	return &ParserError{
		Kind:     ParseKindSyntax,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
}

func (p *Parser) indentErrorf(pos Position, format string, args ...any) error {
	return &ParserError{
		Kind:     ParseKindIndentation,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
}

// ParserErrorKind distinguishes structural syntax errors from indentation errors.
type ParserErrorKind int

const (
	// ParseKindSyntax is a malformed construct independent of indentation.
	ParseKindSyntax ParserErrorKind = iota
	// ParseKindIndentation is a misaligned directive body or else line.
	ParseKindIndentation
)

// ParserError represents a parser error with position
type ParserError struct {
	Kind     ParserErrorKind
	Message  string
	Position Position
}

func (e *ParserError) Error() string {
	return fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Position)
}

// Error message constants for parser
const (
	ErrMsgUnexpectedToken     = "unexpected %s token"
	ErrMsgUnmatchedBlockClose = "unmatched block close marker"
	ErrMsgElseWithoutIf       = "else without a matching if"
	ErrMsgElseIndentMismatch  = "else indentation does not match its if"
	ErrMsgBodyIndentMismatch  = "line indented between directive and its body"
	ErrMsgEmptyIfBody         = "if directive with empty body"
	ErrMsgEmptyElseBody       = "else directive with empty body"
)
