package internal

import "fmt"

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// TokenType identifies the kind of a lexical token
type TokenType int

const (
	// TokenTypeEOF marks the end of the token stream
	TokenTypeEOF TokenType = iota
	// TokenTypeText is a run of literal text without newlines
	TokenTypeText
	// TokenTypeIndent is the leading whitespace of a physical line
	TokenTypeIndent
	// TokenTypeNewline is a line terminator ("\n" or "\r\n"), preserved verbatim
	TokenTypeNewline
	// TokenTypeInterpStart is the "${" interpolation opener
	TokenTypeInterpStart
	// TokenTypePath is a variable path inside an interpolation
	TokenTypePath
	// TokenTypeInterpEnd is the "}" interpolation closer
	TokenTypeInterpEnd
	// TokenTypeBlockOpen is the "<<" literal block opener
	TokenTypeBlockOpen
	// TokenTypeBlockClose is the ">>" literal block closer
	TokenTypeBlockClose
	// TokenTypeIf is an "if <path>:" directive; Value holds the condition path
	TokenTypeIf
	// TokenTypeElse is an "else:" directive
	TokenTypeElse
	// TokenTypeInclude is an "[[ path ]]" include marker; Value holds the path
	TokenTypeInclude
	// TokenTypeFenceOpen is the opening "---" metadata fence at position 0
	TokenTypeFenceOpen
	// TokenTypeFenceClose is the closing "---" metadata fence
	TokenTypeFenceClose
)

// String returns the token type name
func (t TokenType) String() string {
	switch t {
	case TokenTypeEOF:
		return "EOF"
	case TokenTypeText:
		return "TEXT"
	case TokenTypeIndent:
		return "INDENT"
	case TokenTypeNewline:
		return "NEWLINE"
	case TokenTypeInterpStart:
		return "INTERP_START"
	case TokenTypePath:
		return "PATH"
	case TokenTypeInterpEnd:
		return "INTERP_END"
	case TokenTypeBlockOpen:
		return "BLOCK_OPEN"
	case TokenTypeBlockClose:
		return "BLOCK_CLOSE"
	case TokenTypeIf:
		return "IF"
	case TokenTypeElse:
		return "ELSE"
	case TokenTypeInclude:
		return "INCLUDE"
	case TokenTypeFenceOpen:
		return "FENCE_OPEN"
	case TokenTypeFenceClose:
		return "FENCE_CLOSE"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token produced by the lexer
type Token struct {
	Type     TokenType // The type of token
	Value    string    // The token's value/content
	Width    int       // Indentation width for INDENT/IF/ELSE tokens
	Position Position  // Source position
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("Token{%s @ %s}", t.Type, t.Position)
	}
	return fmt.Sprintf("Token{%s: %q @ %s}", t.Type, t.Value, t.Position)
}

// IsEOF returns true if this is an end-of-file token
func (t Token) IsEOF() bool {
	return t.Type == TokenTypeEOF
}

// IsText returns true if this is a text token
func (t Token) IsText() bool {
	return t.Type == TokenTypeText
}

// IsNewline returns true if this is a line terminator token
func (t Token) IsNewline() bool {
	return t.Type == TokenTypeNewline
}

// IsDirective returns true for if/else directive tokens
func (t Token) IsDirective() bool {
	return t.Type == TokenTypeIf || t.Type == TokenTypeElse
}

// NewToken creates a new token with the given type, value, and position
func NewToken(tokenType TokenType, value string, pos Position) Token {
	return Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	}
}

// NewEOFToken creates an EOF token at the given position
func NewEOFToken(pos Position) Token {
	return Token{
		Type:     TokenTypeEOF,
		Position: pos,
	}
}

// NewTextToken creates a text token with the given content
func NewTextToken(content string, pos Position) Token {
	return Token{
		Type:     TokenTypeText,
		Value:    content,
		Position: pos,
	}
}

// NewIndentToken creates an indent token for a line's leading whitespace
func NewIndentToken(ws string, width int, pos Position) Token {
	return Token{
		Type:     TokenTypeIndent,
		Value:    ws,
		Width:    width,
		Position: pos,
	}
}

// NewNewlineToken creates a newline token preserving the exact terminator
func NewNewlineToken(terminator string, pos Position) Token {
	return Token{
		Type:     TokenTypeNewline,
		Value:    terminator,
		Position: pos,
	}
}

// NewInterpStartToken creates an interpolation opener token
func NewInterpStartToken(pos Position) Token {
	return Token{
		Type:     TokenTypeInterpStart,
		Position: pos,
	}
}

// NewPathToken creates a variable path token
func NewPathToken(path string, pos Position) Token {
	return Token{
		Type:     TokenTypePath,
		Value:    path,
		Position: pos,
	}
}

// NewInterpEndToken creates an interpolation closer token
func NewInterpEndToken(pos Position) Token {
	return Token{
		Type:     TokenTypeInterpEnd,
		Position: pos,
	}
}

// NewBlockOpenToken creates a literal block opener token
func NewBlockOpenToken(pos Position) Token {
	return Token{
		Type:     TokenTypeBlockOpen,
		Position: pos,
	}
}

// NewBlockCloseToken creates a literal block closer token
func NewBlockCloseToken(pos Position) Token {
	return Token{
		Type:     TokenTypeBlockClose,
		Position: pos,
	}
}

// NewIfToken creates an if directive token with its condition and indent width
func NewIfToken(condition string, width int, pos Position) Token {
	return Token{
		Type:     TokenTypeIf,
		Value:    condition,
		Width:    width,
		Position: pos,
	}
}

// NewElseToken creates an else directive token with its indent width
func NewElseToken(width int, pos Position) Token {
	return Token{
		Type:     TokenTypeElse,
		Width:    width,
		Position: pos,
	}
}

// NewIncludeToken creates an include marker token holding the literal path
func NewIncludeToken(path string, pos Position) Token {
	return Token{
		Type:     TokenTypeInclude,
		Value:    path,
		Position: pos,
	}
}

// NewFenceOpenToken creates a metadata fence opener token
func NewFenceOpenToken(pos Position) Token {
	return Token{
		Type:     TokenTypeFenceOpen,
		Position: pos,
	}
}

// NewFenceCloseToken creates a metadata fence closer token
func NewFenceCloseToken(pos Position) Token {
	return Token{
		Type:     TokenTypeFenceClose,
		Position: pos,
	}
}
