package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Lexer tokenizes template source into a flat token stream.
// It is line-aware: every physical line outside a literal block starts with
// an INDENT token and ends with a NEWLINE token, so the parser can track
// significant whitespace without re-scanning the source. Literal blocks
// (<< >>) suspend line structure; their text is emitted verbatim.
type Lexer struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns a token stream.
func (l *Lexer) Tokenize() ([]Token, error) {
	l.logger.Debug(LogMsgTokenizerStart)
	var tokens []Token

	// A metadata fence is only recognized at position 0.
	if l.atLeadingFence() {
		fenceTokens, err := l.scanFrontMatter()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, fenceTokens...)
	}

	for !l.isAtEnd() {
		lineTokens, err := l.scanLine()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, lineTokens...)
	}

	tokens = append(tokens, NewEOFToken(l.currentPosition()))
	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(tokens)))
	return tokens, nil
}

// atLeadingFence reports whether the source starts with a "---" fence line.
func (l *Lexer) atLeadingFence() bool {
	if l.pos != 0 || !l.matchStr(MarkerFence) {
		return false
	}
	rest := l.source[len(MarkerFence):]
	return rest == "" || rest[0] == CharNewline || strings.HasPrefix(rest, StrCRLF)
}

// scanFrontMatter consumes the leading fence, its raw body, and the closing
// fence. The body is emitted as a single TEXT token between the fence tokens;
// decoding it is the caller's concern.
func (l *Lexer) scanFrontMatter() ([]Token, error) {
	tokens := []Token{NewFenceOpenToken(l.currentPosition())}
	l.advanceN(len(MarkerFence))
	l.consumeLineBreak()

	bodyPos := l.currentPosition()
	var body strings.Builder

	for !l.isAtEnd() {
		lineText := l.peekLine()
		if lineText == MarkerFence {
			if body.Len() > 0 {
				tokens = append(tokens, NewTextToken(body.String(), bodyPos))
			}
			tokens = append(tokens, NewFenceCloseToken(l.currentPosition()))
			l.advanceN(len(lineText))
			l.consumeLineBreak()
			return tokens, nil
		}
		l.advanceN(len(lineText))
		body.WriteString(lineText)
		body.WriteString(l.consumeLineBreak())
	}

	return nil, &LexerError{
		Kind:     LexKindMetadata,
		Message:  ErrMsgUnterminatedFence,
		Position: l.currentPosition(),
	}
}

// scanLine tokenizes one physical line: INDENT, then either a directive or
// inline content, then NEWLINE.
func (l *Lexer) scanLine() ([]Token, error) {
	var tokens []Token

	indentPos := l.currentPosition()
	ws := l.scanIndent()
	width := len(ws)
	tokens = append(tokens, NewIndentToken(ws, width, indentPos))

	allowElse := false
	if tok, ok := l.scanDirective(width); ok {
		tokens = append(tokens, tok)
		l.skipInlineSpace()
		allowElse = tok.Type == TokenTypeIf
	}

	inlineTokens, err := l.scanInline(allowElse, width)
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, inlineTokens...)

	if nl := l.peekLineBreak(); nl != "" {
		tokens = append(tokens, NewNewlineToken(nl, l.currentPosition()))
		l.advanceN(len(nl))
	}

	return tokens, nil
}

// scanIndent consumes the leading whitespace of a line.
func (l *Lexer) scanIndent() string {
	start := l.pos
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == CharSpace || ch == CharTab {
			l.advance()
		} else {
			break
		}
	}
	return l.source[start:l.pos]
}

// scanDirective attempts to recognize an "if <path>:" or "else:" directive at
// the current position. Lines that merely start with the keywords but do not
// form a well-formed directive are left untouched and lexed as plain text.
func (l *Lexer) scanDirective(width int) (Token, bool) {
	pos := l.currentPosition()
	rest := l.source[l.pos:]

	if cond, consumed, ok := matchIfDirective(rest); ok {
		l.advanceN(consumed)
		return NewIfToken(cond, width, pos), true
	}
	if consumed, ok := matchElseDirective(rest); ok {
		l.advanceN(consumed)
		return NewElseToken(width, pos), true
	}
	return Token{}, false
}

// matchIfDirective matches `if <path>:` at the start of s.
// Returns the condition path and the number of bytes consumed (through the colon).
func matchIfDirective(s string) (string, int, bool) {
	if !strings.HasPrefix(s, KeywordIf) {
		return "", 0, false
	}
	i := len(KeywordIf)
	if i >= len(s) || (s[i] != CharSpace && s[i] != CharTab) {
		return "", 0, false
	}
	for i < len(s) && (s[i] == CharSpace || s[i] == CharTab) {
		i++
	}
	start := i
	for i < len(s) && isPathChar(s[i]) {
		i++
	}
	cond := s[start:i]
	if cond == "" {
		return "", 0, false
	}
	for i < len(s) && (s[i] == CharSpace || s[i] == CharTab) {
		i++
	}
	if i >= len(s) || s[i] != CharColon {
		return "", 0, false
	}
	return cond, i + 1, true
}

// matchElseDirective matches `else:` at the start of s.
func matchElseDirective(s string) (int, bool) {
	if !strings.HasPrefix(s, KeywordElse) {
		return 0, false
	}
	i := len(KeywordElse)
	for i < len(s) && (s[i] == CharSpace || s[i] == CharTab) {
		i++
	}
	if i >= len(s) || s[i] != CharColon {
		return 0, false
	}
	return i + 1, true
}

// scanInline tokenizes line content until the line break or EOF: text runs,
// interpolations, include markers, and literal blocks (which may span lines).
// When allowElse is true, the line carries an inline if-body and an "else:"
// at a word boundary splits it; width is the directive line's indentation.
func (l *Lexer) scanInline(allowElse bool, width int) ([]Token, error) {
	var tokens []Token
	textPos := l.currentPosition()
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, NewTextToken(text.String(), textPos))
			text.Reset()
		}
	}

	for !l.isAtEnd() {
		if l.peekLineBreak() != "" {
			break
		}

		if marker, ok := l.peekEscapedMarker(); ok {
			l.advanceN(len(StrEscape) + len(marker))
			text.WriteString(marker)
			continue
		}

		if allowElse && atWordBoundary(&text) {
			if consumed, ok := matchElseDirective(l.source[l.pos:]); ok {
				if trimmed := strings.TrimRight(text.String(), " \t"); trimmed != "" {
					tokens = append(tokens, NewTextToken(trimmed, textPos))
				}
				text.Reset()
				tokens = append(tokens, NewElseToken(width, l.currentPosition()))
				l.advanceN(consumed)
				l.skipInlineSpace()
				textPos = l.currentPosition()
				allowElse = false
				continue
			}
		}

		if l.matchStr(MarkerInterpOpen) {
			flush()
			interpTokens, err := l.scanInterpolation()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, interpTokens...)
			textPos = l.currentPosition()
			continue
		}

		if l.matchStr(MarkerIncludeOpen) {
			flush()
			tok, err := l.scanInclude()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			textPos = l.currentPosition()
			continue
		}

		if l.matchStr(MarkerBlockOpen) {
			flush()
			blockTokens, err := l.scanBlock()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, blockTokens...)
			textPos = l.currentPosition()
			continue
		}

		// A close marker without a matching opener is surfaced for the
		// parser to reject.
		if l.matchStr(MarkerBlockClose) {
			flush()
			tokens = append(tokens, NewBlockCloseToken(l.currentPosition()))
			l.advanceN(len(MarkerBlockClose))
			textPos = l.currentPosition()
			continue
		}

		text.WriteByte(l.advance())
	}

	flush()
	return tokens, nil
}

// atWordBoundary reports whether the text run so far ends at a token boundary.
func atWordBoundary(text *strings.Builder) bool {
	s := text.String()
	if s == "" {
		return true
	}
	last := s[len(s)-1]
	return last == CharSpace || last == CharTab
}

// scanInterpolation consumes "${ path }" and emits the marker pair around the path.
func (l *Lexer) scanInterpolation() ([]Token, error) {
	openPos := l.currentPosition()
	l.advanceN(len(MarkerInterpOpen))
	tokens := []Token{NewInterpStartToken(openPos)}

	l.skipInlineSpace()
	pathPos := l.currentPosition()
	var path strings.Builder
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == CharNewline || ch == CharCarriageRet {
			break
		}
		if ch == MarkerInterpClose[0] {
			trimmed := strings.TrimRight(path.String(), " \t")
			if trimmed == "" {
				return nil, &LexerError{
					Kind:     LexKindMarker,
					Message:  ErrMsgEmptyInterpPath,
					Position: openPos,
				}
			}
			tokens = append(tokens, NewPathToken(trimmed, pathPos))
			tokens = append(tokens, NewInterpEndToken(l.currentPosition()))
			l.advance()
			return tokens, nil
		}
		path.WriteByte(l.advance())
	}

	return nil, &LexerError{
		Kind:     LexKindMarker,
		Message:  ErrMsgUnterminatedInterp,
		Position: openPos,
	}
}

// scanInclude consumes "[[ path ]]" and emits an include token with the trimmed path.
func (l *Lexer) scanInclude() (Token, error) {
	openPos := l.currentPosition()
	l.advanceN(len(MarkerIncludeOpen))

	var path strings.Builder
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == CharNewline || ch == CharCarriageRet {
			break
		}
		if l.matchStr(MarkerIncludeClose) {
			l.advanceN(len(MarkerIncludeClose))
			return NewIncludeToken(strings.TrimSpace(path.String()), openPos), nil
		}
		path.WriteByte(l.advance())
	}

	return Token{}, &LexerError{
		Kind:     LexKindMarker,
		Message:  ErrMsgUnterminatedInclude,
		Position: openPos,
	}
}

// scanBlock consumes a "<< ... >>" literal block, which may span lines.
// Indentation is not significant inside a block; text is preserved verbatim
// except that one whitespace character directly inside each delimiter is
// consumed, so "<< A >>" yields the content "A".
func (l *Lexer) scanBlock() ([]Token, error) {
	openPos := l.currentPosition()
	l.advanceN(len(MarkerBlockOpen))
	tokens := []Token{NewBlockOpenToken(openPos)}

	// Trim a single space or line break directly after the opener.
	if nl := l.peekLineBreak(); nl != "" {
		l.advanceN(len(nl))
	} else if !l.isAtEnd() && l.peek() == CharSpace {
		l.advance()
	}

	textPos := l.currentPosition()
	var text strings.Builder

	flush := func(trimEdge bool) {
		content := text.String()
		if trimEdge {
			content = trimBlockEdge(content)
		}
		if content != "" {
			tokens = append(tokens, NewTextToken(content, textPos))
		}
		text.Reset()
	}

	for !l.isAtEnd() {
		if marker, ok := l.peekEscapedMarker(); ok {
			l.advanceN(len(StrEscape) + len(marker))
			text.WriteString(marker)
			continue
		}

		if l.matchStr(MarkerBlockClose) {
			flush(true)
			tokens = append(tokens, NewBlockCloseToken(l.currentPosition()))
			l.advanceN(len(MarkerBlockClose))
			return tokens, nil
		}

		if l.matchStr(MarkerInterpOpen) {
			flush(false)
			interpTokens, err := l.scanInterpolation()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, interpTokens...)
			textPos = l.currentPosition()
			continue
		}

		text.WriteByte(l.advance())
	}

	return nil, &LexerError{
		Kind:     LexKindMarker,
		Message:  ErrMsgUnterminatedBlock,
		Position: openPos,
	}
}

// trimBlockEdge removes one trailing space or line break directly before ">>".
func trimBlockEdge(s string) string {
	if strings.HasSuffix(s, StrCRLF) {
		return s[:len(s)-len(StrCRLF)]
	}
	if strings.HasSuffix(s, StrNewline) || strings.HasSuffix(s, " ") {
		return s[:len(s)-1]
	}
	return s
}

// peekEscapedMarker reports whether the scan position is at a backslash-escaped
// marker and returns the marker to emit literally.
func (l *Lexer) peekEscapedMarker() (string, bool) {
	if l.isAtEnd() || l.peek() != CharBackslash {
		return "", false
	}
	rest := l.source[l.pos+1:]
	for _, marker := range []string{MarkerInterpOpen, MarkerBlockOpen, MarkerBlockClose, MarkerIncludeOpen} {
		if strings.HasPrefix(rest, marker) {
			return marker, true
		}
	}
	return "", false
}

// Helper methods

// currentPosition returns the current position
func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// isAtEnd returns true if we've reached the end of source
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// peek returns the current character without advancing
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

// peekLine returns the current line's remaining text without its terminator.
func (l *Lexer) peekLine() string {
	rest := l.source[l.pos:]
	if idx := strings.IndexByte(rest, CharNewline); idx >= 0 {
		return strings.TrimSuffix(rest[:idx], "\r")
	}
	return rest
}

// peekLineBreak returns the line terminator at the current position, or "".
func (l *Lexer) peekLineBreak() string {
	if l.matchStr(StrCRLF) {
		return StrCRLF
	}
	if !l.isAtEnd() && l.peek() == CharNewline {
		return StrNewline
	}
	return ""
}

// consumeLineBreak consumes a line terminator if present and returns it.
func (l *Lexer) consumeLineBreak() string {
	nl := l.peekLineBreak()
	l.advanceN(len(nl))
	return nl
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// advanceN advances by n characters
func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

// matchStr returns true if the remaining source starts with s
func (l *Lexer) matchStr(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

// skipInlineSpace skips spaces and tabs without crossing line breaks.
func (l *Lexer) skipInlineSpace() {
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == CharSpace || ch == CharTab {
			l.advance()
		} else {
			break
		}
	}
}

// isPathChar reports whether ch may appear in a variable path:
// dotted segments, bracket indexing, and quoted bracket keys.
func isPathChar(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z':
		return true
	case ch >= 'A' && ch <= 'Z':
		return true
	case ch >= '0' && ch <= '9':
		return true
	}
	switch ch {
	case '_', '-', '.', '[', ']', '"', '\'':
		return true
	}
	return false
}

// LexerErrorKind distinguishes plain marker errors from metadata fence errors.
type LexerErrorKind int

const (
	// LexKindMarker is an unterminated interpolation, block, or include marker.
	LexKindMarker LexerErrorKind = iota
	// LexKindMetadata is an unterminated front-matter fence.
	LexKindMetadata
)

// LexerError represents a lexer error with position
type LexerError struct {
	Kind     LexerErrorKind
	Message  string
	Position Position
}

func (e *LexerError) Error() string {
	return e.Message + " at " + e.Position.String()
}

// Error message constants for lexer
const (
	ErrMsgUnterminatedInterp  = "unterminated interpolation"
	ErrMsgUnterminatedBlock   = "unterminated literal block"
	ErrMsgUnterminatedInclude = "unterminated include marker"
	ErrMsgUnterminatedFence   = "unterminated front-matter fence"
	ErrMsgEmptyInterpPath     = "empty interpolation path"
)
