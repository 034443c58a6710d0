package margarita

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-margarita/internal"
)

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

func fromInternalPosition(pos internal.Position) Position {
	return Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

// withPosition attaches position metadata to an error
func withPosition(err *cuserr.CustomError, pos Position) *cuserr.CustomError {
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewLexError creates an error for an unterminated marker
func NewLexError(msg string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeLex, msg), pos).
		WithMetadata(MetaKeyKind, ErrKindLex)
}

// NewSyntaxError creates an error for a malformed construct
func NewSyntaxError(msg string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeSyntax, msg), pos).
		WithMetadata(MetaKeyKind, ErrKindSyntax)
}

// NewIndentationError creates an error for misaligned directive structure
func NewIndentationError(msg string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeIndent, msg), pos).
		WithMetadata(MetaKeyKind, ErrKindIndentation)
}

// NewMetadataError creates an error for malformed front matter
func NewMetadataError(msg string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeMeta, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeMeta, msg)
	}
	return withPosition(err, pos).WithMetadata(MetaKeyKind, ErrKindMetadata)
}

// NewContextError creates an error for a missing context variable
func NewContextError(path string, pos Position) error {
	return withPosition(
		cuserr.NewNotFoundError(EntityVariable, ErrMsgContextMissing), pos).
		WithMetadata(MetaKeyKind, ErrKindContext).
		WithMetadata(MetaKeyVariable, path)
}

// NewIncludeNotFoundError creates an error for an unloadable snippet
func NewIncludeNotFoundError(path string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeIncludeNotFound, ErrMsgIncludeMissing)
	} else {
		err = cuserr.NewNotFoundError(EntitySnippet, ErrMsgIncludeMissing)
	}
	return withPosition(err, pos).
		WithMetadata(MetaKeyKind, ErrKindIncludeNotFound).
		WithMetadata(MetaKeySnippet, path)
}

// NewIncludeCycleError creates an error for a cyclic include chain
func NewIncludeCycleError(msg string, path string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeIncludeCycle, msg), pos).
		WithMetadata(MetaKeyKind, ErrKindIncludeCycle).
		WithMetadata(MetaKeySnippet, path)
}

// NewStoreError wraps a storage failure
func NewStoreError(msg string, driver string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeStore, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeStore, msg)
	}
	return err.WithMetadata(MetaKeyDriver, driver)
}

// wrapInternalError translates a typed internal error into its public form.
// Render errors are matched before lexer and parser errors: a render error
// may wrap a nested lex or parse failure from an included snippet, and the
// include context must win.
func wrapInternalError(err error) error {
	var renderErr *internal.RenderError
	if errors.As(err, &renderErr) {
		pos := fromInternalPosition(renderErr.Position)
		switch renderErr.Kind {
		case internal.RenderKindIncludeNotFound:
			// A nested parse failure inside an included snippet keeps its
			// own classification.
			if inner := wrapNestedInclude(renderErr); inner != nil {
				return inner
			}
			return NewIncludeNotFoundError(renderErr.Path, pos, renderErr.Cause)
		case internal.RenderKindIncludeCycle:
			return NewIncludeCycleError(renderErr.Message, renderErr.Path, pos)
		default:
			return NewContextError(renderErr.Path, pos)
		}
	}

	var lexErr *internal.LexerError
	if errors.As(err, &lexErr) {
		pos := fromInternalPosition(lexErr.Position)
		if lexErr.Kind == internal.LexKindMetadata {
			return NewMetadataError(lexErr.Message, pos, nil)
		}
		return NewLexError(lexErr.Message, pos)
	}

	var parseErr *internal.ParserError
	if errors.As(err, &parseErr) {
		pos := fromInternalPosition(parseErr.Position)
		if parseErr.Kind == internal.ParseKindIndentation {
			return NewIndentationError(parseErr.Message, pos)
		}
		return NewSyntaxError(parseErr.Message, pos)
	}

	return cuserr.WrapStdError(err, ErrCodeSyntax, ErrMsgRenderFailed)
}

// wrapNestedInclude surfaces lex/parse errors from inside an included
// snippet under their own codes, tagged with the snippet path.
func wrapNestedInclude(renderErr *internal.RenderError) error {
	if renderErr.Cause == nil {
		return nil
	}
	var lexErr *internal.LexerError
	var parseErr *internal.ParserError
	if !errors.As(renderErr.Cause, &lexErr) && !errors.As(renderErr.Cause, &parseErr) {
		return nil
	}
	wrapped := wrapInternalError(renderErr.Cause)
	var customErr *cuserr.CustomError
	if errors.As(wrapped, &customErr) {
		return customErr.WithMetadata(MetaKeySnippet, renderErr.Path)
	}
	return wrapped
}

// errorKind extracts the "kind" metadata entry from a public error.
func errorKind(err error) (string, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return "", false
	}
	return customErr.GetMetadata(MetaKeyKind)
}

// IsLexError reports whether err is a tokenization failure
func IsLexError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindLex
}

// IsSyntaxError reports whether err is a structural syntax failure
func IsSyntaxError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindSyntax
}

// IsIndentationError reports whether err is a directive indentation failure
func IsIndentationError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindIndentation
}

// IsMetadataError reports whether err is a front-matter failure
func IsMetadataError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindMetadata
}

// IsContextError reports whether err is a missing-variable failure
func IsContextError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindContext
}

// IsIncludeNotFoundError reports whether err is an unresolvable include
func IsIncludeNotFoundError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindIncludeNotFound
}

// IsIncludeCycleError reports whether err is a cyclic include chain
func IsIncludeCycleError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == ErrKindIncludeCycle
}

// ErrorPosition extracts the source position attached to a public error.
func ErrorPosition(err error) (Position, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return Position{}, false
	}
	lineStr, ok := customErr.GetMetadata(MetaKeyLine)
	if !ok {
		return Position{}, false
	}
	line, convErr := strconv.Atoi(lineStr)
	if convErr != nil {
		return Position{}, false
	}
	pos := Position{Line: line}
	if columnStr, ok := customErr.GetMetadata(MetaKeyColumn); ok {
		pos.Column, _ = strconv.Atoi(columnStr)
	}
	if offsetStr, ok := customErr.GetMetadata(MetaKeyOffset); ok {
		pos.Offset, _ = strconv.Atoi(offsetStr)
	}
	return pos, true
}
