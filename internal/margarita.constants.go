package internal

// Grammar markers
const (
	MarkerInterpOpen   = "${"
	MarkerInterpClose  = "}"
	MarkerBlockOpen    = "<<"
	MarkerBlockClose   = ">>"
	MarkerIncludeOpen  = "[["
	MarkerIncludeClose = "]]"
	MarkerFence        = "---"
	KeywordIf          = "if"
	KeywordElse        = "else"
)

// Character constants
const (
	CharSpace       = ' '
	CharTab         = '\t'
	CharNewline     = '\n'
	CharCarriageRet = '\r'
	CharColon       = ':'
	CharBackslash   = '\\'
)

// String constants
const (
	StringValueEmpty = ""
	StringValueTrue  = "true"
	StringValueFalse = "false"
	StrNewline       = "\n"
	StrCRLF          = "\r\n"
	StrEscape        = "\\"
)

// Numeric formatting constants
const (
	IntBase10         = 10
	FloatFormatFlag   = 'g'
	FloatPrecisionAll = -1
	FloatBitSize64    = 64
)

// Log message constants
const (
	LogMsgLexerCreated     = "lexer created"
	LogMsgTokenizerStart   = "tokenization started"
	LogMsgTokenizerEnd     = "tokenization complete"
	LogMsgParserCreated    = "parser created"
	LogMsgParserStart      = "parsing started"
	LogMsgParserEnd        = "parsing complete"
	LogMsgRendererCreated  = "renderer created"
	LogMsgRenderStart      = "render started"
	LogMsgRenderEnd        = "render complete"
	LogMsgConditionEval    = "evaluating condition"
	LogMsgBranchSelected   = "conditional branch selected"
	LogMsgIncludeResolved  = "include resolved"
	LogMsgIncludeDescend   = "descending into include"
)

// Log field name constants
const (
	LogFieldSource    = "source_bytes"
	LogFieldTokens    = "tokens"
	LogFieldNodes     = "nodes"
	LogFieldCondition = "condition"
	LogFieldBranch    = "branch"
	LogFieldPath      = "path"
	LogFieldCanonical = "canonical"
	LogFieldDepth     = "depth"
)

// Display truncation for node String() output
const (
	MaxStringDisplayLength = 40
	TruncatedStringLength  = 37
	TruncationSuffix       = "..."
)

// DefaultMaxDepth bounds include nesting in addition to cycle detection.
const DefaultMaxDepth = 100

// Error format constants
const (
	ErrFmtWithPosition = "%s at %s"
	ErrFmtWithCause    = "%s: %v"
)
