package margarita

// Template file constants
const (
	// TemplateExt is the canonical template file extension
	TemplateExt = ".marg"
	// ComposeSeparator joins rendered snippets in a composition
	ComposeSeparator = "\n\n"
	// PathSeparator separates segments in a variable path
	PathSeparator = "."
)

// Error code constants for categorization
const (
	ErrCodeLex             = "MARG_LEX"
	ErrCodeSyntax          = "MARG_SYNTAX"
	ErrCodeIndent          = "MARG_INDENT"
	ErrCodeMeta            = "MARG_META"
	ErrCodeContext         = "MARG_CONTEXT"
	ErrCodeIncludeNotFound = "MARG_INCLUDE_NOT_FOUND"
	ErrCodeIncludeCycle    = "MARG_INCLUDE_CYCLE"
	ErrCodeStore           = "MARG_STORE"
)

// Error kind values for the "kind" metadata entry
const (
	ErrKindLex             = "lex"
	ErrKindSyntax          = "syntax"
	ErrKindIndentation     = "indentation"
	ErrKindMetadata        = "metadata"
	ErrKindContext         = "context"
	ErrKindIncludeNotFound = "include_not_found"
	ErrKindIncludeCycle    = "include_cycle"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyKind     = "kind"
	MetaKeyLine     = "line"
	MetaKeyColumn   = "column"
	MetaKeyOffset   = "offset"
	MetaKeyVariable = "variable"
	MetaKeySnippet  = "snippet"
	MetaKeyPath     = "path"
	MetaKeyBasePath = "base_path"
	MetaKeyDriver   = "driver"
	MetaKeyEntity   = "entity"
)

// Default configuration values
const (
	// DefaultMaxDepth bounds include nesting
	DefaultMaxDepth = 100
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Parse errors
	ErrMsgLexFailed      = "template tokenization failed"
	ErrMsgSyntaxInvalid  = "invalid template syntax"
	ErrMsgIndentInvalid  = "malformed directive indentation"
	ErrMsgMetaInvalid    = "invalid front matter"
	ErrMsgMetaNested     = "front matter values must be scalars or flat lists"
	ErrMsgMetaNotMapping = "front matter must be a key/value mapping"

	// Render errors
	ErrMsgContextMissing = "context variable not found"
	ErrMsgIncludeMissing = "included snippet not found"
	ErrMsgIncludeCyclic  = "include cycle detected"
	ErrMsgRenderFailed   = "template rendering failed"

	// Store errors
	ErrMsgStoreNotConfigured = "no snippet store configured"
	ErrMsgSnippetNotFound    = "snippet not found"
	ErrMsgPathEscapesRoot    = "snippet path escapes the base path"
	ErrMsgStoreQueryFailed   = "snippet store query failed"
	ErrMsgStoreMigrateFailed = "snippet store migration failed"
	ErrMsgBasePathRequired   = "base path must not be empty"
)

// Entity names for not-found errors
const (
	EntityVariable = "variable"
	EntitySnippet  = "snippet"
)

// Store driver names
const (
	DriverFilesystem = "filesystem"
	DriverMemory     = "memory"
	DriverPostgres   = "postgres"
)
