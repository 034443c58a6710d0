package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameMetadata = "metadata"
	CmdNameCompose  = "compose"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate     = "template"
	FlagContext      = "context"
	FlagContextFile  = "context-file"
	FlagOutput       = "output"
	FlagBasePath     = "base-path"
	FlagShowMetadata = "show-metadata"
	FlagLenient      = "lenient"
)

// Flag names - short form
const (
	FlagTemplateShort    = "t"
	FlagContextShort     = "c"
	FlagContextFileShort = "f"
	FlagOutputShort      = "o"
	FlagBasePathShort    = "b"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// File permissions for output files
const FilePermissions = 0644

// Context file auto-discovery extension
const ContextFileExt = ".json"

// Error messages - ALL must be constants
const (
	ErrMsgNoCommand         = "no command specified"
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTemplate   = "template path required (-t)"
	ErrMsgMissingSnippets   = "at least one snippet path required"
	ErrMsgReadFileFailed    = "failed to read input"
	ErrMsgInvalidJSON       = "invalid context JSON"
	ErrMsgRenderFailed      = "render failed"
	ErrMsgComposeFailed     = "composition failed"
	ErrMsgMetadataFailed    = "metadata extraction failed"
	ErrMsgWriteOutputFailed = "failed to write output"
)

// Output format strings
const (
	FmtErrorWithCause  = "Error: %s: %v\n"
	FmtErrorWithDetail = "Error: %s: %s\n"
	FmtMetadataScalar  = "%s: %s\n"
	FmtMetadataList    = "%s: [%s]\n"
	FmtVersionLine     = "margarita %s\n"
	MetadataListSep    = ", "
	MetadataDivider    = "---"
)

// Help text
const HelpMainUsage = `margarita - a markup language for composing LLM prompt text

Usage:
  margarita <command> [flags]

Commands:
  render     Render a template against a JSON context
  metadata   Print a template's front matter
  compose    Render an ordered list of snippets into one prompt
  version    Print the version
  help       Show help for a command

Run "margarita help <command>" for command details.`

const HelpRenderUsage = `Usage: margarita render -t <file> [flags]

Render a template file (or stdin with -t -) against a JSON context.

Flags:
  -t, -template       Template file path, or "-" for stdin
  -c, -context        Context as a JSON object string
  -f, -context-file   Context JSON file path
  -b, -base-path      Base path for [[ include ]] resolution
                      (default: the template file's directory)
  -o, -output         Output file path (default: stdout)
  -show-metadata      Print front matter before the rendered output
  -lenient            Render missing variables as empty strings

Without -c or -f, a sibling <template>.json file is used when present.`

const HelpMetadataUsage = `Usage: margarita metadata -t <file>

Print a template's front matter as key: value lines in document order.`

const HelpComposeUsage = `Usage: margarita compose -b <dir> [flags] <snippet> [<snippet>...]

Render the listed snippets in order against one shared context and join
them with a blank line.

Flags:
  -c, -context        Context as a JSON object string
  -f, -context-file   Context JSON file path
  -b, -base-path      Base path snippet paths resolve against
  -o, -output         Output file path (default: stdout)
  -lenient            Render missing variables as empty strings`

const HelpVersionUsage = `Usage: margarita version

Print the version.`

const HelpHelpUsage = `Usage: margarita help [command]

Show general help, or help for a single command.`
