package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/itsatony/go-margarita"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	contextJSON  string
	contextFile  string
	outputPath   string
	basePath     string
	showMetadata bool
	lenient      bool
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	// Read template
	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Build context
	data, err := loadContext(cfg.contextJSON, cfg.contextFile, cfg.templatePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidJSON, err)
		return ExitCodeInputError
	}

	engine := newEngine(cfg.basePath, cfg.templatePath, cfg.lenient)

	tmpl, err := engine.Parse(string(templateSource))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	result, err := tmpl.Render(context.Background(), data)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	var out strings.Builder
	if cfg.showMetadata {
		writeMetadata(&out, tmpl.Metadata())
		out.WriteString(MetadataDivider)
		out.WriteString("\n")
	}
	out.WriteString(result)

	if err := writeOutput(cfg.outputPath, []byte(out.String()), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.contextJSON, FlagContext, "", "")
	fs.StringVar(&cfg.contextJSON, FlagContextShort, "", "")
	fs.StringVar(&cfg.contextFile, FlagContextFile, "", "")
	fs.StringVar(&cfg.contextFile, FlagContextFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.basePath, FlagBasePath, "", "")
	fs.StringVar(&cfg.basePath, FlagBasePathShort, "", "")
	fs.BoolVar(&cfg.showMetadata, FlagShowMetadata, false, "")
	fs.BoolVar(&cfg.lenient, FlagLenient, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validation
	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}

// newEngine builds an engine whose include base path defaults to the
// template file's directory.
func newEngine(basePath, templatePath string, lenient bool) *margarita.Engine {
	if basePath == "" && templatePath != "" && templatePath != InputSourceStdin {
		basePath = filepath.Dir(templatePath)
	}

	opts := []margarita.Option{
		margarita.WithLenientMissing(lenient),
	}
	if basePath != "" {
		opts = append(opts, margarita.WithBasePath(basePath))
	}
	return margarita.MustNew(opts...)
}

// writeMetadata prints front matter as key: value lines in document order.
func writeMetadata(out *strings.Builder, meta *margarita.Metadata) {
	for _, key := range meta.Keys() {
		val, _ := meta.Get(key)
		switch v := val.(type) {
		case []string:
			fmt.Fprintf(out, FmtMetadataList, key, strings.Join(v, MetadataListSep))
		default:
			fmt.Fprintf(out, FmtMetadataScalar, key, meta.GetString(key))
		}
	}
}
