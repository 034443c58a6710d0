package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-margarita"
)

// composeConfig holds parsed compose command configuration
type composeConfig struct {
	contextJSON  string
	contextFile  string
	outputPath   string
	basePath     string
	lenient      bool
	snippetPaths []string
}

func runCompose(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseComposeFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingSnippets, err)
		return ExitCodeUsageError
	}

	data, err := loadContext(cfg.contextJSON, cfg.contextFile, "")
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidJSON, err)
		return ExitCodeInputError
	}

	engine := newEngine(cfg.basePath, "", cfg.lenient)
	composer := margarita.NewComposer(engine)

	result, err := composer.Compose(context.Background(), cfg.snippetPaths, data)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgComposeFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseComposeFlags(args []string) (*composeConfig, error) {
	fs := flag.NewFlagSet(CmdNameCompose, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &composeConfig{}

	fs.StringVar(&cfg.contextJSON, FlagContext, "", "")
	fs.StringVar(&cfg.contextJSON, FlagContextShort, "", "")
	fs.StringVar(&cfg.contextFile, FlagContextFile, "", "")
	fs.StringVar(&cfg.contextFile, FlagContextFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.basePath, FlagBasePath, "", "")
	fs.StringVar(&cfg.basePath, FlagBasePathShort, "", "")
	fs.BoolVar(&cfg.lenient, FlagLenient, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.snippetPaths = fs.Args()
	if len(cfg.snippetPaths) == 0 {
		return nil, errors.New(ErrMsgMissingSnippets)
	}

	return cfg, nil
}
