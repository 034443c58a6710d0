package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-margarita"
)

// metadataConfig holds parsed metadata command configuration
type metadataConfig struct {
	templatePath string
	outputPath   string
}

func runMetadata(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseMetadataFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	tmpl, err := margarita.Parse(string(templateSource))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMetadataFailed, err)
		return ExitCodeError
	}

	var out strings.Builder
	writeMetadata(&out, tmpl.Metadata())

	if err := writeOutput(cfg.outputPath, []byte(out.String()), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseMetadataFlags(args []string) (*metadataConfig, error) {
	fs := flag.NewFlagSet(CmdNameMetadata, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &metadataConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}
