package main

import (
	"fmt"
	"io"

	"github.com/itsatony/go-margarita"
)

func runVersion(stdout io.Writer) int {
	fmt.Fprintf(stdout, FmtVersionLine, margarita.Version)
	return ExitCodeSuccess
}
