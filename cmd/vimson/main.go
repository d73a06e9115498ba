// vimson - VIMSON codec CLI tool
//
// Usage:
//
//	vimson parse [file]              Echo the input, parse it, print canonical form
//	vimson fmt [file]                Print canonical form only
//	vimson to-json [file]            Convert VIMSON to JSON
//	vimson to-yaml [file]            Convert VIMSON to YAML
//	vimson from-json [--path p] [file]  Convert JSON (or a gjson path in it) to VIMSON
//	vimson from-yaml [file]          Convert YAML to VIMSON
//	vimson inspect [--dump] [file]   Tabulate every value with its path and type
//	vimson hash [--check hex] [file] Print (or verify) the sha256 of the canonical form
//	vimson version                   Print version info
//
// If no file is given, or the file is "-", input is read from stdin.
// Settings can also come from .vimson.yaml or VIMSON_* environment variables.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const libVersion = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the CLI with the given arguments and streams. Errors that
// were already shown to the user (parse diagnostics) are not printed again.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "vimson: %v\n", err)
	}
	return err
}
