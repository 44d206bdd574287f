package main

import (
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// Flag validation errors.
var (
	ErrUnknownFormat  = errors.New("format must be html, pdf, epub, or all")
	ErrInvalidTimeout = errors.New("timeout must be positive")
)

// cliFlags holds parsed command-line options.
type cliFlags struct {
	docsDir   string
	outputDir string
	format    string
	config    string
	validate  bool
	timeout   time.Duration
	verbose   bool
	quiet     bool
}

// parseFlags parses command-line arguments into cliFlags.
// args is the full os.Args slice including the program name.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("bookgen", flag.ContinueOnError)
	fs.StringVar(&f.docsDir, "docs-dir", "docs", "directory containing chapter Markdown files")
	fs.StringVar(&f.outputDir, "output-dir", "ebook", "output directory for generated files")
	fs.StringVar(&f.format, "format", "all", "output format: html, pdf, epub, or all")
	fs.StringVar(&f.config, "config", "", "book config YAML file")
	fs.BoolVar(&f.validate, "validate", false, "validate the PDF artifact after generation")
	fs.DurationVar(&f.timeout, "timeout", 2*time.Minute, "per-render timeout")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress warnings")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	switch f.format {
	case "html", "pdf", "epub", "all":
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnknownFormat, f.format)
	}

	if f.timeout <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTimeout, f.timeout)
	}

	return f, nil
}
