package main

import (
	"errors"
	"os"

	bookgen "github.com/alnah/go-bookgen"
	"github.com/alnah/go-bookgen/internal/config"
)

// Exit codes for the bookgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Run completed (individual stage failures do not change this)
	ExitGeneral = 1 // General/unexpected error, including HTML assembly failure
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, bookgen.ErrWriteArtifact) {
		return ExitIO
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, bookgen.ErrNoChapters) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
