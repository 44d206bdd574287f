// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteScopedFile writes content to path and returns a cleanup function
// that removes it. The file is scoped to a single renderer invocation:
// callers must defer the cleanup so the file is removed on every exit
// path, success or failure.
func WriteScopedFile(path, content string) (cleanup func(), err error) {
	// #nosec G306 -- transient combined-Markdown files are not sensitive
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return func() { _ = os.Remove(path) }, nil
}

// WriteTempFile creates a temporary file with the given content and
// extension (without the leading dot). Returns the file path and a
// cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	tmpFile, err := os.CreateTemp("", "bookgen-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}
