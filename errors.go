package bookgen

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoChapters     = errors.New("chapter registry cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrAssembleFailed = errors.New("document assembly failed")

	// PDF backend errors.
	ErrNoPDFBackend   = errors.New("no PDF backend available: install pandoc first")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWriteArtifact  = errors.New("failed to write output file")

	// Pandoc subprocess errors. ErrPandocNotFound is distinguished from
	// ErrPandocFailed so callers can tell "install pandoc first" apart
	// from a conversion that ran and errored.
	ErrPandocNotFound = errors.New("pandoc not found: install pandoc first")
	ErrPandocFailed   = errors.New("pandoc conversion failed")

	// Artifact validation errors.
	ErrInvalidPDF = errors.New("PDF artifact failed validation")
)
