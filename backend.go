package bookgen

import (
	"context"
	"fmt"

	"github.com/alnah/go-bookgen/internal/fileutil"
)

// RenderJob carries the inputs a PDF backend may need. Browser backends
// consume the assembled HTML; the pandoc backend ignores it and re-derives
// a combined document from the raw sources under DocsDir.
type RenderJob struct {
	HTML      string
	DocsDir   string
	OutputDir string
}

// PDFBackend is a renderer capability. Availability is determined by an
// environment probe (an optional dependency is present or absent), not by
// attempting a render.
type PDFBackend interface {
	Name() string
	Available() bool
	Render(ctx context.Context, job RenderJob, outputPath string) error
}

// Chain is the ordered PDF fallback chain. Backends are totally ordered by
// preference: engines with paged-media CSS fidelity come before external
// process options. Availability is probed once at construction and cached;
// at render time only the first available backend is invoked, and its
// failure propagates without cascading to lower-preference backends.
type Chain struct {
	backends []PDFBackend
	selected PDFBackend
}

// NewChain probes the given backends in preference order and caches the
// first available one. Pass backends highest-preference first.
func NewChain(backends ...PDFBackend) *Chain {
	c := &Chain{backends: backends}
	for _, b := range backends {
		if b.Available() {
			c.selected = b
			break
		}
	}
	return c
}

// Selected returns the backend the chain will use, or nil if none is
// available.
func (c *Chain) Selected() PDFBackend {
	return c.selected
}

// Render delegates to the selected backend and returns its name alongside
// any render error. With no backend available it returns ErrNoPDFBackend.
func (c *Chain) Render(ctx context.Context, job RenderJob, outputPath string) (string, error) {
	if c.selected == nil {
		return "", ErrNoPDFBackend
	}
	if err := c.selected.Render(ctx, job, outputPath); err != nil {
		return c.selected.Name(), fmt.Errorf("%s backend: %w", c.selected.Name(), err)
	}
	return c.selected.Name(), nil
}

// Close releases resources held by any backend in the chain.
func (c *Chain) Close() error {
	var firstErr error
	for _, b := range c.backends {
		if closer, ok := b.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// writeTempHTML stages the assembled document on disk so browser backends
// can load it over file://.
func writeTempHTML(htmlContent string) (string, func(), error) {
	return fileutil.WriteTempFile(htmlContent, "html")
}
