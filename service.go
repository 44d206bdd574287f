package bookgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-bookgen/internal/fileutil"
)

// defaultTimeout bounds a single backend render.
const defaultTimeout = 2 * time.Minute

// Book describes one publication: its metadata, sources, and artifact
// destinations.
type Book struct {
	Meta       BookMeta
	Fonts      Fonts
	CoverImage string
	Chapters   []string // empty means DefaultChapters
	DocsDir    string
	OutputDir  string
	BaseName   string // artifact filename stem, e.g. "laravel-book"
}

// StageResult reports one output format's outcome.
type StageResult struct {
	Format  string
	Path    string
	Backend string // PDF only: which backend rendered it
	Err     error
}

// OK reports whether the stage produced its artifact.
func (s StageResult) OK() bool { return s.Err == nil }

// RunReport collects the per-stage outcomes of a full generation run.
type RunReport struct {
	HTML StageResult
	PDF  StageResult
	EPUB StageResult
}

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout     time.Duration
	now         func() time.Time
	warnf       func(format string, args ...any)
	validatePDF bool
}

// Option configures a Generator.
type Option func(*generatorConfig)

// WithTimeout sets the per-render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("bookgen: WithTimeout duration must be positive")
	}
	return func(c *generatorConfig) {
		c.timeout = d
	}
}

// WithClock injects the generation timestamp source. Cover date and
// combined-document headers are the only non-deterministic output, so
// tests pin this.
func WithClock(now func() time.Time) Option {
	return func(c *generatorConfig) {
		c.now = now
	}
}

// WithWarnf sets the destination for non-fatal warnings such as missing
// chapter sources. Defaults to stderr.
func WithWarnf(warnf func(format string, args ...any)) Option {
	return func(c *generatorConfig) {
		c.warnf = warnf
	}
}

// WithValidation enables a structural check of the PDF artifact after a
// successful PDF stage. Off by default: artifact existence is the normal
// success signal.
func WithValidation() Option {
	return func(c *generatorConfig) {
		c.validatePDF = true
	}
}

// Generator sequences HTML, PDF, and EPUB generation. A failure in the
// PDF or EPUB stage is caught and reported without stopping the run; only
// HTML assembly failure aborts.
type Generator struct {
	book      Book
	cfg       generatorConfig
	registry  *Registry
	assembler *Assembler
	chain     *Chain
	epub      *EPUBRenderer
}

// NewGenerator creates a Generator for the given book, probing PDF
// backend availability once. The output directory is created if absent.
func NewGenerator(book Book, opts ...Option) (*Generator, error) {
	cfg := generatorConfig{
		timeout: defaultTimeout,
		now:     time.Now,
		warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	chapters := book.Chapters
	if len(chapters) == 0 {
		chapters = DefaultChapters
	}
	registry := NewRegistry(chapters)

	if err := fileutil.EnsureDir(book.OutputDir); err != nil {
		return nil, err
	}

	assembler, err := NewAssembler(registry, NewGoldmarkTransform(), cfg.now, cfg.warnf)
	if err != nil {
		return nil, err
	}

	pandoc := NewPandoc()
	g := &Generator{
		book:      book,
		cfg:       cfg,
		registry:  registry,
		assembler: assembler,
		chain: NewChain(
			newRodBackend(cfg.timeout),
			newChromedpBackend(cfg.timeout),
			newPandocBackend(pandoc, registry, book.Meta, book.Fonts, cfg.now),
		),
		epub: NewEPUBRenderer(pandoc, registry, book.Meta, book.CoverImage, cfg.now),
	}
	return g, nil
}

// Close releases backend resources.
func (g *Generator) Close() error {
	return g.chain.Close()
}

// Registry returns the chapter registry this generator publishes.
func (g *Generator) Registry() *Registry {
	return g.registry
}

func (g *Generator) htmlPath() string { return g.artifactPath(".html") }
func (g *Generator) pdfPath() string  { return g.artifactPath(".pdf") }
func (g *Generator) epubPath() string { return g.artifactPath(".epub") }

func (g *Generator) artifactPath(ext string) string {
	return filepath.Join(g.book.OutputDir, g.book.BaseName+ext)
}

// GenerateAll runs every stage in sequence: HTML, then PDF via the best
// available backend, then EPUB. PDF and EPUB failures are recorded in the
// report and do not stop the run. The returned error is non-nil only for
// the unrecoverable case: HTML assembly itself failing.
func (g *Generator) GenerateAll(ctx context.Context) (*RunReport, error) {
	report := &RunReport{}

	doc, res := g.generateHTML(ctx)
	report.HTML = res
	if res.Err != nil {
		return report, res.Err
	}

	report.PDF = g.generatePDF(ctx, doc)
	report.EPUB = g.generateEPUB(ctx)
	return report, nil
}

// GenerateHTML assembles the document and writes the HTML artifact.
func (g *Generator) GenerateHTML(ctx context.Context) StageResult {
	_, res := g.generateHTML(ctx)
	return res
}

// GeneratePDF assembles the document fresh and renders the PDF artifact
// through the fallback chain.
func (g *Generator) GeneratePDF(ctx context.Context) StageResult {
	doc, err := g.assembler.BuildDocument(ctx, g.book.DocsDir, g.book.Meta)
	if err != nil {
		return StageResult{Format: "pdf", Err: err}
	}
	return g.generatePDF(ctx, doc)
}

// GenerateEPUB renders the EPUB artifact via the external tool.
func (g *Generator) GenerateEPUB(ctx context.Context) StageResult {
	return g.generateEPUB(ctx)
}

func (g *Generator) generateHTML(ctx context.Context) (string, StageResult) {
	res := StageResult{Format: "html", Path: g.htmlPath()}

	doc, err := g.assembler.BuildDocument(ctx, g.book.DocsDir, g.book.Meta)
	if err != nil {
		res.Err = err
		return "", res
	}

	// #nosec G306 -- HTML output files are intended to be readable
	if err := os.WriteFile(res.Path, []byte(doc), 0o644); err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrWriteArtifact, err)
		return "", res
	}
	return doc, res
}

func (g *Generator) generatePDF(ctx context.Context, doc string) StageResult {
	res := StageResult{Format: "pdf", Path: g.pdfPath()}

	job := RenderJob{
		HTML:      doc,
		DocsDir:   g.book.DocsDir,
		OutputDir: g.book.OutputDir,
	}
	backend, err := g.chain.Render(ctx, job, res.Path)
	res.Backend = backend
	if err != nil {
		res.Err = err
		return res
	}

	if g.cfg.validatePDF {
		if err := ValidatePDF(res.Path); err != nil {
			res.Err = err
		}
	}
	return res
}

func (g *Generator) generateEPUB(ctx context.Context) StageResult {
	res := StageResult{Format: "epub", Path: g.epubPath()}
	if err := g.epub.Render(ctx, g.book.DocsDir, g.book.OutputDir, res.Path); err != nil {
		res.Err = err
	}
	return res
}
