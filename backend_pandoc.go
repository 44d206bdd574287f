package bookgen

import (
	"context"
	"path/filepath"
	"time"

	"github.com/alnah/go-bookgen/internal/fileutil"
)

// Fonts names the typefaces the pandoc typesetting path embeds.
type Fonts struct {
	Main string
	Mono string
	Size string
}

// DefaultFonts returns the standard book typefaces.
func DefaultFonts() Fonts {
	return Fonts{Main: "Segoe UI", Mono: "Courier New", Size: "11pt"}
}

// pandocBackend is the last-resort PDF backend: an external document-
// processor subprocess. It does not consume the assembled HTML; it
// re-derives a combined Markdown document from the registry and the raw
// sources, stages it as a transient file in the output directory, and
// hands it to pandoc with a xelatex typesetting flag set. The transient
// file is removed on every exit path.
type pandocBackend struct {
	pandoc   *Pandoc
	registry *Registry
	meta     BookMeta
	fonts    Fonts
	now      func() time.Time
}

// newPandocBackend creates the pandoc PDF backend.
func newPandocBackend(pandoc *Pandoc, registry *Registry, meta BookMeta, fonts Fonts, now func() time.Time) *pandocBackend {
	return &pandocBackend{pandoc: pandoc, registry: registry, meta: meta, fonts: fonts, now: now}
}

func (b *pandocBackend) Name() string { return "pandoc" }

// Available reports whether the pandoc binary is on PATH.
func (b *pandocBackend) Available() bool {
	return b.pandoc.Available()
}

// Render builds the combined document (with its textual table of
// contents), writes it next to the output artifact, and invokes pandoc.
func (b *pandocBackend) Render(ctx context.Context, job RenderJob, outputPath string) error {
	combined, err := buildCombinedMarkdown(b.registry, job.DocsDir, b.meta, b.now(), true)
	if err != nil {
		return err
	}

	combinedPath := filepath.Join(job.OutputDir, combinedName)
	cleanup, err := fileutil.WriteScopedFile(combinedPath, combined)
	if err != nil {
		return err
	}
	defer cleanup()

	return b.pandoc.Convert(ctx, combinedPath, outputPath,
		"--pdf-engine=xelatex",
		"--toc",
		"--number-sections",
		"--variable=geometry:margin=2cm",
		"--variable=fontsize:"+b.fonts.Size,
		"--variable=mainfont:"+b.fonts.Main,
		"--variable=monofont:"+b.fonts.Mono,
	)
}
