package bookgen

import (
	"context"
	"path/filepath"
	"time"

	"github.com/alnah/go-bookgen/internal/fileutil"
)

// EPUBRenderer produces the EPUB artifact. It always delegates to the
// pandoc subprocess, independent of which PDF backend was chosen, and
// rebuilds its own combined Markdown document without a textual TOC:
// pandoc's --toc flag generates one.
type EPUBRenderer struct {
	pandoc     *Pandoc
	registry   *Registry
	meta       BookMeta
	coverImage string
	now        func() time.Time
}

// NewEPUBRenderer creates an EPUBRenderer. coverImage is the filename of
// an optional cover asset looked up in the output directory at render
// time.
func NewEPUBRenderer(pandoc *Pandoc, registry *Registry, meta BookMeta, coverImage string, now func() time.Time) *EPUBRenderer {
	if now == nil {
		now = time.Now
	}
	return &EPUBRenderer{pandoc: pandoc, registry: registry, meta: meta, coverImage: coverImage, now: now}
}

// Available reports whether the pandoc binary is on PATH.
func (r *EPUBRenderer) Available() bool {
	return r.pandoc.Available()
}

// Render builds the combined document, stages it as a transient file in
// the output directory, and invokes pandoc requesting EPUB output with a
// generated table of contents and numbered sections. The cover image flag
// is included only when the asset exists on disk. The transient file is
// scoped to this invocation and removed on every exit path, even though
// the PDF path constructs logically similar content.
func (r *EPUBRenderer) Render(ctx context.Context, docsDir, outputDir, outputPath string) error {
	combined, err := buildCombinedMarkdown(r.registry, docsDir, r.meta, r.now(), false)
	if err != nil {
		return err
	}

	combinedPath := filepath.Join(outputDir, combinedName)
	cleanup, err := fileutil.WriteScopedFile(combinedPath, combined)
	if err != nil {
		return err
	}
	defer cleanup()

	flags := []string{"--toc", "--number-sections"}
	if r.coverImage != "" {
		coverPath := filepath.Join(outputDir, r.coverImage)
		if fileutil.FileExists(coverPath) {
			flags = append(flags, "--epub-cover-image="+coverPath)
		}
	}

	return r.pandoc.Convert(ctx, combinedPath, outputPath, flags...)
}
