package bookgen

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/alnah/go-bookgen/internal/assets"
	"github.com/alnah/go-bookgen/internal/dateutil"
	"github.com/alnah/go-bookgen/internal/fileutil"
)

// BookMeta describes the publication for cover and header purposes.
type BookMeta struct {
	Title    string
	Subtitle string
	Author   string
}

// tocEntry is one table-of-contents line.
type tocEntry struct {
	Anchor string
	Number string
	Name   string
}

// Assembler builds the complete in-memory HTML document: cover block,
// table-of-contents block, and the per-chapter fragments in registry order,
// sharing one embedded stylesheet. Built fresh on every invocation.
type Assembler struct {
	registry  *Registry
	transform ChapterTransform
	css       string
	coverTmpl *template.Template
	tocTmpl   *template.Template
	docTmpl   *template.Template
	now       func() time.Time
	warnf     func(format string, args ...any)
}

// NewAssembler creates an Assembler over the given registry and transform.
// The clock is injectable so tests can pin the cover timestamp; warnf
// receives missing-chapter notices and may be nil.
func NewAssembler(registry *Registry, transform ChapterTransform, now func() time.Time, warnf func(string, ...any)) (*Assembler, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, ErrNoChapters
	}
	if now == nil {
		now = time.Now
	}
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	css, err := assets.LoadStyle("book")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembleFailed, err)
	}

	a := &Assembler{
		registry:  registry,
		transform: transform,
		css:       css,
		now:       now,
		warnf:     warnf,
	}

	for _, t := range []struct {
		name string
		dst  **template.Template
	}{
		{"cover", &a.coverTmpl},
		{"toc", &a.tocTmpl},
		{"document", &a.docTmpl},
	} {
		content, err := assets.LoadTemplate(t.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssembleFailed, err)
		}
		tmpl, err := template.New(t.name).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %s template: %v", ErrAssembleFailed, t.name, err)
		}
		*t.dst = tmpl
	}

	return a, nil
}

// CSS returns the embedded stylesheet shared by all document sections.
func (a *Assembler) CSS() string {
	return a.css
}

// BuildCover renders the cover block with title, subtitle, author line,
// and a generation date like "March 03, 2024". The date comes from the
// injected clock, so output is non-reproducible across runs by design.
func (a *Assembler) BuildCover(meta BookMeta) (string, error) {
	var buf bytes.Buffer
	err := a.coverTmpl.Execute(&buf, struct {
		Title, Subtitle, Author, Date string
	}{
		Title:    meta.Title,
		Subtitle: meta.Subtitle,
		Author:   meta.Author,
		Date:     dateutil.FormatLong(a.now()),
	})
	if err != nil {
		return "", fmt.Errorf("%w: rendering cover: %v", ErrAssembleFailed, err)
	}
	return buf.String(), nil
}

// BuildTOC renders one link per Markdown chapter whose source file exists
// under docsDir, in registry order. Each link target comes from
// Chapter.AnchorID, the same derivation the chapter blocks use, so TOC
// navigation resolves by construction and never dangles on a missing
// chapter.
func (a *Assembler) BuildTOC(docsDir string) (string, error) {
	var entries []tocEntry
	for _, ch := range a.registry.Chapters() {
		if !ch.IsMarkdown() || !fileutil.FileExists(filepath.Join(docsDir, ch.Filename)) {
			continue
		}
		entries = append(entries, tocEntry{
			Anchor: ch.AnchorID(),
			Number: ch.Number(),
			Name:   ch.DisplayName(),
		})
	}

	var buf bytes.Buffer
	if err := a.tocTmpl.Execute(&buf, struct{ Entries []tocEntry }{entries}); err != nil {
		return "", fmt.Errorf("%w: rendering TOC: %v", ErrAssembleFailed, err)
	}
	return buf.String(), nil
}

// BuildDocument assembles the full page: cover, TOC, then every chapter
// whose source file exists, in registry order. Missing chapters are
// reported through warnf and skipped. The whole document is held in
// memory; nothing is streamed.
func (a *Assembler) BuildDocument(ctx context.Context, docsDir string, meta BookMeta) (string, error) {
	cover, err := a.BuildCover(meta)
	if err != nil {
		return "", err
	}

	toc, err := a.BuildTOC(docsDir)
	if err != nil {
		return "", err
	}

	var chapters []template.HTML
	for _, ch := range a.registry.Chapters() {
		fragment, ok, err := a.transform.ToHTML(ctx, docsDir, ch)
		if err != nil {
			return "", err
		}
		if !ok {
			a.warnf("Warning: %s not found", ch.Filename)
			continue
		}
		chapters = append(chapters, template.HTML(fragment)) // #nosec G203 -- goldmark output from trusted sources
	}

	var buf bytes.Buffer
	err = a.docTmpl.Execute(&buf, struct {
		Title    string
		CSS      template.CSS
		Cover    template.HTML
		TOC      template.HTML
		Chapters []template.HTML
	}{
		Title:    meta.Title,
		CSS:      template.CSS(a.css),     // #nosec G203 -- embedded stylesheet asset
		Cover:    template.HTML(cover),    // #nosec G203 -- rendered from trusted template
		TOC:      template.HTML(toc),      // #nosec G203 -- rendered from trusted template
		Chapters: chapters,
	})
	if err != nil {
		return "", fmt.Errorf("%w: rendering document: %v", ErrAssembleFailed, err)
	}
	return buf.String(), nil
}
