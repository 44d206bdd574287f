package bookgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ChapterTransform converts a chapter source file to an HTML fragment.
// A missing source file is signaled via the ok return, not an error.
type ChapterTransform interface {
	ToHTML(ctx context.Context, docsDir string, ch Chapter) (fragment string, ok bool, err error)
}

// GoldmarkTransform converts chapter Markdown to HTML using goldmark.
type GoldmarkTransform struct {
	md goldmark.Markdown
}

// NewGoldmarkTransform creates a transform with the fixed extension set:
// tables, fenced code, syntax highlighting, and auto heading anchors.
// Raw HTML embedded in chapter sources passes through unchanged, which the
// book's inline code samples rely on. Sources are the author's own files,
// so WithUnsafe carries no injection exposure here.
func NewGoldmarkTransform() *GoldmarkTransform {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // heading anchors for TOC support
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &GoldmarkTransform{md: md}
}

// ToHTML reads the chapter source as UTF-8 and converts it to an HTML
// fragment wrapped in a chapter container whose id is the chapter anchor.
// If the source file does not exist, returns ("", false, nil): the chapter
// contributes nothing to the document but does not abort the run.
// Context cancellation is supported via goroutine + select since goldmark
// has no native context awareness.
func (t *GoldmarkTransform) ToHTML(ctx context.Context, docsDir string, ch Chapter) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	source, err := os.ReadFile(filepath.Join(docsDir, ch.Filename)) // #nosec G304 -- chapter paths come from the registry
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading chapter %s: %w", ch.Filename, err)
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := t.md.Convert(source, &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %s: %v", ErrHTMLConversion, ch.Filename, err)}
			return
		}
		done <- result{html: fmt.Sprintf("<div class=\"chapter\" id=%q>%s</div>", ch.AnchorID(), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", false, r.err
		}
		return r.html, true, nil
	}
}
