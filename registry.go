package bookgen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// markdownExt is the only source extension the registry recognizes.
const markdownExt = ".md"

// DefaultChapters is the expected chapter file set, in publication order.
// The slice order IS the book order: reordering it reorders the book.
var DefaultChapters = []string{
	"01-introduction.md",
	"02-installation.md",
	"03-routing.md",
	"04-controllers.md",
	"05-blade.md",
	"06-eloquent.md",
	"07-migrations.md",
	"08-middleware.md",
	"09-auth.md",
	"10-events-queues.md",
	"11-testing.md",
	"12-deployment.md",
	"13-caching.md",
	"14-performance.md",
	"15-microservices.md",
}

// titleCaser converts hyphen-split filename words into display words.
var titleCaser = cases.Title(language.English)

// Chapter is an ordered book entry identified by its source filename.
// Immutable once created; all derived values come from the filename.
type Chapter struct {
	Filename string
}

// IsMarkdown reports whether the chapter filename carries the expected
// Markdown extension. Non-Markdown entries are ignored by the TOC.
func (c Chapter) IsMarkdown() bool {
	return strings.HasSuffix(c.Filename, markdownExt)
}

// AnchorID derives the HTML anchor for this chapter: the filename without
// its extension. Both the TOC link and the chapter block id MUST use this
// single function so internal navigation cannot silently break.
func (c Chapter) AnchorID() string {
	return strings.TrimSuffix(c.Filename, markdownExt)
}

// DisplayName derives the human-readable chapter title from the filename:
// extension stripped, the leading numeric token dropped, hyphens replaced
// by spaces, each word title-cased. "03-routing.md" -> "Routing",
// "10-events-queues.md" -> "Events Queues".
func (c Chapter) DisplayName() string {
	stem := strings.TrimSuffix(c.Filename, markdownExt)
	if num, rest, ok := strings.Cut(stem, "-"); ok && isDigits(num) {
		stem = rest
	}
	return titleCaser.String(strings.ReplaceAll(stem, "-", " "))
}

// Number returns the chapter number: the leading numeric token before the
// first hyphen, without zero padding. "01-introduction.md" -> "1".
// Falls back to the raw leading token when it is not numeric.
func (c Chapter) Number() string {
	stem := strings.TrimSuffix(c.Filename, markdownExt)
	token := stem
	if idx := strings.Index(stem, "-"); idx != -1 {
		token = stem[:idx]
	}
	if isDigits(token) {
		if trimmed := strings.TrimLeft(token, "0"); trimmed != "" {
			return trimmed
		}
		return "0"
	}
	return token
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Registry is the fixed ordered list of chapters defining publication order.
// Defined once at startup and never mutated.
type Registry struct {
	chapters []Chapter
}

// NewRegistry creates a Registry from chapter filenames, preserving order.
func NewRegistry(filenames []string) *Registry {
	chapters := make([]Chapter, len(filenames))
	for i, name := range filenames {
		chapters[i] = Chapter{Filename: name}
	}
	return &Registry{chapters: chapters}
}

// DefaultRegistry returns a Registry over DefaultChapters.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultChapters)
}

// Chapters returns the chapters in publication order.
// The returned slice is a copy; the registry itself stays immutable.
func (r *Registry) Chapters() []Chapter {
	out := make([]Chapter, len(r.chapters))
	copy(out, r.chapters)
	return out
}

// Len returns the number of registered chapters.
func (r *Registry) Len() int {
	return len(r.chapters)
}
