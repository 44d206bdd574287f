// Package bookgen assembles a set of Markdown chapters into a single
// publication in three formats: styled HTML, paginated PDF, and EPUB.
//
// # Pipeline
//
// Generation follows these stages:
//
//  1. Chapter Markdown to HTML via Goldmark (tables, fenced code,
//     syntax highlighting, heading anchors)
//  2. Document assembly: cover + table of contents + chapter blocks,
//     one embedded stylesheet
//  3. PDF rendering through an ordered backend fallback chain
//  4. EPUB rendering via the pandoc subprocess
//
// # PDF backends
//
// Backend availability is probed once at startup; at render time the
// first available backend is used:
//
//  1. go-rod headless Chrome (paged-media CSS, page counters)
//  2. chromedp driving a system-installed Chrome binary
//  3. pandoc subprocess over a combined Markdown document
//
// A render failure from the chosen backend is final for that run; the
// chain does not cascade after a failed attempt.
//
// # Quick start
//
//	gen, err := bookgen.NewGenerator(bookgen.Book{
//	    Meta:      bookgen.BookMeta{Title: "My Book", Author: "Me"},
//	    DocsDir:   "docs",
//	    OutputDir: "ebook",
//	    BaseName:  "my-book",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	report, err := gen.GenerateAll(ctx)
//
// Missing chapter sources are skipped with a warning; a PDF or EPUB
// failure is reported in the RunReport without stopping the other
// formats.
package bookgen
