package bookgen

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"
)

// fixedClock pins the generation timestamp for deterministic assembly.
func fixedClock() time.Time {
	return time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
}

func newTestAssembler(t *testing.T, registry *Registry) *Assembler {
	t.Helper()
	a, err := NewAssembler(registry, NewGoldmarkTransform(), fixedClock, func(string, ...any) {})
	if err != nil {
		t.Fatalf("NewAssembler() error: %v", err)
	}
	return a
}

var testMeta = BookMeta{
	Title:    "Laravel: From Zero to Production",
	Subtitle: "A comprehensive guide",
	Author:   "Laravel Book Team",
}

func TestNewAssemblerEmptyRegistry(t *testing.T) {
	_, err := NewAssembler(NewRegistry(nil), NewGoldmarkTransform(), nil, nil)
	if err != ErrNoChapters {
		t.Errorf("NewAssembler(empty registry) error = %v, want ErrNoChapters", err)
	}
}

func TestBuildCover(t *testing.T) {
	a := newTestAssembler(t, NewRegistry([]string{"01-introduction.md"}))

	cover, err := a.BuildCover(testMeta)
	if err != nil {
		t.Fatalf("BuildCover() error: %v", err)
	}

	for _, want := range []string{
		`<div class="cover">`,
		"Laravel: From Zero to Production",
		"A comprehensive guide",
		"By Laravel Book Team",
		"Generated on March 03, 2024",
	} {
		if !strings.Contains(cover, want) {
			t.Errorf("cover missing %q\ncover: %s", want, cover)
		}
	}
}

func TestBuildDocumentScenario(t *testing.T) {
	// Registry has two chapters; only the first source exists.
	dir := t.TempDir()
	writeChapter(t, dir, "01-introduction.md", "# Intro\nHello")

	registry := NewRegistry([]string{"01-introduction.md", "02-installation.md"})

	var warnings []string
	a, err := NewAssembler(registry, NewGoldmarkTransform(), fixedClock, func(format string, args ...any) {
		warnings = append(warnings, format)
	})
	if err != nil {
		t.Fatalf("NewAssembler() error: %v", err)
	}

	doc, err := a.BuildDocument(context.Background(), dir, testMeta)
	if err != nil {
		t.Fatalf("BuildDocument() error: %v", err)
	}

	// Exactly one chapter block, for the existing chapter.
	if got := strings.Count(doc, `<div class="chapter"`); got != 1 {
		t.Errorf("document has %d chapter blocks, want 1", got)
	}
	if !strings.Contains(doc, `id="01-introduction"`) {
		t.Error("document missing chapter block for 01-introduction")
	}
	if strings.Contains(doc, "02-installation") {
		t.Error("missing chapter leaked into the document")
	}

	// Chapter content converted from Markdown.
	if !strings.Contains(doc, "Intro</h1>") {
		t.Error("document missing converted <h1>Intro</h1>")
	}
	if !strings.Contains(doc, "<p>Hello</p>") {
		t.Error("document missing converted <p>Hello</p>")
	}

	// One TOC entry, linking to the chapter anchor.
	if !strings.Contains(doc, `<a href="#01-introduction">1. Introduction</a>`) {
		t.Error("TOC missing entry \"1. Introduction\" -> #01-introduction")
	}

	// The missing chapter was warned about, not fatal.
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1 (for the missing chapter)", len(warnings))
	}
}

func TestTOCAnchorsMatchChapterIDs(t *testing.T) {
	dir := t.TempDir()
	files := []string{"01-introduction.md", "02-installation.md", "03-routing.md"}
	for _, f := range files {
		writeChapter(t, dir, f, "# "+f)
	}

	a := newTestAssembler(t, NewRegistry(files))
	doc, err := a.BuildDocument(context.Background(), dir, testMeta)
	if err != nil {
		t.Fatalf("BuildDocument() error: %v", err)
	}

	hrefRe := regexp.MustCompile(`href="#([^"]+)"`)
	idRe := regexp.MustCompile(`<div class="chapter" id="([^"]+)"`)

	ids := make(map[string]bool)
	for _, m := range idRe.FindAllStringSubmatch(doc, -1) {
		ids[m[1]] = true
	}

	hrefs := hrefRe.FindAllStringSubmatch(doc, -1)
	if len(hrefs) != len(files) {
		t.Fatalf("found %d TOC links, want %d", len(hrefs), len(files))
	}
	for _, m := range hrefs {
		if !ids[m[1]] {
			t.Errorf("TOC links to #%s but no chapter block carries that id", m[1])
		}
	}
}

func TestBuildTOCSkipsMissingAndNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "01-introduction.md", "# Intro")
	writeChapter(t, dir, "notes.txt", "scratch")

	a := newTestAssembler(t, NewRegistry([]string{"01-introduction.md", "02-installation.md", "notes.txt"}))
	toc, err := a.BuildTOC(dir)
	if err != nil {
		t.Fatalf("BuildTOC() error: %v", err)
	}

	if got := strings.Count(toc, "<li>"); got != 1 {
		t.Errorf("TOC has %d entries, want 1\ntoc: %s", got, toc)
	}
	if strings.Contains(toc, "02-installation") || strings.Contains(toc, "notes") {
		t.Errorf("TOC contains excluded entries: %s", toc)
	}
}

func TestBuildDocumentDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "01-introduction.md", "# Intro\nHello")

	a := newTestAssembler(t, NewRegistry([]string{"01-introduction.md"}))

	first, err := a.BuildDocument(context.Background(), dir, testMeta)
	if err != nil {
		t.Fatalf("BuildDocument() error: %v", err)
	}
	second, err := a.BuildDocument(context.Background(), dir, testMeta)
	if err != nil {
		t.Fatalf("BuildDocument() error: %v", err)
	}

	if first != second {
		t.Error("assembly with a fixed clock is not deterministic")
	}
}

func TestBuildDocumentEmbedsStylesheet(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "01-introduction.md", "# Intro")

	a := newTestAssembler(t, NewRegistry([]string{"01-introduction.md"}))
	doc, err := a.BuildDocument(context.Background(), dir, testMeta)
	if err != nil {
		t.Fatalf("BuildDocument() error: %v", err)
	}

	if !strings.Contains(doc, "<style>") {
		t.Error("document missing embedded <style> block")
	}
	if !strings.Contains(doc, ".chapter") {
		t.Error("embedded stylesheet missing chapter rules")
	}
	if !strings.Contains(doc, "<!DOCTYPE html>") {
		t.Error("document is not a complete HTML page")
	}
}
