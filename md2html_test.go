package bookgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeChapter creates a chapter source file under dir.
func writeChapter(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing chapter fixture: %v", err)
	}
}

func TestGoldmarkTransform_ToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
	}{
		{
			name:     "heading and paragraph",
			source:   "# Intro\nHello",
			contains: []string{"<h1", "Intro</h1>", "<p>Hello</p>"},
		},
		{
			name:     "fenced code block",
			source:   "```go\nfunc main() {}\n```\n",
			contains: []string{"<pre", "func"},
		},
		{
			name:     "table",
			source:   "| A | B |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<th>A</th>", "<td>1</td>"},
		},
		{
			name:     "raw HTML passes through",
			source:   "Before\n\n<div class=\"sample\">inline</div>\n\nAfter",
			contains: []string{`<div class="sample">inline</div>`},
		},
		{
			name:     "heading anchors generated",
			source:   "## Getting Started\n",
			contains: []string{`id="getting-started"`},
		},
	}

	tr := NewGoldmarkTransform()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeChapter(t, dir, "01-test.md", tt.source)

			fragment, ok, err := tr.ToHTML(context.Background(), dir, Chapter{Filename: "01-test.md"})
			if err != nil {
				t.Fatalf("ToHTML() error: %v", err)
			}
			if !ok {
				t.Fatal("ToHTML() ok = false for existing file")
			}
			for _, want := range tt.contains {
				if !strings.Contains(fragment, want) {
					t.Errorf("fragment missing %q\nfragment: %s", want, fragment)
				}
			}
		})
	}
}

func TestGoldmarkTransform_ChapterContainer(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "03-routing.md", "# Routing")

	tr := NewGoldmarkTransform()
	fragment, ok, err := tr.ToHTML(context.Background(), dir, Chapter{Filename: "03-routing.md"})
	if err != nil || !ok {
		t.Fatalf("ToHTML() = ok %v, err %v", ok, err)
	}

	if !strings.HasPrefix(fragment, `<div class="chapter" id="03-routing">`) {
		t.Errorf("fragment not wrapped in chapter container: %s", fragment)
	}
	if !strings.HasSuffix(fragment, "</div>") {
		t.Errorf("fragment container not closed: %s", fragment)
	}
}

func TestGoldmarkTransform_MissingFile(t *testing.T) {
	tr := NewGoldmarkTransform()

	fragment, ok, err := tr.ToHTML(context.Background(), t.TempDir(), Chapter{Filename: "02-installation.md"})
	if err != nil {
		t.Fatalf("missing file must not be an error, got: %v", err)
	}
	if ok {
		t.Error("ToHTML() ok = true for missing file")
	}
	if fragment != "" {
		t.Errorf("missing chapter produced content: %q", fragment)
	}
}

func TestGoldmarkTransform_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "01-test.md", "# Intro")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewGoldmarkTransform()
	if _, _, err := tr.ToHTML(ctx, dir, Chapter{Filename: "01-test.md"}); err == nil {
		t.Error("ToHTML() with canceled context returned nil error")
	}
}
