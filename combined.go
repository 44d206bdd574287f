package bookgen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-bookgen/internal/dateutil"
)

// combinedName is the transient combined-Markdown filename written to the
// output directory for pandoc runs.
const combinedName = "combined.md"

// buildCombinedMarkdown re-derives a single Markdown document from the
// registry and the raw chapter sources: title, generation date, optionally
// a textual table of contents, then each existing chapter separated by
// horizontal rules. Used only by the pandoc subprocess paths, which do not
// consume the assembled HTML. With zero existing chapters the result is
// just the title/date header.
func buildCombinedMarkdown(registry *Registry, docsDir string, meta BookMeta, now time.Time, includeTOC bool) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", meta.Title)
	fmt.Fprintf(&b, "*Generated on %s*\n\n", dateutil.FormatLong(now))

	if includeTOC {
		b.WriteString("## Table of Contents\n\n")
		for _, ch := range registry.Chapters() {
			if !ch.IsMarkdown() {
				continue
			}
			fmt.Fprintf(&b, "%s. [%s](#%s)\n", ch.Number(), ch.DisplayName(), ch.AnchorID())
		}
		b.WriteString("\n---\n\n")
	}

	for _, ch := range registry.Chapters() {
		content, err := os.ReadFile(filepath.Join(docsDir, ch.Filename)) // #nosec G304 -- chapter paths come from the registry
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("reading chapter %s: %w", ch.Filename, err)
		}
		fmt.Fprintf(&b, "\n# %s\n\n", ch.DisplayName())
		b.Write(content)
		b.WriteString("\n\n---\n\n")
	}

	return b.String(), nil
}
