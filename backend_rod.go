package bookgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 page dimensions in inches, with the book's 2cm margin.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	bookMarginInch = 0.79
)

// Chrome print templates for the paged-media header and footer: running
// book title on top, page counter on the bottom.
const (
	rodHeaderTemplate = `<div style="font-size:10px;color:#666;width:100%;text-align:center;"><span class="title"></span></div>`
	rodFooterTemplate = `<div style="font-size:10px;color:#666;width:100%;text-align:center;"><span class="pageNumber"></span></div>`
)

// rodBackend renders the assembled HTML with headless Chrome via go-rod.
// It is the highest-preference backend: full print-CSS pagination support
// with header/footer page counters and page-break control.
type rodBackend struct {
	timeout time.Duration
	browser *rod.Browser
}

// newRodBackend creates the go-rod backend with the given render timeout.
func newRodBackend(timeout time.Duration) *rodBackend {
	return &rodBackend{timeout: timeout}
}

func (b *rodBackend) Name() string { return "rod" }

// Available reports whether a Chrome/Chromium binary is reachable, either
// via ROD_BROWSER_BIN or rod's own lookup.
func (b *rodBackend) Available() bool {
	if os.Getenv("ROD_BROWSER_BIN") != "" {
		return true
	}
	_, found := launcher.LookPath()
	return found
}

// ensureBrowser lazily launches and connects to the browser.
func (b *rodBackend) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = rod.New().ControlURL(u)
	if err := b.browser.Connect(); err != nil {
		b.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Render writes the assembled HTML to a temp file, opens it in headless
// Chrome, and prints it to outputPath with A4 geometry and the running
// header/footer.
func (b *rodBackend) Render(ctx context.Context, job RenderJob, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmpPath, cleanup, err := writeTempHTML(job.HTML)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := b.ensureBrowser(); err != nil {
		return err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:          floatPtr(a4WidthInches),
		PaperHeight:         floatPtr(a4HeightInches),
		MarginTop:           floatPtr(bookMarginInch),
		MarginBottom:        floatPtr(bookMarginInch),
		MarginLeft:          floatPtr(bookMarginInch),
		MarginRight:         floatPtr(bookMarginInch),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      rodHeaderTemplate,
		FooterTemplate:      rodFooterTemplate,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(outputPath, pdfBuf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArtifact, err)
	}
	return nil
}

// Close releases browser resources.
func (b *rodBackend) Close() error {
	if b.browser != nil {
		err := b.browser.Close()
		b.browser = nil
		return err
	}
	return nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
