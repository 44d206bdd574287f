package bookgen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// chromeCandidates are the binary names probed when locating a
// system-installed Chrome for the chromedp backend.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
}

// LookPathChrome locates a system-installed Chrome/Chromium binary.
// BOOKGEN_CHROME overrides the search.
func LookPathChrome() (string, bool) {
	if bin := os.Getenv("BOOKGEN_CHROME"); bin != "" {
		return bin, true
	}
	for _, name := range chromeCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// chromedpBackend renders the assembled HTML by driving a system-installed
// Chrome binary through the DevTools protocol. Second in preference: same
// engine family as rod but with a fixed flat option set and no managed
// browser download.
type chromedpBackend struct {
	timeout time.Duration
}

// newChromedpBackend creates the chromedp backend with the given render
// timeout.
func newChromedpBackend(timeout time.Duration) *chromedpBackend {
	return &chromedpBackend{timeout: timeout}
}

func (b *chromedpBackend) Name() string { return "chromedp" }

// Available reports whether a system Chrome binary is on PATH.
func (b *chromedpBackend) Available() bool {
	_, found := LookPathChrome()
	return found
}

// Render prints the assembled HTML to outputPath with the fixed option
// set: A4 paper, 2cm margins on all four sides, backgrounds on, document
// outline suppressed. Encoding is carried by the document's own UTF-8
// meta charset.
func (b *chromedpBackend) Render(ctx context.Context, job RenderJob, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	chromePath, found := LookPathChrome()
	if !found {
		return fmt.Errorf("%w: no system Chrome binary", ErrBrowserConnect)
	}

	tmpPath, cleanup, err := writeTempHTML(job.HTML)
	if err != nil {
		return err
	}
	defer cleanup()

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chromePath),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-first-run", true),
	)
	if os.Getenv("CI") == "true" {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	var pdfBuf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+tmpPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(bookMarginInch).
				WithMarginRight(bookMarginInch).
				WithMarginBottom(bookMarginInch).
				WithMarginLeft(bookMarginInch).
				WithPrintBackground(true).
				WithGenerateDocumentOutline(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(outputPath, pdfBuf, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteArtifact, err)
	}
	return nil
}
