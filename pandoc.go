package bookgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// pandocBinary is the external document-processor this tool shells out to.
const pandocBinary = "pandoc"

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The subprocess blocks
// until it exits or the context is canceled.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Pandoc invokes the pandoc CLI to render combined Markdown documents.
type Pandoc struct {
	Runner CommandRunner
}

// NewPandoc creates a Pandoc with a real command runner.
func NewPandoc() *Pandoc {
	return &Pandoc{Runner: &ExecRunner{}}
}

// Available reports whether the pandoc binary can be found on PATH.
func (p *Pandoc) Available() bool {
	_, err := exec.LookPath(pandocBinary)
	return err == nil
}

// Convert runs pandoc on inputPath producing outputPath with the given
// extra flags. Tool absence maps to ErrPandocNotFound; a non-zero exit
// maps to ErrPandocFailed with pandoc's stderr attached.
func (p *Pandoc) Convert(ctx context.Context, inputPath, outputPath string, flags ...string) error {
	args := append([]string{inputPath, "-o", outputPath}, flags...)

	_, stderr, err := p.Runner.Run(ctx, pandocBinary, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrPandocNotFound, err)
		}
		return fmt.Errorf("%w: %s: %v", ErrPandocFailed, stderr, err)
	}
	return nil
}
