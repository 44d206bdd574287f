package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return env, &stdout, &stderr
}

func TestRunVersion(t *testing.T) {
	env, stdout, _ := testEnv()

	if code := run([]string{"bookgen", "version"}, env); code != ExitSuccess {
		t.Fatalf("run(version) = %d, want %d", code, ExitSuccess)
	}
	if got := strings.TrimSpace(stdout.String()); got != Version {
		t.Errorf("version output = %q, want %q", got, Version)
	}
}

func TestRunBadFormat(t *testing.T) {
	env, _, stderr := testEnv()

	if code := run([]string{"bookgen", "--format", "docx"}, env); code != ExitUsage {
		t.Fatalf("run(--format docx) = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "format") {
		t.Errorf("stderr %q does not mention the format error", stderr.String())
	}
}

func TestRunZeroTimeout(t *testing.T) {
	env, _, stderr := testEnv()

	if code := run([]string{"bookgen", "--timeout", "0"}, env); code != ExitUsage {
		t.Fatalf("run(--timeout 0) = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "timeout") {
		t.Errorf("stderr %q does not mention the timeout error", stderr.String())
	}
}

func TestRunMissingConfig(t *testing.T) {
	env, _, _ := testEnv()

	code := run([]string{"bookgen", "--config", filepath.Join(t.TempDir(), "missing.yaml")}, env)
	if code != ExitUsage {
		t.Errorf("run(missing config) = %d, want %d", code, ExitUsage)
	}
}

func TestRunHTMLFormat(t *testing.T) {
	docsDir := t.TempDir()
	outputDir := t.TempDir()
	chapter := "# Introduction\n\nWelcome to the book.\n"
	if err := os.WriteFile(filepath.Join(docsDir, "01-introduction.md"), []byte(chapter), 0o644); err != nil {
		t.Fatalf("writing chapter fixture: %v", err)
	}

	configPath := filepath.Join(t.TempDir(), "book.yaml")
	configYAML := "book:\n  title: Test Book\n  baseName: test-book\nchapters:\n  - 01-introduction.md\n"
	if err := os.WriteFile(configPath, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	env, stdout, _ := testEnv()
	code := run([]string{
		"bookgen",
		"--format", "html",
		"--docs-dir", docsDir,
		"--output-dir", outputDir,
		"--config", configPath,
	}, env)
	if code != ExitSuccess {
		t.Fatalf("run(--format html) = %d, want %d", code, ExitSuccess)
	}

	artifact := filepath.Join(outputDir, "test-book.html")
	data, err := os.ReadFile(artifact)
	if err != nil {
		t.Fatalf("HTML artifact missing: %v", err)
	}
	if !strings.Contains(string(data), "Test Book") {
		t.Error("HTML artifact missing the book title")
	}
	if !strings.Contains(stdout.String(), "✓ HTML generated") {
		t.Errorf("stdout %q missing the success line", stdout.String())
	}
}
