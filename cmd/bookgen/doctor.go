package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	bookgen "github.com/alnah/go-bookgen"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Backends backendInfo `json:"backends"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// backendInfo holds renderer availability probes, in preference order.
type backendInfo struct {
	RodChrome    bool   `json:"rod_chrome"`
	RodPath      string `json:"rod_path,omitempty"`
	SystemChrome bool   `json:"system_chrome"`
	ChromePath   string `json:"chrome_path,omitempty"`
	Pandoc       bool   `json:"pandoc"`
	PandocPath   string `json:"pandoc_path,omitempty"`
	PandocVer    string `json:"pandoc_version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	CI         bool   `json:"ci"`
	BrowserBin string `json:"rod_browser_bin,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkBackends(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkBackends probes every renderer dependency in preference order.
// No backend at all is an error: every output path needs one of them.
func checkBackends(result *doctorResult) {
	if bin := result.Env.BrowserBin; bin != "" {
		result.Backends.RodChrome = true
		result.Backends.RodPath = bin
	} else if path, found := launcher.LookPath(); found {
		result.Backends.RodChrome = true
		result.Backends.RodPath = path
	}

	if path, found := bookgen.LookPathChrome(); found {
		result.Backends.SystemChrome = true
		result.Backends.ChromePath = path
	}

	if path, err := exec.LookPath("pandoc"); err == nil {
		result.Backends.Pandoc = true
		result.Backends.PandocPath = path
		if out, err := exec.Command(path, "--version").Output(); err == nil {
			if line, _, ok := strings.Cut(string(out), "\n"); ok {
				result.Backends.PandocVer = strings.TrimSpace(line)
			}
		}
	}

	if !result.Backends.RodChrome && !result.Backends.SystemChrome {
		if result.Backends.Pandoc {
			result.Warnings = append(result.Warnings,
				"No Chrome/Chromium found; PDF generation will use the pandoc fallback")
		} else {
			result.Errors = append(result.Errors,
				"No PDF backend available. Install Chrome/Chromium or pandoc")
		}
	}
	if !result.Backends.Pandoc {
		result.Warnings = append(result.Warnings,
			"pandoc not found: EPUB generation requires pandoc")
	}
}

// checkEnvironment detects CI environments.
func checkEnvironment(result *doctorResult) {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "bookgen-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "bookgen doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PDF backends (preference order)")
	if r.Backends.RodChrome {
		fmt.Fprintf(w, "  [OK] rod: Chrome at %s\n", r.Backends.RodPath)
	} else {
		fmt.Fprintln(w, "  [--] rod: Chrome not found")
	}
	if r.Backends.SystemChrome {
		fmt.Fprintf(w, "  [OK] chromedp: Chrome at %s\n", r.Backends.ChromePath)
	} else {
		fmt.Fprintln(w, "  [--] chromedp: system Chrome not found")
	}
	if r.Backends.Pandoc {
		fmt.Fprintf(w, "  [OK] pandoc: %s", r.Backends.PandocPath)
		if r.Backends.PandocVer != "" {
			fmt.Fprintf(w, " (%s)", r.Backends.PandocVer)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "  [--] pandoc: not found (also required for EPUB)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
