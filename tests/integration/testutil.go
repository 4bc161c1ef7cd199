// Package integration provides CLI integration tests for marquee.
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// marqueeBin is the path to the built marquee binary.
	marqueeBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated test environment with its own config
// directory and datafile.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
	DB        string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build marquee: %v", buildErr)
	}
	if marqueeBin == "" {
		t.Fatal("marquee binary not built (marqueeBin is empty)")
	}

	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: configDir,
		DB:        filepath.Join(tempDir, "conf.db"),
	}
}

// CmdResult holds the result of a marquee command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunMarquee executes the marquee CLI with the given arguments.
// Returns stdout, stderr, and exit code.
func (e *TestEnv) RunMarquee(args ...string) CmdResult {
	e.t.Helper()
	return e.runWithStdin(nil, args...)
}

// RunMarqueeStdin executes the marquee CLI feeding input to stdin.
func (e *TestEnv) RunMarqueeStdin(input string, args ...string) CmdResult {
	e.t.Helper()
	return e.runWithStdin(bytes.NewReader([]byte(input)), args...)
}

func (e *TestEnv) runWithStdin(stdin io.Reader, args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.ConfigDir, "--db", e.DB}, args...)
	cmd := exec.Command(marqueeBin, allArgs...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run marquee: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunMarquee executes the marquee CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunMarquee(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunMarquee(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("marquee %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Info mirrors the info command's JSON payload.
type Info struct {
	Path     string            `json:"path"`
	Metadata map[string]string `json:"metadata"`
	Counts   []TableCount      `json:"counts"`
}

// TableCount is one row-count entry in the info payload.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// Rows parses query output: one JSON object per record.
type Rows []map[string]any

// CountFor returns the row count reported for a table, or -1 when absent.
func (i Info) CountFor(table string) int64 {
	for _, c := range i.Counts {
		if c.Table == table {
			return c.Rows
		}
	}
	return -1
}
