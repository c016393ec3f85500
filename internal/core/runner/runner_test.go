package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"go-cmdgui/internal/core/utils"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell tests use /bin/sh")
	}
}

func collect(t *testing.T, r *Runner, ctx context.Context, command string) (*Result, []Line, error) {
	t.Helper()
	var lines []Line
	result, err := r.Run(ctx, command, func(l Line) {
		lines = append(lines, l)
	})
	return result, lines, err
}

func TestRun_StreamsLines(t *testing.T) {
	skipOnWindows(t)
	r := New(Options{}, utils.NopLogger())

	result, lines, err := collect(t, r, context.Background(), "echo one; echo two; echo oops 1>&2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Success() {
		t.Errorf("Expected success, got exit code %d", result.ExitCode)
	}

	var stdout, stderr []string
	for _, l := range lines {
		if l.Stream == Stderr {
			stderr = append(stderr, l.Text)
		} else {
			stdout = append(stdout, l.Text)
		}
	}
	if strings.Join(stdout, ",") != "one,two" {
		t.Errorf("Unexpected stdout lines %q", stdout)
	}
	if strings.Join(stderr, ",") != "oops" {
		t.Errorf("Unexpected stderr lines %q", stderr)
	}
}

func TestRun_ExitCode(t *testing.T) {
	skipOnWindows(t)
	r := New(Options{}, nil)

	result, _, err := collect(t, r, context.Background(), "echo failing; exit 3")
	if err != nil {
		t.Fatalf("Non-zero exit must not be an error: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", result.ExitCode)
	}
	if result.Success() {
		t.Error("Result should not be successful")
	}
	if result.Command != "echo failing; exit 3" {
		t.Errorf("Unexpected command %q", result.Command)
	}
}

func TestRun_PartialLastLine(t *testing.T) {
	skipOnWindows(t)
	r := New(Options{}, nil)

	_, lines, err := collect(t, r, context.Background(), "printf 'a\\nb'")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(lines) != 2 || lines[1].Text != "b" {
		t.Errorf("Expected trailing line without newline, got %+v", lines)
	}
}

func TestRun_Cancel(t *testing.T) {
	skipOnWindows(t)
	r := New(Options{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	result, _, err := collect(t, r, ctx, "echo started; sleep 10; echo never")
	if err != nil {
		t.Fatalf("Cancellation must not be an error: %v", err)
	}
	if !result.Cancelled {
		t.Error("Expected result to be marked cancelled")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Cancelled command kept running")
	}
}

func TestRun_StartFailure(t *testing.T) {
	r := New(Options{Shell: "/definitely/not/a/shell", ShellFlag: "-c"}, nil)

	_, err := r.Run(context.Background(), "true", nil)
	if err == nil {
		t.Fatal("Expected error for missing shell")
	}
	if !utils.IsProcessError(err) {
		t.Errorf("Expected process error, got %v", err)
	}
}

func TestRun_DirAndEnv(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(Options{Dir: dir, Env: []string{"CMDGUI_TEST_VALUE=hello"}}, nil)

	_, lines, err := collect(t, r, context.Background(), "ls; echo $CMDGUI_TEST_VALUE")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	joined := strings.Join(texts, "\n")
	if !strings.Contains(joined, "marker.txt") {
		t.Errorf("Expected command to run in %s, got %q", dir, joined)
	}
	if !strings.Contains(joined, "hello") {
		t.Errorf("Expected extra environment, got %q", joined)
	}
}

func TestNew_Defaults(t *testing.T) {
	r := New(Options{}, nil)
	def := DefaultOptions()

	if r.Options().Shell != def.Shell || r.Options().ShellFlag != def.ShellFlag {
		t.Errorf("Expected default shell %+v, got %+v", def, r.Options())
	}

	custom := New(Options{Shell: "bash"}, nil)
	if custom.Options().ShellFlag != "" {
		t.Errorf("Custom shell must not inherit default flag, got %q", custom.Options().ShellFlag)
	}
}

func TestStream_String(t *testing.T) {
	if Stdout.String() != "stdout" || Stderr.String() != "stderr" {
		t.Error("Unexpected stream names")
	}
}
