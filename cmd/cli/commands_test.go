package cli

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go-cmdgui/internal/core/config"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
)

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.ini")

	out, _, err := executeCommand(t, "init", "--schema", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("Unexpected output %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Schema not written: %v", err)
	}

	if _, _, err := executeCommand(t, "init", "--schema", path); !utils.IsValidationError(err) {
		t.Errorf("Expected validation error for existing schema, got %v", err)
	}
	if _, _, err := executeCommand(t, "init", "--schema", path, "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}

	if _, _, err := executeCommand(t, "validate", "--schema", path); err != nil {
		t.Errorf("The example schema should validate: %v", err)
	}
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name        string
		schema      string
		expectError bool
		contains    []string
	}{
		{
			name:     "valid schema",
			schema:   testSchema,
			contains: []string{"Program: Printer", "Command: echo", "Flags: 4", "Positionals: 1", "Group volume: loud, quiet", "--format"},
		},
		{
			name:        "unknown type",
			schema:      "[program]\ncommand = ls\n[x]\ntype = colour\n",
			expectError: true,
		},
		{
			name:        "missing program",
			schema:      "[x]\nflag = -x\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(t, "validate", "--schema", writeSchema(t, tt.schema))

			if tt.expectError {
				if !utils.IsSchemaError(err) {
					t.Errorf("Expected schema error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestValidateMissingSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.ini")
	if _, _, err := executeCommand(t, "validate", "--schema", path); err == nil {
		t.Error("Expected an error for a missing schema")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("validate must not create the schema")
	}
}

func TestShowCommand(t *testing.T) {
	path := writeSchema(t, testSchema)

	tests := []struct {
		name        string
		args        []string
		want        string
		expectError bool
	}{
		{
			name: "defaults",
			args: nil,
			want: "echo --format text\n",
		},
		{
			name: "flags and positionals",
			args: []string{"--verbose", "--format", "json", "a", "b"},
			want: "echo --verbose --format json a b\n",
		},
		{
			name:        "mutually exclusive flags",
			args:        []string{"--loud", "--quiet"},
			expectError: true,
		},
		{
			name:        "bad choice",
			args:        []string{"--format", "yaml"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"show", "--schema", path, "--"}, tt.args...)
			out, _, err := executeCommand(t, args...)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error, got output %q", out)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("show printed %q, want %q", out, tt.want)
			}
		})
	}
}

func TestShowUsage(t *testing.T) {
	out, _, err := executeCommand(t, "show", "--schema", writeSchema(t, testSchema), "--usage")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "--format") || !strings.Contains(out, "[WORDS...]") {
		t.Errorf("Unexpected usage:\n%s", out)
	}
}

func TestShowExamples(t *testing.T) {
	for _, example := range strings.Split(showCmd.Example, "\n") {
		fields := strings.Fields(example)
		if len(fields) < 2 || fields[0] != "cmdgui" {
			t.Fatalf("Malformed example %q", example)
		}
		t.Run(strings.Join(fields[1:], " "), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "default.ini")
			args := append([]string{fields[1], "--schema", path}, fields[2:]...)
			out, _, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("Example %q failed: %v", example, err)
			}
			if !strings.Contains(out, "ls") {
				t.Errorf("Example %q printed %q", example, out)
			}
		})
	}
}

func TestShowCreatesMissingSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.ini")
	out, _, err := executeCommand(t, "show", "--schema", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "ls") {
		t.Errorf("Expected the example command, got %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Example schema not written: %v", err)
	}
}

func TestRunCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	path := writeSchema(t, testSchema)

	out, errOut, err := executeCommand(t, "run", "--schema", path, "--echo", "--", "--verbose", "hi")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "--verbose --format text hi\n" {
		t.Errorf("Unexpected stdout %q", out)
	}
	if !strings.Contains(errOut, "$ echo --verbose --format text hi") {
		t.Errorf("Expected echoed command on stderr, got %q", errOut)
	}
}

func TestRunCommandExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	path := writeSchema(t, "[program]\ncommand = exit\n[code]\ntype = integer\n")

	_, _, err := executeCommand(t, "run", "--schema", path, "--", "3")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected *ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Expected exit code 3, got %d", exitErr.Code)
	}
}

func TestDocsCommand(t *testing.T) {
	path := writeSchema(t, testSchema)

	out, _, err := executeCommand(t, "docs", "--schema", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"## echo", "--format", "--verbose"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected docs to contain %q, got:\n%s", want, out)
		}
	}

	file := filepath.Join(t.TempDir(), "echo.md")
	if _, _, err := executeCommand(t, "docs", "--schema", path, "--output", file); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if data, err := os.ReadFile(file); err != nil || !strings.Contains(string(data), "## echo") {
		t.Errorf("Docs file not written correctly: %v", err)
	}
}

func TestDocsCommandCLI(t *testing.T) {
	dir := t.TempDir()

	out, _, err := executeCommand(t, "docs", "--cli", "--output", dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, name := range []string{"cmdgui.md", "cmdgui_run.md", "cmdgui_validate.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}
	if !strings.Contains(out, "cmdgui_show.md") {
		t.Errorf("Expected generated files to be listed, got:\n%s", out)
	}
}

func TestWebLauncher(t *testing.T) {
	defer RegisterWebLauncher(nil)

	var launched *session.Session
	var ui config.UIConfig
	RegisterWebLauncher(func(sess *session.Session, c config.UIConfig, _ *utils.Logger) error {
		launched, ui = sess, c
		return nil
	})

	if _, _, err := executeCommand(t, "web", "--schema", writeSchema(t, testSchema)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if launched == nil || launched.Schema().DisplayName() != "Printer" {
		t.Error("Expected the launcher to receive the session")
	}
	if ui.Width != 900 {
		t.Errorf("Expected default UI config, got %+v", ui)
	}
}
