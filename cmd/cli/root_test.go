package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"go-cmdgui/internal/core/utils"
)

const testSchema = `
[program]
name = Printer
command = echo

[verbose]
flag = --verbose
type = boolean

[format]
flag = --format
type = choice
choices = json, text
default = text

[loud]
flag = --loud
type = boolean
group = volume

[quiet]
flag = --quiet
type = boolean
group = volume

[words]
type = file
multiple = true
`

// executeCommand runs the real root command with fresh viper state and flag
// values, using a config file in a temp dir so the user's config is ignored.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte("logging:\n  level: error\n"), 0600); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	viper.Reset()
	bindFlags()
	resetFlags(rootCmd.PersistentFlags())
	resetFlags(rootCmd.Flags())
	for _, cmd := range rootCmd.Commands() {
		resetFlags(cmd.Flags())
	}
	cfg, logger = nil, nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", configFile}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.ini")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write schema: %v", err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		errorMsg    string
		output      string
	}{
		{
			name:   "help command",
			args:   []string{"--help"},
			output: "cmdgui reads a small INI schema",
		},
		{
			name:   "subcommand help",
			args:   []string{"tui", "--help"},
			output: "ctrl+r runs",
		},
		{
			name:        "invalid flag",
			args:        []string{"--invalid-flag"},
			expectError: true,
			errorMsg:    "unknown flag",
		},
		{
			name:        "invalid log format",
			args:        []string{"--log-format", "xml", "validate"},
			expectError: true,
			errorMsg:    "unsupported logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(t, tt.args...)

			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got none")
				}
				if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error message to contain '%s', got: %v", tt.errorMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.output) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.output, out)
			}
		})
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	path := writeSchema(t, testSchema)
	t.Setenv("CMDGUI_RUNNER_WORKDIR", "/tmp")

	if _, _, err := executeCommand(t, "validate", "--schema", path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Runner.WorkDir != "/tmp" {
		t.Errorf("Expected runner.workdir from environment, got %q", cfg.Runner.WorkDir)
	}
	if cfg.Schema != path {
		t.Errorf("Expected schema from flag, got %q", cfg.Schema)
	}
	if cfg.Runner.Shell == "" {
		t.Error("Expected a default shell")
	}
}

func TestDebugModeDetection(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "debug flag enabled",
			args:     []string{"--debug"},
			expected: true,
		},
		{
			name:     "debug log level",
			args:     []string{"--log-level", "debug"},
			expected: true,
		},
		{
			name:     "no debug",
			args:     []string{"--log-level", "info"},
			expected: false,
		},
	}

	path := writeSchema(t, testSchema)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "validate", "--schema", path)
			if _, _, err := executeCommand(t, args...); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if actual := IsDebugMode(); actual != tt.expected {
				t.Errorf("Expected debug mode %v, got %v", tt.expected, actual)
			}
			if tt.expected && cfg.Logging.Level != "debug" {
				t.Errorf("Expected debug logging, got %q", cfg.Logging.Level)
			}
		})
	}
}

func TestWebWithoutLauncher(t *testing.T) {
	webLauncher = nil
	_, _, err := executeCommand(t, "web")
	if !utils.IsConfigError(err) {
		t.Errorf("Expected config error, got %v", err)
	}
}
