package fynegui

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"go-cmdgui/internal/core/config"
	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
)

const echoSchema = `
[program]
name = Printer
description = Echo with options
command = echo

[verbose]
flag = -v
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

[count]
flag = --count
type = integer

[files]
type = file
multiple = true
`

func newTestSession(t *testing.T, source string) *session.Session {
	t.Helper()
	s, err := schema.Parse([]byte(source))
	if err != nil {
		t.Fatalf("schema.Parse() error = %v", err)
	}
	sess, err := session.New(s, nil, utils.NopLogger())
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	return sess
}

func createTestApp(t *testing.T) *FyneApp {
	t.Helper()
	return newFyneApp(test.NewApp(), newTestSession(t, echoSchema), config.UIConfig{Theme: ThemeModern, Dark: true}, utils.NopLogger())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		done := false
		fyne.DoAndWait(func() { done = cond() })
		if done {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestFyneApp_Setup(t *testing.T) {
	f := createTestApp(t)

	if f.window.Title() != "Printer" {
		t.Errorf("Expected window title Printer, got %q", f.window.Title())
	}
	if f.previewText != "echo --format text" {
		t.Errorf("Unexpected initial preview %q", f.previewText)
	}
	if f.runBtn.Disabled() || !f.stopBtn.Disabled() {
		t.Error("Run should be enabled and Stop disabled when idle")
	}
	if th, ok := f.app.Settings().Theme().(*ModernTheme); !ok || !th.isDark {
		t.Error("Expected the dark Modern theme from the UI config")
	}
}

func TestFyneApp_FormEditUpdatesPreview(t *testing.T) {
	f := createTestApp(t)

	check := f.form.byName["verbose"].object.(*widget.Check)
	test.Tap(check)

	if f.previewText != "echo -v --format text" {
		t.Errorf("Preview after toggling = %q", f.previewText)
	}
	if !strings.HasPrefix(f.previewLabel.Text, "$ ") {
		t.Errorf("Preview label should show a prompt, got %q", f.previewLabel.Text)
	}
}

func TestFyneApp_InvalidFormDisablesRun(t *testing.T) {
	f := createTestApp(t)

	entry := f.form.byName["count"].object.(*widget.Entry)
	entry.SetText("many")

	if !f.runBtn.Disabled() || !f.copyBtn.Disabled() {
		t.Error("Run and Copy should be disabled for an invalid form")
	}
	if f.previewLabel.Importance != widget.DangerImportance {
		t.Error("Preview should show the error")
	}

	entry.SetText("3")
	if f.runBtn.Disabled() {
		t.Error("Run should be enabled again once the form is valid")
	}
	if f.previewText != "echo --format text --count 3" {
		t.Errorf("Unexpected preview %q", f.previewText)
	}
}

func TestFyneApp_Copy(t *testing.T) {
	f := createTestApp(t)

	f.handleCopy()
	if got := f.window.Clipboard().Content(); got != "echo --format text" {
		t.Errorf("Clipboard content = %q", got)
	}
}

func TestFyneApp_Reset(t *testing.T) {
	f := createTestApp(t)

	f.form.byName["verbose"].set(true)
	f.form.radios["volume"].SetSelected("Quiet")
	f.handleReset()

	if f.previewText != "echo --format text" {
		t.Errorf("Preview after reset = %q", f.previewText)
	}
	if f.form.Active()["volume"] != "loud" {
		t.Errorf("Reset should restore the default group member, got %v", f.form.Active())
	}
}

func TestFyneApp_ApplyTheme(t *testing.T) {
	f := createTestApp(t)

	f.themeName = ThemeCompact
	f.isDarkMode = false
	f.applyTheme()

	th, ok := f.app.Settings().Theme().(*ModernTheme)
	if !ok {
		t.Fatal("Expected *ModernTheme")
	}
	if !th.compact || th.isDark {
		t.Errorf("Unexpected theme state %+v", th)
	}
}

func TestFyneApp_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	f := createTestApp(t)

	f.handleRun()
	waitFor(t, func() bool { return !f.activity.Running() })

	if got := f.outputText(); len(got) != 1 || got[0] != "--format text" {
		t.Errorf("Unexpected output %q", got)
	}
	if !strings.HasPrefix(f.statusLabel.Text, "Finished") {
		t.Errorf("Unexpected status %q", f.statusLabel.Text)
	}
	if f.runBtn.Disabled() || !f.stopBtn.Disabled() {
		t.Error("Buttons should be back to idle state")
	}

	f.handleClearOutput()
	if len(f.outputText()) != 0 {
		t.Error("Clear should empty the output")
	}
}

func TestFyneApp_RunIgnoredWhileDisabled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	tests := []struct {
		name    string
		source  string
		prepare func(t *testing.T, f *FyneApp)
		status  string
	}{
		{
			name:   "command already running",
			source: "[program]\ncommand = sleep\n[seconds]\ntype = integer\ndefault = 5\n",
			prepare: func(t *testing.T, f *FyneApp) {
				f.handleRun()
				waitFor(t, f.service.Running)
			},
			status: "Running sleep 5",
		},
		{
			name:   "invalid form",
			source: echoSchema,
			prepare: func(t *testing.T, f *FyneApp) {
				f.form.byName["count"].object.(*widget.Entry).SetText("many")
				f.setStatus("Ready")
			},
			status: "Ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFyneApp(test.NewApp(), newTestSession(t, tt.source), config.UIConfig{}, nil)
			tt.prepare(t, f)
			running := f.service.Running()

			f.handleRun()

			if f.statusLabel.Text != tt.status {
				t.Errorf("Status = %q, want %q", f.statusLabel.Text, tt.status)
			}
			if f.service.Running() != running || f.stopBtn.Disabled() == running {
				t.Error("A disabled Run should not change the run state")
			}

			f.handleStop()
			waitFor(t, func() bool { return !f.service.Running() })
		})
	}
}

func TestFyneApp_RunFailureStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}
	sess := newTestSession(t, "[program]\ncommand = exit\n[code]\ntype = integer\ndefault = 4\n")
	f := newFyneApp(test.NewApp(), sess, config.UIConfig{}, nil)

	f.handleRun()
	waitFor(t, func() bool { return !f.activity.Running() })

	if !strings.Contains(f.statusLabel.Text, "code 4") {
		t.Errorf("Expected exit code in status, got %q", f.statusLabel.Text)
	}
	if f.statusLabel.Importance != widget.DangerImportance {
		t.Error("A failing command should be shown as an error")
	}
}
