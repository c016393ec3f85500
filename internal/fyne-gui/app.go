package fynegui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"go-cmdgui/internal/core/config"
	"go-cmdgui/internal/core/runner"
	"go-cmdgui/internal/core/session"
	"go-cmdgui/internal/core/utils"
)

const (
	appID          = "io.github.cmdgui"
	maxOutputLines = 5000
)

type outputLine struct {
	text   string
	stderr bool
}

type FyneApp struct {
	app        fyne.App
	window     fyne.Window
	service    *Service
	logger     *utils.Logger
	themeName  string
	isDarkMode bool

	form *argForm

	previewLabel *widget.Label
	previewText  string
	runBtn       *widget.Button
	stopBtn      *widget.Button
	copyBtn      *widget.Button
	saveBtn      *widget.Button

	output     []outputLine
	outputList *widget.List

	statusLabel *widget.Label
	statusIcon  *widget.Icon
	activity    *ActivityIndicator
}

func NewFyneApp(sess *session.Session, ui config.UIConfig, logger *utils.Logger) *FyneApp {
	return newFyneApp(app.NewWithID(appID), sess, ui, logger)
}

func newFyneApp(a fyne.App, sess *session.Session, ui config.UIConfig, logger *utils.Logger) *FyneApp {
	if logger == nil {
		logger = utils.NopLogger()
	}
	themeName := ui.Theme
	if themeName == "" {
		themeName = ThemeModern
	}

	f := &FyneApp{
		app:        a,
		service:    NewService(sess, logger),
		logger:     logger,
		themeName:  themeName,
		isDarkMode: ui.Dark,
	}
	a.Settings().SetTheme(NewTheme(f.themeName, f.isDarkMode))

	f.window = a.NewWindow(sess.Schema().DisplayName())
	width, height := ui.Width, ui.Height
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 700
	}
	f.window.Resize(fyne.NewSize(float32(width), float32(height)))

	f.setupUI()
	return f
}

func (f *FyneApp) Run() {
	f.window.CenterOnScreen()
	f.window.SetCloseIntercept(func() {
		f.service.Stop()
		f.window.Close()
	})
	f.window.ShowAndRun()
}

func (f *FyneApp) applyTheme() {
	f.app.Settings().SetTheme(NewTheme(f.themeName, f.isDarkMode))
	f.window.Content().Refresh()
}

func (f *FyneApp) setupUI() {
	sch := f.service.Schema()

	themeSelector := widget.NewSelect(ThemeNames(), func(selected string) {
		f.themeName = selected
		f.applyTheme()
	})
	themeSelector.SetSelected(f.themeName)

	themeToggle := NewToggleSwitch("Dark Mode", func(dark bool) {
		f.isDarkMode = dark
		f.applyTheme()
	})
	themeToggle.Checked = f.isDarkMode

	title := widget.NewLabelWithStyle(sch.DisplayName(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	header := container.NewVBox(container.NewHBox(
		title,
		layout.NewSpacer(),
		widget.NewLabel("Theme:"),
		themeSelector,
		widget.NewLabel("Dark:"),
		container.NewCenter(themeToggle),
	))
	if sch.Program.Description != "" {
		desc := widget.NewLabel(sch.Program.Description)
		desc.Wrapping = fyne.TextWrapWord
		header.Add(desc)
	}

	f.form = newArgForm(f.window, sch, f.service.Defaults(), f.service.DefaultActive(), f.refreshPreview)
	formScroll := container.NewVScroll(container.NewPadded(f.form.Content()))

	f.previewLabel = widget.NewLabel("")
	f.previewLabel.TextStyle = fyne.TextStyle{Monospace: true}
	f.previewLabel.Wrapping = fyne.TextWrapBreak

	f.copyBtn = widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), f.handleCopy)
	f.runBtn = widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), f.handleRun)
	f.runBtn.Importance = widget.HighImportance
	f.stopBtn = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), f.handleStop)
	f.stopBtn.Importance = widget.DangerImportance
	f.stopBtn.Disable()
	resetBtn := widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), f.handleReset)

	previewCard := widget.NewCard("", "Command", container.NewBorder(nil, nil, nil, f.copyBtn, f.previewLabel))
	actions := container.NewHBox(resetBtn, layout.NewSpacer(), f.stopBtn, f.runBtn)

	f.outputList = widget.NewList(
		func() int { return len(f.output) },
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.TextStyle = fyne.TextStyle{Monospace: true}
			return l
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			l := obj.(*widget.Label)
			line := f.output[id]
			l.Importance = widget.MediumImportance
			if line.stderr {
				l.Importance = widget.DangerImportance
			}
			l.SetText(line.text)
		},
	)
	f.saveBtn = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), f.handleSaveOutput)
	clearBtn := widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), f.handleClearOutput)
	outputCard := widget.NewCard("", "Output", container.NewBorder(
		nil, container.NewHBox(layout.NewSpacer(), clearBtn, f.saveBtn), nil, nil, f.outputList))

	f.statusLabel = widget.NewLabel("Ready")
	f.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	f.statusIcon = widget.NewIcon(theme.InfoIcon())
	f.activity = NewActivityIndicator()
	statusBar := widget.NewCard("", "", container.NewHBox(f.statusIcon, f.statusLabel, layout.NewSpacer(), f.activity))

	top := container.NewBorder(nil, container.NewVBox(previewCard, actions), nil, nil, formScroll)
	split := container.NewVSplit(top, outputCard)
	split.Offset = 0.6

	f.window.SetContent(container.NewPadded(container.NewBorder(header, statusBar, nil, nil, split)))
	f.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		f.handleRun()
	})

	f.refreshPreview()
}

// refreshPreview recomputes the command line after every form edit.
func (f *FyneApp) refreshPreview() {
	if f.previewLabel == nil {
		return
	}
	line, err := f.service.Preview(f.form.Values(), f.form.Active())
	if err != nil {
		f.previewText = ""
		f.previewLabel.Importance = widget.DangerImportance
		f.previewLabel.SetText(err.Error())
		f.runBtn.Disable()
		f.copyBtn.Disable()
		return
	}

	f.previewText = line
	f.previewLabel.Importance = widget.MediumImportance
	f.previewLabel.SetText("$ " + line)
	f.copyBtn.Enable()
	if !f.service.Running() {
		f.runBtn.Enable()
	}
}

// handleRun is also bound to Ctrl+Enter, which fires regardless of the button state.
func (f *FyneApp) handleRun() {
	if f.runBtn.Disabled() {
		return
	}
	line, err := f.service.Start(f.form.Values(), f.form.Active(), f.onLine, f.onDone)
	if err != nil {
		f.setStatusError(err.Error())
		return
	}

	f.output = nil
	f.outputList.Refresh()
	f.runBtn.Disable()
	f.stopBtn.Enable()
	f.activity.Start()
	f.setStatus("Running " + line)
}

func (f *FyneApp) handleStop() {
	if f.service.Stop() {
		f.setStatus("Stopping…")
	}
}

// onLine and onDone are called from the runner goroutine.
func (f *FyneApp) onLine(line runner.Line) {
	fyne.Do(func() {
		f.output = append(f.output, outputLine{text: line.Text, stderr: line.Stream == runner.Stderr})
		if len(f.output) > maxOutputLines {
			f.output = f.output[len(f.output)-maxOutputLines:]
		}
		f.outputList.Refresh()
		f.outputList.ScrollToBottom()
	})
}

func (f *FyneApp) onDone(result *runner.Result, err error) {
	fyne.Do(func() {
		f.activity.Stop()
		f.stopBtn.Disable()
		f.refreshPreview()

		switch {
		case err != nil:
			f.setStatusError(err.Error())
		case result.Cancelled:
			f.setStatusWarning("Stopped")
		case result.ExitCode != 0:
			f.setStatusError(fmt.Sprintf("Exited with code %d after %s", result.ExitCode, result.Duration.Round(time.Millisecond)))
		default:
			f.setStatusSuccess(fmt.Sprintf("Finished in %s", result.Duration.Round(time.Millisecond)))
		}
	})
}

func (f *FyneApp) handleCopy() {
	if f.previewText == "" {
		return
	}
	f.window.Clipboard().SetContent(f.previewText)
	ShowToast(f.window, "Command copied", ToastInfo)
}

func (f *FyneApp) handleReset() {
	f.form.Reset(f.service.Defaults(), f.service.DefaultActive())
}

func (f *FyneApp) handleClearOutput() {
	f.output = nil
	f.outputList.Refresh()
}

func (f *FyneApp) outputText() []string {
	lines := make([]string, len(f.output))
	for i, l := range f.output {
		lines[i] = l.text
	}
	return lines
}

func (f *FyneApp) handleSaveOutput() {
	lines := f.outputText()
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			f.setStatusError(err.Error())
			return
		}
		if w == nil {
			return
		}
		defer w.Close()

		if err := WriteOutput(w, lines); err != nil {
			f.setStatusError(err.Error())
			return
		}
		f.setStatusSuccess("Output saved to " + w.URI().Name())
	}, f.window)
	save.SetFileName("output.txt")
	save.Show()
}

func (f *FyneApp) setStatus(status string) {
	f.logger.Debug("Status update", "status", status)
	f.statusLabel.Importance = widget.MediumImportance
	f.statusLabel.SetText(status)
	f.statusIcon.SetResource(theme.InfoIcon())
}

func (f *FyneApp) setStatusSuccess(status string) {
	f.logger.Debug("Status update (success)", "status", status)
	f.statusLabel.Importance = widget.SuccessImportance
	f.statusLabel.SetText(status)
	f.statusIcon.SetResource(theme.ConfirmIcon())
	ShowToast(f.window, status, ToastSuccess)
}

func (f *FyneApp) setStatusWarning(status string) {
	f.logger.Debug("Status update (warning)", "status", status)
	f.statusLabel.Importance = widget.WarningImportance
	f.statusLabel.SetText(status)
	f.statusIcon.SetResource(theme.WarningIcon())
}

func (f *FyneApp) setStatusError(status string) {
	f.logger.Debug("Status update (error)", "status", status)
	f.statusLabel.Importance = widget.DangerImportance
	f.statusLabel.SetText(status)
	f.statusIcon.SetResource(theme.ErrorIcon())
	ShowToast(f.window, status, ToastError)
}
