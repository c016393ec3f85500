package fynegui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// FileListEditor edits the value of a multi-file argument: paths are typed
// or browsed for and shown as removable chips.
type FileListEditor struct {
	widget.BaseWidget

	items     []string
	onChanged func([]string)

	entry     *widget.Entry
	browseBtn *widget.Button
	addBtn    *widget.Button
	clearBtn  *widget.Button
	chips     *fyne.Container
}

// NewFileListEditor creates an editor holding items. browse, when non-nil,
// is called by the Browse button and hands a picked path back to add.
func NewFileListEditor(placeholder string, items []string, browse func(add func(string)), onChanged func([]string)) *FileListEditor {
	e := &FileListEditor{
		items:     append([]string{}, items...),
		onChanged: onChanged,
	}
	e.ExtendBaseWidget(e)

	e.entry = widget.NewEntry()
	e.entry.SetPlaceHolder(placeholder)
	e.entry.OnSubmitted = func(text string) {
		e.Add(text)
	}

	e.browseBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		if browse != nil {
			browse(e.Add)
		}
	})
	if browse == nil {
		e.browseBtn.Hide()
	}

	e.addBtn = widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), func() {
		e.Add(e.entry.Text)
	})
	e.addBtn.Importance = widget.HighImportance

	e.clearBtn = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), e.Clear)
	e.clearBtn.Importance = widget.DangerImportance

	e.chips = container.New(layout.NewGridWrapLayout(fyne.NewSize(160, 36)))
	e.refreshChips()

	return e
}

func (e *FileListEditor) CreateRenderer() fyne.WidgetRenderer {
	buttons := container.NewHBox(e.browseBtn, e.addBtn, e.clearBtn)
	row := container.NewBorder(nil, nil, nil, buttons, e.entry)
	return widget.NewSimpleRenderer(container.NewVBox(row, e.chips))
}

// Add appends a trimmed, non-empty item that is not yet in the list.
func (e *FileListEditor) Add(item string) {
	item = strings.TrimSpace(item)
	e.entry.SetText("")
	if item == "" {
		return
	}
	for _, existing := range e.items {
		if existing == item {
			return
		}
	}

	e.items = append(e.items, item)
	e.changed()
}

func (e *FileListEditor) Remove(item string) {
	kept := make([]string, 0, len(e.items))
	for _, existing := range e.items {
		if existing != item {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(e.items) {
		return
	}
	e.items = kept
	e.changed()
}

func (e *FileListEditor) Clear() {
	if len(e.items) == 0 {
		return
	}
	e.items = nil
	e.changed()
}

// SetItems replaces the list without calling onChanged.
func (e *FileListEditor) SetItems(items []string) {
	e.items = append([]string{}, items...)
	e.refreshChips()
}

func (e *FileListEditor) Items() []string {
	return append([]string{}, e.items...)
}

// Disable greys out every control; used for inactive mutex group members.
func (e *FileListEditor) Disable() {
	e.entry.Disable()
	e.browseBtn.Disable()
	e.addBtn.Disable()
	e.clearBtn.Disable()
}

func (e *FileListEditor) Enable() {
	e.entry.Enable()
	e.browseBtn.Enable()
	e.addBtn.Enable()
	e.clearBtn.Enable()
}

func (e *FileListEditor) changed() {
	e.refreshChips()
	if e.onChanged != nil {
		e.onChanged(e.Items())
	}
}

func (e *FileListEditor) refreshChips() {
	e.chips.RemoveAll()
	for _, item := range e.items {
		item := item
		e.chips.Add(NewTagChip(item, func() { e.Remove(item) }))
	}
	e.chips.Refresh()
}
