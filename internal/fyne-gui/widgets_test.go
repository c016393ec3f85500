package fynegui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

func TestToggleSwitch_SetChecked(t *testing.T) {
	var calls []bool
	toggle := NewToggleSwitch("Dark mode", func(checked bool) {
		calls = append(calls, checked)
	})

	if toggle.Checked {
		t.Error("New toggle switch should start unchecked")
	}

	toggle.SetChecked(true)
	toggle.SetChecked(true)
	toggle.SetChecked(false)

	if len(calls) != 2 || !calls[0] || calls[1] {
		t.Errorf("Expected callbacks [true false], got %v", calls)
	}
}

func TestToggleSwitch_Tapped(t *testing.T) {
	test.NewApp()

	checked := false
	toggle := NewToggleSwitch("Dark mode", func(c bool) { checked = c })
	w := test.NewWindow(toggle)
	defer w.Close()

	test.Tap(toggle)
	if !toggle.Checked || !checked {
		t.Error("Tap should check the switch")
	}

	test.Tap(toggle)
	if toggle.Checked || checked {
		t.Error("Second tap should uncheck the switch")
	}
}

func TestTagChip_DisplayText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/home/user/report.pdf", "report.pdf"},
		{"notes.txt", "notes.txt"},
		{"/", "/"},
		{".", "."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			chip := NewTagChip(tt.text, nil)
			if got := chip.DisplayText(); got != tt.want {
				t.Errorf("DisplayText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTagChip_Delete(t *testing.T) {
	test.NewApp()

	deleted := false
	chip := NewTagChip("a.txt", func() { deleted = true })
	w := test.NewWindow(chip)
	defer w.Close()

	if chip.deleteBtn == nil {
		t.Fatal("Chip with a callback should render a delete button")
	}
	test.Tap(chip.deleteBtn)
	if !deleted {
		t.Error("Delete button should call OnDeleted")
	}
}

func TestTagChip_WithoutCallback(t *testing.T) {
	test.NewApp()

	chip := NewTagChip("a.txt", nil)
	w := test.NewWindow(chip)
	defer w.Close()

	if chip.deleteBtn != nil {
		t.Error("Chip without a callback should not render a delete button")
	}
}

func TestShowToast(t *testing.T) {
	test.NewApp()
	w := test.NewWindow(widget.NewLabel("content"))
	defer w.Close()
	w.Resize(fyne.NewSize(600, 400))

	kinds := []ToastKind{ToastInfo, ToastSuccess, ToastWarning, ToastError}
	for _, kind := range kinds {
		ShowToast(w, "hello", kind)
	}

	if got := len(w.Canvas().Overlays().List()); got != len(kinds) {
		t.Errorf("Expected %d overlays, got %d", len(kinds), got)
	}

	ShowToast(nil, "ignored", ToastInfo)
}

func TestToastKind_Style(t *testing.T) {
	seen := map[string]bool{}
	for _, kind := range []ToastKind{ToastInfo, ToastSuccess, ToastWarning, ToastError} {
		icon, fill := kind.style()
		if icon == nil || fill == nil {
			t.Fatalf("kind %d has no style", kind)
		}
		seen[icon.Name()] = true
	}
	if len(seen) != 4 {
		t.Errorf("Expected a distinct icon per kind, got %v", seen)
	}
}
