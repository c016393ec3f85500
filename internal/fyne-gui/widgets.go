package fynegui

import (
	"image/color"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	toggleOnColor  = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	toggleOffColor = color.RGBA{R: 156, G: 163, B: 175, A: 255}
	chipColor      = color.RGBA{R: 107, G: 114, B: 128, A: 40}
	chipHoverColor = color.RGBA{R: 107, G: 114, B: 128, A: 60}
)

// ToggleSwitch is a sliding on/off switch.
type ToggleSwitch struct {
	widget.BaseWidget

	OnChanged func(bool)
	Checked   bool
	Text      string

	background *canvas.Rectangle
	handle     *canvas.Circle
	animation  *fyne.Animation
}

func NewToggleSwitch(text string, changed func(bool)) *ToggleSwitch {
	t := &ToggleSwitch{
		Text:      text,
		OnChanged: changed,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *ToggleSwitch) CreateRenderer() fyne.WidgetRenderer {
	t.background = canvas.NewRectangle(toggleOffColor)
	t.background.CornerRadius = 9
	t.handle = canvas.NewCircle(color.White)

	return &toggleSwitchRenderer{
		toggle:  t,
		objects: []fyne.CanvasObject{t.background, t.handle},
	}
}

func (t *ToggleSwitch) Tapped(_ *fyne.PointEvent) {
	t.SetChecked(!t.Checked)
}

// SetChecked changes the state, animating the handle once the switch is rendered.
func (t *ToggleSwitch) SetChecked(checked bool) {
	if t.Checked == checked {
		return
	}
	t.Checked = checked

	if t.handle != nil {
		t.slide(checked)
	}
	if t.OnChanged != nil {
		t.OnChanged(checked)
	}
}

func (t *ToggleSwitch) slide(checked bool) {
	startX := t.handle.Position().X
	endX, fill := float32(2), toggleOffColor
	if checked {
		endX, fill = 20, toggleOnColor
	}
	t.background.FillColor = fill

	if t.animation != nil {
		t.animation.Stop()
	}
	t.animation = fyne.NewAnimation(200*time.Millisecond, func(progress float32) {
		t.handle.Move(fyne.NewPos(startX+(endX-startX)*progress, 2))
		t.background.Refresh()
		t.handle.Refresh()
	})
	t.animation.Curve = fyne.AnimationEaseInOut
	t.animation.Start()
}

type toggleSwitchRenderer struct {
	toggle  *ToggleSwitch
	objects []fyne.CanvasObject
}

func (r *toggleSwitchRenderer) Layout(size fyne.Size) {
	r.toggle.background.Resize(fyne.NewSize(36, 18))
	r.toggle.handle.Resize(fyne.NewSize(14, 14))
	r.Refresh()
}

func (r *toggleSwitchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(36, 18)
}

func (r *toggleSwitchRenderer) Refresh() {
	if r.toggle.Checked {
		r.toggle.background.FillColor = toggleOnColor
		r.toggle.handle.Move(fyne.NewPos(20, 2))
	} else {
		r.toggle.background.FillColor = toggleOffColor
		r.toggle.handle.Move(fyne.NewPos(2, 2))
	}
	r.toggle.background.Refresh()
}

func (r *toggleSwitchRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *toggleSwitchRenderer) Destroy() {}

type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

func (k ToastKind) style() (fyne.Resource, color.Color) {
	switch k {
	case ToastSuccess:
		return theme.ConfirmIcon(), color.RGBA{R: 34, G: 197, B: 94, A: 240}
	case ToastWarning:
		return theme.WarningIcon(), color.RGBA{R: 255, G: 184, B: 108, A: 240}
	case ToastError:
		return theme.ErrorIcon(), color.RGBA{R: 255, G: 85, B: 85, A: 240}
	default:
		return theme.InfoIcon(), color.RGBA{R: 98, G: 114, B: 164, A: 240}
	}
}

// ShowToast slides a short message in at the top of window and removes it
// after a delay or when tapped. Must be called on the fyne goroutine.
func ShowToast(window fyne.Window, message string, kind ToastKind) {
	if window == nil {
		return
	}
	icon, fill := kind.style()

	label := widget.NewLabel(message)
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Truncation = fyne.TextTruncateEllipsis

	bg := canvas.NewRectangle(fill)
	bg.CornerRadius = 8

	var overlay *fyne.Container
	dismiss := widget.NewButton("", func() {
		window.Canvas().Overlays().Remove(overlay)
	})
	dismiss.Importance = widget.LowImportance

	toast := container.NewStack(
		bg,
		container.NewPadded(container.NewBorder(nil, nil, widget.NewIcon(icon), nil, label)),
		dismiss,
	)
	overlay = container.NewWithoutLayout(toast)

	size := fyne.NewSize(320, 60)
	x := (window.Canvas().Size().Width - size.Width) / 2
	shownY, hiddenY := float32(20), -size.Height
	toast.Resize(size)
	toast.Move(fyne.NewPos(x, hiddenY))
	window.Canvas().Overlays().Add(overlay)

	slideIn := fyne.NewAnimation(250*time.Millisecond, func(p float32) {
		toast.Move(fyne.NewPos(x, hiddenY+(shownY-hiddenY)*p))
	})
	slideIn.Curve = fyne.AnimationEaseOut
	slideIn.Start()

	time.AfterFunc(2*time.Second, func() {
		fyne.Do(func() {
			slideOut := fyne.NewAnimation(250*time.Millisecond, func(p float32) {
				toast.Move(fyne.NewPos(x, shownY-(shownY-hiddenY)*p))
				if p >= 1 {
					window.Canvas().Overlays().Remove(overlay)
				}
			})
			slideOut.Curve = fyne.AnimationEaseIn
			slideOut.Start()
		})
	})
}

// TagChip shows one list item with an optional remove button. Paths are
// shown by base name; the full value stays in Text.
type TagChip struct {
	widget.BaseWidget

	Text      string
	OnDeleted func()

	background *canvas.Rectangle
	label      *widget.Label
	deleteBtn  *widget.Button
}

func NewTagChip(text string, onDeleted func()) *TagChip {
	t := &TagChip{
		Text:      text,
		OnDeleted: onDeleted,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TagChip) CreateRenderer() fyne.WidgetRenderer {
	t.background = canvas.NewRectangle(chipColor)
	t.background.CornerRadius = 12

	t.label = widget.NewLabel(t.DisplayText())
	t.label.TextStyle = fyne.TextStyle{Bold: true}
	t.label.Truncation = fyne.TextTruncateEllipsis

	content := fyne.CanvasObject(t.label)
	if t.OnDeleted != nil {
		t.deleteBtn = widget.NewButtonWithIcon("", theme.CancelIcon(), t.OnDeleted)
		t.deleteBtn.Importance = widget.LowImportance
		content = container.New(layout.NewBorderLayout(nil, nil, nil, t.deleteBtn), t.label, t.deleteBtn)
	}

	return widget.NewSimpleRenderer(container.NewStack(t.background, container.NewPadded(content)))
}

// DisplayText is the label shown on the chip.
func (t *TagChip) DisplayText() string {
	if base := filepath.Base(t.Text); base != "." && base != string(filepath.Separator) {
		return base
	}
	return t.Text
}

func (t *TagChip) MouseIn(*desktop.MouseEvent) {
	t.background.FillColor = chipHoverColor
	t.background.Refresh()
}

func (t *TagChip) MouseOut() {
	t.background.FillColor = chipColor
	t.background.Refresh()
}

func (t *TagChip) MouseMoved(*desktop.MouseEvent) {}
