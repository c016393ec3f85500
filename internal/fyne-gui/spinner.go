package fynegui

import (
	"image/color"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const activityDots = 3

// ActivityIndicator is a row of bouncing dots shown in the status bar while
// the wrapped command runs.
type ActivityIndicator struct {
	widget.BaseWidget

	dots      []*canvas.Circle
	animation *fyne.Animation
	running   bool
	size      float32
}

func NewActivityIndicator() *ActivityIndicator {
	a := &ActivityIndicator{size: 24}
	a.ExtendBaseWidget(a)
	a.Hide()
	return a
}

func (a *ActivityIndicator) CreateRenderer() fyne.WidgetRenderer {
	a.dots = make([]*canvas.Circle, activityDots)
	objects := make([]fyne.CanvasObject, activityDots)

	radius := a.size / 10
	spacing := a.size / 3
	for i := range a.dots {
		dot := canvas.NewCircle(theme.Color(theme.ColorNamePrimary))
		dot.Resize(fyne.NewSize(radius*2, radius*2))
		dot.Move(fyne.NewPos(float32(i)*spacing+radius, a.size/2-radius))
		a.dots[i] = dot
		objects[i] = dot
	}

	return widget.NewSimpleRenderer(container.NewWithoutLayout(objects...))
}

func (a *ActivityIndicator) Start() {
	if a.running {
		return
	}
	a.running = true
	a.Show()

	a.animation = fyne.NewAnimation(900*time.Millisecond, func(progress float32) {
		if len(a.dots) == 0 {
			return
		}
		radius := a.size / 10
		for i, dot := range a.dots {
			phase := float64(progress)*2*math.Pi - float64(i)*math.Pi/3
			lift := float32(math.Max(0, math.Sin(phase))) * a.size / 4
			dot.Move(fyne.NewPos(dot.Position().X, a.size/2-radius-lift))
			dot.FillColor = fadeWithLift(theme.Color(theme.ColorNamePrimary), lift/(a.size/4))
			dot.Refresh()
		}
	})
	a.animation.RepeatCount = fyne.AnimationRepeatForever
	a.animation.Start()
}

func (a *ActivityIndicator) Stop() {
	a.running = false
	if a.animation != nil {
		a.animation.Stop()
		a.animation = nil
	}
	a.Hide()
}

func (a *ActivityIndicator) Running() bool {
	return a.running
}

func (a *ActivityIndicator) MinSize() fyne.Size {
	return fyne.NewSize(a.size, a.size)
}

// fadeWithLift makes a dot more opaque the higher it bounces.
func fadeWithLift(c color.Color, lift float32) color.Color {
	r, g, b, _ := c.RGBA()
	alpha := 120 + uint8(135*lift)
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
