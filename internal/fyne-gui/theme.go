package fynegui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	ThemeModern  = "Modern"
	ThemeCompact = "Compact"
)

// ThemeNames lists the selectable themes in display order.
func ThemeNames() []string {
	return []string{ThemeModern, ThemeCompact}
}

var darkPalette = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      color.RGBA{R: 26, G: 27, B: 38, A: 255},
	theme.ColorNameForeground:      color.RGBA{R: 248, G: 248, B: 242, A: 255},
	theme.ColorNameButton:          color.RGBA{R: 55, G: 65, B: 81, A: 255},
	theme.ColorNamePrimary:         color.RGBA{R: 88, G: 101, B: 242, A: 255},
	theme.ColorNameHover:           color.RGBA{R: 67, G: 80, B: 200, A: 255},
	theme.ColorNameFocus:           color.RGBA{R: 99, G: 102, B: 241, A: 255},
	theme.ColorNameSelection:       color.RGBA{R: 68, G: 71, B: 90, A: 200},
	theme.ColorNameError:           color.RGBA{R: 255, G: 85, B: 85, A: 255},
	theme.ColorNameSuccess:         color.RGBA{R: 80, G: 250, B: 123, A: 255},
	theme.ColorNameWarning:         color.RGBA{R: 255, G: 184, B: 108, A: 255},
	theme.ColorNameDisabled:        color.RGBA{R: 68, G: 71, B: 90, A: 128},
	theme.ColorNameInputBackground: color.RGBA{R: 40, G: 42, B: 54, A: 255},
	theme.ColorNamePlaceHolder:     color.RGBA{R: 98, G: 114, B: 164, A: 255},
	theme.ColorNameScrollBar:       color.RGBA{R: 68, G: 71, B: 90, A: 255},
	theme.ColorNameShadow:          color.RGBA{R: 0, G: 0, B: 0, A: 100},
}

var lightPalette = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      color.RGBA{R: 250, G: 250, B: 250, A: 255},
	theme.ColorNameForeground:      color.RGBA{R: 40, G: 42, B: 54, A: 255},
	theme.ColorNameButton:          color.RGBA{R: 248, G: 250, B: 252, A: 255},
	theme.ColorNamePrimary:         color.RGBA{R: 79, G: 70, B: 229, A: 255},
	theme.ColorNameHover:           color.RGBA{R: 67, G: 56, B: 202, A: 255},
	theme.ColorNameFocus:           color.RGBA{R: 88, G: 80, B: 236, A: 255},
	theme.ColorNameSelection:       color.RGBA{R: 189, G: 147, B: 249, A: 100},
	theme.ColorNameError:           color.RGBA{R: 220, G: 38, B: 38, A: 255},
	theme.ColorNameSuccess:         color.RGBA{R: 22, G: 163, B: 74, A: 255},
	theme.ColorNameWarning:         color.RGBA{R: 217, G: 119, B: 6, A: 255},
	theme.ColorNameDisabled:        color.RGBA{R: 200, G: 200, B: 200, A: 255},
	theme.ColorNameInputBackground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	theme.ColorNamePlaceHolder:     color.RGBA{R: 150, G: 150, B: 150, A: 255},
	theme.ColorNameScrollBar:       color.RGBA{R: 200, G: 200, B: 200, A: 255},
	theme.ColorNameShadow:          color.RGBA{R: 0, G: 0, B: 0, A: 50},
}

// ModernTheme ignores the system variant: the window's dark mode toggle
// decides which palette is used. Compact shrinks paddings and text for
// schemas with many arguments.
type ModernTheme struct {
	isDark  bool
	compact bool
}

// NewTheme returns the named theme; unknown names fall back to Modern.
func NewTheme(name string, dark bool) fyne.Theme {
	return &ModernTheme{isDark: dark, compact: name == ThemeCompact}
}

func NewModernTheme(dark bool) fyne.Theme {
	return NewTheme(ThemeModern, dark)
}

func (m *ModernTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	palette, variant := lightPalette, theme.VariantLight
	if m.isDark {
		palette, variant = darkPalette, theme.VariantDark
	}
	if c, ok := palette[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m *ModernTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m *ModernTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m *ModernTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		if m.compact {
			return 4
		}
		return 8
	case theme.SizeNameInnerPadding:
		if m.compact {
			return 5
		}
		return theme.DefaultTheme().Size(name)
	case theme.SizeNameInlineIcon:
		if m.compact {
			return 16
		}
		return 20
	case theme.SizeNameScrollBar:
		return 16
	case theme.SizeNameScrollBarSmall:
		return 3
	case theme.SizeNameSeparatorThickness:
		return 1
	case theme.SizeNameText:
		if m.compact {
			return 12
		}
		return 14
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInputBorder:
		return 2
	}
	return theme.DefaultTheme().Size(name)
}
