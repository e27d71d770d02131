package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// OverlayTheme strips the chrome from overlay windows: transparent
// background, compact paddings, otherwise default styling.
type OverlayTheme struct{}

// NewOverlayTheme creates a new overlay theme
func NewOverlayTheme() fyne.Theme {
	return &OverlayTheme{}
}

// Color returns theme colors
func (t *OverlayTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{R: 0, G: 0, B: 0, A: 0} // fully transparent
	case theme.ColorNameOverlayBackground:
		return color.RGBA{R: 30, G: 27, B: 25, A: 255} // settings panel backdrop
	case theme.ColorNameForeground:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *OverlayTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *OverlayTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *OverlayTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameInnerPadding:
		return 4
	case theme.SizeNameText:
		return 12
	}

	return theme.DefaultTheme().Size(name)
}
