package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Brand colors
var (
	PrimaryColor   = color.NRGBA{R: 0x19, G: 0x76, B: 0xd2, A: 0xff} // #1976d2
	SecondaryColor = color.NRGBA{R: 0xdc, G: 0x00, B: 0x4e, A: 0xff} // #dc004e
	SuccessColor   = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
)

// TranslatorTheme is the default theme with the translator's brand colors
type TranslatorTheme struct{}

// NewTranslatorTheme creates the application theme
func NewTranslatorTheme() fyne.Theme {
	return &TranslatorTheme{}
}

// Color returns theme colors
func (t *TranslatorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return PrimaryColor
	case theme.ColorNameError:
		return SecondaryColor
	case theme.ColorNameSuccess:
		return SuccessColor
	case theme.ColorNameFocus:
		return color.NRGBA{R: PrimaryColor.R, G: PrimaryColor.G, B: PrimaryColor.B, A: 0x7f}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *TranslatorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *TranslatorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *TranslatorTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameHeadingText {
		return 20
	}
	return theme.DefaultTheme().Size(name)
}
