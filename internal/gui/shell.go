package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
)

// Title is shown in the header bar and the window title
const Title = "Local Language Translator"

// Shell is the page chrome: a header bar with the title, the page
// content below it and a single toaster layered over both. It holds no
// translation state.
type Shell struct {
	Toaster *Toaster

	header  fyne.CanvasObject
	content fyne.CanvasObject
	root    *fyne.Container
}

// NewShell wraps content in the header bar and mounts toaster on top
func NewShell(content fyne.CanvasObject, toaster *Toaster) *Shell {
	title := canvas.NewText(Title, color.White)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = theme.Size(theme.SizeNameHeadingText)

	bar := canvas.NewRectangle(PrimaryColor)
	header := container.NewStack(bar, container.NewPadded(container.NewPadded(title)))

	s := &Shell{
		Toaster: toaster,
		header:  header,
		content: content,
	}
	s.root = container.NewStack(
		container.NewBorder(header, nil, nil, nil, container.NewPadded(content)),
		container.NewPadded(toaster),
	)
	return s
}

// Content returns the object to set as window content
func (s *Shell) Content() fyne.CanvasObject {
	return s.root
}
