package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// TextInput is a multi-line entry that reports Escape and Ctrl+Enter
type TextInput struct {
	widget.Entry
	onEscape func()
	onSubmit func()
}

// NewTextInput creates a new multi-line input with word wrapping
func NewTextInput() *TextInput {
	entry := &TextInput{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *TextInput) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// TypedShortcut submits on Ctrl+Enter and defers everything else to the entry
func (e *TextInput) TypedShortcut(s fyne.Shortcut) {
	if ks, ok := s.(*desktop.CustomShortcut); ok && e.onSubmit != nil {
		if (ks.KeyName == fyne.KeyReturn || ks.KeyName == fyne.KeyEnter) && ks.Modifier == fyne.KeyModifierShortcutDefault {
			e.onSubmit()
			return
		}
	}
	e.Entry.TypedShortcut(s)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *TextInput) SetOnEscape(f func()) {
	e.onEscape = f
}

// SetOnSubmit sets the callback for Ctrl+Enter
func (e *TextInput) SetOnSubmit(f func()) {
	e.onSubmit = f
}
