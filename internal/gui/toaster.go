package gui

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DefaultToastDuration is how long a toast stays visible
const DefaultToastDuration = 4 * time.Second

// MaxToasts is the number of toasts shown at once; older ones are evicted
const MaxToasts = 5

// ToastKind distinguishes success from error toasts
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastError:
		return "error"
	default:
		return "unknown"
	}
}

// Toast is a single transient notification
type Toast struct {
	ID      int
	Kind    ToastKind
	Message string
}

// Toaster shows transient notifications stacked in the top right corner,
// newest on top. It is safe to use from any goroutine.
type Toaster struct {
	widget.BaseWidget

	box      *fyne.Container
	duration time.Duration

	mu     sync.Mutex
	toasts []Toast // newest first
	timers map[int]*time.Timer
	nextID int
}

// NewToaster creates a toaster. A non-positive duration uses the default.
func NewToaster(duration time.Duration) *Toaster {
	if duration <= 0 {
		duration = DefaultToastDuration
	}

	t := &Toaster{
		box:      container.NewVBox(),
		duration: duration,
		timers:   make(map[int]*time.Timer),
		nextID:   1,
	}
	t.ExtendBaseWidget(t)
	return t
}

// CreateRenderer implements fyne.Widget
func (t *Toaster) CreateRenderer() fyne.WidgetRenderer {
	overlay := container.NewBorder(
		container.NewHBox(layout.NewSpacer(), t.box),
		nil, nil, nil,
	)
	return widget.NewSimpleRenderer(overlay)
}

// Success shows a success toast
func (t *Toaster) Success(msg string) {
	t.push(ToastSuccess, msg)
}

// Error shows an error toast
func (t *Toaster) Error(msg string) {
	t.push(ToastError, msg)
}

// Toasts returns the visible toasts, newest first
func (t *Toaster) Toasts() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.toasts...)
}

// Dismiss removes the toast with the given ID
func (t *Toaster) Dismiss(id int) {
	t.mu.Lock()
	removed := t.removeLocked(id)
	t.mu.Unlock()

	if removed {
		fyne.Do(t.render)
	}
}

// Stop cancels all pending dismiss timers and clears the toasts
func (t *Toaster) Stop() {
	t.mu.Lock()
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	t.toasts = nil
	t.mu.Unlock()
}

func (t *Toaster) push(kind ToastKind, msg string) {
	t.mu.Lock()
	toast := Toast{ID: t.nextID, Kind: kind, Message: msg}
	t.nextID++

	t.toasts = append([]Toast{toast}, t.toasts...)
	for len(t.toasts) > MaxToasts {
		t.removeLocked(t.toasts[len(t.toasts)-1].ID)
	}
	t.timers[toast.ID] = time.AfterFunc(t.duration, func() { t.Dismiss(toast.ID) })
	t.mu.Unlock()

	fyne.Do(t.render)
}

func (t *Toaster) removeLocked(id int) bool {
	if timer, ok := t.timers[id]; ok {
		timer.Stop()
		delete(t.timers, id)
	}
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// render rebuilds the toast stack; must run on the UI goroutine
func (t *Toaster) render() {
	toasts := t.Toasts()

	objects := make([]fyne.CanvasObject, 0, len(toasts))
	for _, toast := range toasts {
		objects = append(objects, t.card(toast))
	}
	t.box.Objects = objects
	t.box.Refresh()
}

func (t *Toaster) card(toast Toast) fyne.CanvasObject {
	var bg color.Color = SuccessColor
	icon := theme.ConfirmIcon()
	if toast.Kind == ToastError {
		bg = SecondaryColor
		icon = theme.ErrorIcon()
	}

	rect := canvas.NewRectangle(bg)
	rect.CornerRadius = theme.InputRadiusSize()

	text := canvas.NewText(toast.Message, color.White)
	text.TextStyle = fyne.TextStyle{Bold: true}

	id := toast.ID
	closeBtn := widget.NewButtonWithIcon("", theme.CancelIcon(), func() { t.Dismiss(id) })
	closeBtn.Importance = widget.LowImportance

	row := container.NewHBox(widget.NewIcon(theme.NewInvertedThemedResource(icon)), text, closeBtn)
	return container.NewStack(rect, container.NewPadded(row))
}
