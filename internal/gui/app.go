package gui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"codeberg.org/snonux/localtranslator/internal"
	"codeberg.org/snonux/localtranslator/internal/api"
	"codeberg.org/snonux/localtranslator/internal/languages"
	"codeberg.org/snonux/localtranslator/internal/session"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	shell     *Shell
	toaster   *Toaster
	view      *TranslatorForm
	logViewer *LogViewer

	// State
	form   *session.Form
	client *api.Client

	config *Config
	log    *zap.Logger

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds GUI application configuration
type Config struct {
	APIURL        string
	Timeout       time.Duration // 0 means no client timeout
	Language      languages.Language
	ToastDuration time.Duration
	AudioDir      string // temp dir when empty
	ShowLog       bool   // expand the log panel on start
	Logger        *zap.Logger
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		APIURL:        api.DefaultBaseURL,
		Language:      languages.Default(),
		ToastDuration: DefaultToastDuration,
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	return newWithApp(app.NewWithID("org.codeberg.snonux.localtranslator"), config)
}

func newWithApp(fyneApp fyne.App, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		// Fill in missing fields with defaults
		defaults := DefaultConfig()
		if config.APIURL == "" {
			config.APIURL = defaults.APIURL
		}
		if config.Language.IsZero() {
			config.Language = defaults.Language
		}
		if config.ToastDuration <= 0 {
			config.ToastDuration = defaults.ToastDuration
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	fyneApp.SetIcon(GetAppIcon())
	fyneApp.Settings().SetTheme(NewTranslatorTheme())

	a := &Application{
		app:       fyneApp,
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
		toaster:   NewToaster(config.ToastDuration),
		logViewer: NewLogViewer(),
	}

	// Everything logged also shows up in the log panel
	base := config.Logger
	if base == nil {
		base = zap.NewNop()
	}
	a.log = zap.New(zapcore.NewTee(base.Core(), a.logViewer.Core(zapcore.InfoLevel)))

	opts := []api.Option{api.WithLogger(a.log)}
	if config.Timeout > 0 {
		opts = append(opts, api.WithTimeout(config.Timeout))
	}
	a.client = api.New(config.APIURL, opts...)

	a.form = session.NewForm(a.client,
		session.WithNotifier(a.toaster),
		session.WithLogger(a.log),
		session.WithLanguage(config.Language),
		session.WithAudioDir(config.AudioDir),
	)

	a.setupUI()
	a.log.Info("translator ready", zap.String("api", a.client.BaseURL()))

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("%s v%s", Title, internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(720, 640))

	a.view = NewTranslatorForm(a.ctx, a.form, a.log)
	a.view.Input().SetOnEscape(func() { a.window.Canvas().Unfocus() })

	logItem := widget.NewAccordionItem("Log", a.logViewer)
	logItem.Open = a.config.ShowLog
	logPanel := widget.NewAccordion(logItem)

	a.shell = NewShell(container.NewBorder(nil, logPanel, nil, nil, a.view), a.toaster)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(a.shell.Content(), a.window.Canvas()))

	a.setupKeyboardShortcuts()

	a.window.SetOnClosed(a.shutdown)
}

func (a *Application) setupKeyboardShortcuts() {
	canvas := a.window.Canvas()

	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.view.OnTranslate() })
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { a.view.OnTranslateAndSpeak() })
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyP, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.view.Player().Play() })

	canvas.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			canvas.Unfocus()
		}
	})
}

// shutdown ends the session: pending requests are cancelled and the
// audio handle is released.
func (a *Application) shutdown() {
	a.cancel()
	a.view.Wait()
	a.view.Player().Clear()
	if err := a.form.Close(); err != nil {
		a.log.Warn("failed to release audio", zap.Error(err))
	}
	a.toaster.Stop()
	_ = a.log.Sync()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.Canvas().Focus(a.view.Input())
	a.window.ShowAndRun()
}

// Window returns the main window
func (a *Application) Window() fyne.Window { return a.window }

// Form returns the session form backing the window
func (a *Application) Form() *session.Form { return a.form }

// Toaster returns the notification surface
func (a *Application) Toaster() *Toaster { return a.toaster }

// View returns the translator form view
func (a *Application) View() *TranslatorForm { return a.view }
