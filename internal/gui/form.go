package gui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/languages"
	"codeberg.org/snonux/localtranslator/internal/session"
)

// TranslatorForm renders a session.Form: language picker, input text,
// the three action buttons, the translated text and the audio player.
// Button presses run the form operation on their own goroutine; state
// changes come back through the form's observer and are applied with
// fyne.Do.
type TranslatorForm struct {
	widget.BaseWidget

	form *session.Form
	ctx  context.Context
	log  *zap.Logger
	wg   sync.WaitGroup

	languageSelect    *widget.Select
	input             *TextInput
	translateBtn      *ttwidget.Button
	translateSpeakBtn *ttwidget.Button
	speakBtn          *ttwidget.Button
	progress          *widget.ProgressBarInfinite
	resultLabel       *widget.Label
	resultCard        *widget.Card
	player            *AudioPlayer

	container *fyne.Container
}

// NewTranslatorForm builds the form view. ctx bounds every request the
// view starts.
func NewTranslatorForm(ctx context.Context, form *session.Form, log *zap.Logger) *TranslatorForm {
	if log == nil {
		log = zap.NewNop()
	}
	v := &TranslatorForm{
		form: form,
		ctx:  ctx,
		log:  log.Named("view"),
	}

	v.languageSelect = widget.NewSelect(languages.DisplayNames(), func(name string) {
		if lang, ok := languages.ByDisplayName(name); ok {
			v.form.SetTargetLanguage(lang)
		}
	})

	v.input = NewTextInput()
	v.input.SetPlaceHolder("Enter English text to translate...")
	v.input.SetMinRowsVisible(5)
	v.input.SetText(form.Snapshot().InputText)
	v.input.OnChanged = func(text string) { v.form.SetInputText(text) }
	v.input.SetOnSubmit(v.OnTranslate)

	v.translateBtn = ttwidget.NewButton("Translate", v.OnTranslate)
	v.translateBtn.Icon = theme.ConfirmIcon()
	v.translateBtn.Importance = widget.HighImportance
	v.translateBtn.SetToolTip("Translate the text (Ctrl+Enter)")

	v.translateSpeakBtn = ttwidget.NewButton("Translate & Speak", v.OnTranslateAndSpeak)
	v.translateSpeakBtn.Icon = theme.VolumeUpIcon()
	v.translateSpeakBtn.SetToolTip("Translate and generate audio in one step")

	v.speakBtn = ttwidget.NewButton("Speak", v.OnSpeak)
	v.speakBtn.Icon = theme.MediaMusicIcon()
	v.speakBtn.SetToolTip("Generate audio for the translation")

	v.progress = widget.NewProgressBarInfinite()
	v.progress.Hide()

	v.resultLabel = widget.NewLabel("")
	v.resultLabel.Wrapping = fyne.TextWrapWord
	v.resultLabel.Selectable = true

	v.player = NewAudioPlayer(log)

	v.resultCard = widget.NewCard("Translation", "", container.NewVBox(
		v.resultLabel,
		container.NewHBox(v.speakBtn),
		v.player,
	))

	v.container = container.NewVBox(
		widget.NewLabel("Target language"),
		v.languageSelect,
		widget.NewLabel("English text"),
		v.input,
		container.NewHBox(v.translateBtn, v.translateSpeakBtn),
		v.progress,
		v.resultCard,
	)

	form.Subscribe(func(s session.Snapshot) {
		fyne.Do(func() { v.render(s) })
	})
	v.render(form.Snapshot())

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *TranslatorForm) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVScroll(v.container))
}

// OnTranslate handles the Translate button
func (v *TranslatorForm) OnTranslate() {
	v.run(func(ctx context.Context) { v.form.Translate(ctx) })
}

// OnSpeak handles the Speak button
func (v *TranslatorForm) OnSpeak() {
	v.run(func(ctx context.Context) { v.form.Speak(ctx) })
}

// OnTranslateAndSpeak handles the Translate & Speak button
func (v *TranslatorForm) OnTranslateAndSpeak() {
	v.run(func(ctx context.Context) { v.form.TranslateAndSpeak(ctx) })
}

// Player returns the audio player widget
func (v *TranslatorForm) Player() *AudioPlayer {
	return v.player
}

// Input returns the text input, e.g. to focus it
func (v *TranslatorForm) Input() *TextInput {
	return v.input
}

// Wait blocks until all operations started by the view have finished
func (v *TranslatorForm) Wait() {
	v.wg.Wait()
}

// run starts op off the UI goroutine. Errors have already been
// reported to the notifier by the form.
func (v *TranslatorForm) run(op func(ctx context.Context)) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		op(v.ctx)
	}()
}

// render applies a form snapshot; must run on the UI goroutine. The
// input entry is the source of its own text and is not overwritten.
func (v *TranslatorForm) render(s session.Snapshot) {
	if v.languageSelect.Selected != s.TargetLanguage.DisplayName() {
		v.languageSelect.SetSelected(s.TargetLanguage.DisplayName())
	}

	if s.Loading {
		v.translateBtn.Disable()
		v.translateSpeakBtn.Disable()
		v.speakBtn.Disable()
		v.progress.Show()
		v.progress.Start()
	} else {
		v.translateBtn.Enable()
		v.translateSpeakBtn.Enable()
		v.speakBtn.Enable()
		v.progress.Stop()
		v.progress.Hide()
	}

	if s.TranslatedText == "" {
		v.resultCard.Hide()
	} else {
		v.resultLabel.SetText(s.TranslatedText)
		v.resultCard.Show()
	}

	v.player.SetHandle(s.Audio)
}
