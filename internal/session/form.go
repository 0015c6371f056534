package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/api"
	"codeberg.org/snonux/localtranslator/internal/audio"
	"codeberg.org/snonux/localtranslator/internal/languages"
)

// Validation errors. Their text is shown to the user as is.
var (
	ErrEmptyInput     = errors.New("Please enter some text to translate")
	ErrNothingToSpeak = errors.New("Please translate text first")
	ErrClosed         = errors.New("session closed")
)

// Notification texts
const (
	MsgTranslateDone   = "Translation completed!"
	MsgTranslateFailed = "Translation failed. Please try again."
	MsgSpeakDone       = "Audio generated!"
	MsgSpeakFailed     = "Failed to generate audio. Please try again."
	MsgCombinedDone    = "Translation and audio generation completed!"
	MsgCombinedFailed  = "Operation failed. Please try again."
)

// Service is the remote translation API as seen by the form
type Service interface {
	Translate(ctx context.Context, text string, lang languages.Language) (*api.TranslateResponse, error)
	TextToSpeech(ctx context.Context, text string, lang languages.Language) ([]byte, error)
	TranslateAndSpeak(ctx context.Context, text string, lang languages.Language) (*api.TranslateAndSpeakResult, error)
}

// Snapshot is a point in time copy of the form state
type Snapshot struct {
	InputText      string
	TargetLanguage languages.Language
	TranslatedText string
	Audio          *audio.Handle
	Loading        bool
}

// Form owns the session state and runs the user operations against a
// Service. Operations block until their request completes and may be
// called from any goroutine; overlapping operations are allowed and the
// last one to finish wins for each field it writes.
type Form struct {
	svc      Service
	notify   Notifier
	log      *zap.Logger
	audioDir string

	mu         sync.Mutex
	input      string
	target     languages.Language
	translated string
	audio      *audio.Handle
	inFlight   int
	closed     bool
	observers  []func(Snapshot)
}

// Option configures a Form
type Option func(*Form)

// WithNotifier sets where success and error messages go
func WithNotifier(n Notifier) Option {
	return func(f *Form) {
		if n != nil {
			f.notify = n
		}
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(log *zap.Logger) Option {
	return func(f *Form) {
		if log != nil {
			f.log = log
		}
	}
}

// WithAudioDir sets the directory audio handles are written to
func WithAudioDir(dir string) Option {
	return func(f *Form) { f.audioDir = dir }
}

// WithLanguage overrides the initial target language
func WithLanguage(lang languages.Language) Option {
	return func(f *Form) {
		if !lang.IsZero() {
			f.target = lang
		}
	}
}

// NewForm creates a form with default state: first language selected,
// all text empty, no audio, not loading.
func NewForm(svc Service, opts ...Option) *Form {
	f := &Form{
		svc:    svc,
		notify: NopNotifier{},
		log:    zap.NewNop(),
		target: languages.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.Named("form")
	return f
}

// Subscribe registers fn to be called with a snapshot after every state change
func (f *Form) Subscribe(fn func(Snapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, fn)
}

// Snapshot returns the current state
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Loading reports whether any request is in flight
func (f *Form) Loading() bool {
	return f.Snapshot().Loading
}

// SetInputText replaces the English input text
func (f *Form) SetInputText(text string) {
	f.update(func() { f.input = text })
}

// SetTranslatedText replaces the text Speak synthesizes, for callers that
// already hold a translation
func (f *Form) SetTranslatedText(text string) {
	f.update(func() { f.translated = text })
}

// SetTargetLanguage changes the target language
func (f *Form) SetTargetLanguage(lang languages.Language) {
	if lang.IsZero() {
		return
	}
	f.update(func() { f.target = lang })
}

// Translate sends the input text to the translation endpoint and
// replaces the translated text on success.
func (f *Form) Translate(ctx context.Context) (string, error) {
	text, lang, err := f.prepare(func() string { return f.input }, ErrEmptyInput)
	if err != nil {
		return "", err
	}

	resp, err := f.svc.Translate(ctx, text, lang)
	if err != nil {
		f.fail("translate", err, MsgTranslateFailed)
		return "", fmt.Errorf("translate: %w", err)
	}

	f.finish(func() { f.translated = resp.TranslatedText })
	f.notify.Success(MsgTranslateDone)
	return resp.TranslatedText, nil
}

// Speak synthesizes audio for the translated text and installs it as
// the current audio handle, releasing the previous one.
func (f *Form) Speak(ctx context.Context) (*audio.Handle, error) {
	text, lang, err := f.prepare(func() string { return f.translated }, ErrNothingToSpeak)
	if err != nil {
		return nil, err
	}

	data, err := f.svc.TextToSpeech(ctx, text, lang)
	if err == nil {
		var h *audio.Handle
		if h, err = audio.NewHandle(data, f.audioDir); err == nil {
			if !f.finishWithAudio(h, nil) {
				return nil, ErrClosed
			}
			f.notify.Success(MsgSpeakDone)
			return h, nil
		}
	}

	f.fail("speak", err, MsgSpeakFailed)
	return nil, fmt.Errorf("speak: %w", err)
}

// TranslateAndSpeak runs the combined endpoint. Translated text and
// audio are replaced together or not at all.
func (f *Form) TranslateAndSpeak(ctx context.Context) (string, *audio.Handle, error) {
	text, lang, err := f.prepare(func() string { return f.input }, ErrEmptyInput)
	if err != nil {
		return "", nil, err
	}

	res, err := f.svc.TranslateAndSpeak(ctx, text, lang)
	if err == nil {
		var h *audio.Handle
		if h, err = audio.NewHandle(res.Audio, f.audioDir); err == nil {
			translated := res.TranslatedText
			if !f.finishWithAudio(h, func() { f.translated = translated }) {
				return "", nil, ErrClosed
			}
			f.notify.Success(MsgCombinedDone)
			return translated, h, nil
		}
	}

	f.fail("translate-and-speak", err, MsgCombinedFailed)
	return "", nil, fmt.Errorf("translate and speak: %w", err)
}

// Close ends the session and releases the held audio handle
func (f *Form) Close() error {
	f.mu.Lock()
	h := f.audio
	f.audio = nil
	f.closed = true
	f.mu.Unlock()

	if h != nil {
		return h.Release()
	}
	return nil
}

// prepare validates the operation input and marks a request in flight.
// The text is sent untrimmed; trimming only decides emptiness.
func (f *Form) prepare(field func() string, empty error) (string, languages.Language, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return "", languages.Language{}, ErrClosed
	}
	text := field()
	lang := f.target
	if strings.TrimSpace(text) == "" {
		f.mu.Unlock()
		f.notify.Error(empty.Error())
		return "", languages.Language{}, empty
	}
	f.inFlight++
	snap := f.snapshotLocked()
	observers := f.observers
	f.mu.Unlock()

	publish(observers, snap)
	return text, lang, nil
}

// finish applies mutate and clears this request's loading state
func (f *Form) finish(mutate func()) {
	f.update(func() {
		if mutate != nil {
			mutate()
		}
		f.inFlight--
	})
}

// fail logs the error, ends the request without mutating and notifies
func (f *Form) fail(op string, err error, fallback string) {
	f.log.Warn("operation failed", zap.String("op", op), zap.Error(err))
	f.finish(nil)
	f.notify.Error(api.Message(err, fallback))
}

// finishWithAudio installs h, releasing the previous handle before the
// new one becomes visible. It reports false when the session was closed
// in the meantime, in which case h is released instead.
func (f *Form) finishWithAudio(h *audio.Handle, mutate func()) bool {
	f.mu.Lock()
	f.inFlight--
	if f.closed {
		f.mu.Unlock()
		h.Release()
		return false
	}

	if f.audio != nil {
		if err := f.audio.Release(); err != nil {
			f.log.Warn("failed to release audio", zap.String("id", f.audio.ID()), zap.Error(err))
		}
	}
	f.audio = h
	if mutate != nil {
		mutate()
	}
	snap := f.snapshotLocked()
	observers := f.observers
	f.mu.Unlock()

	publish(observers, snap)
	return true
}

func (f *Form) update(mutate func()) {
	f.mu.Lock()
	mutate()
	snap := f.snapshotLocked()
	observers := f.observers
	f.mu.Unlock()

	publish(observers, snap)
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		InputText:      f.input,
		TargetLanguage: f.target,
		TranslatedText: f.translated,
		Audio:          f.audio,
		Loading:        f.inFlight > 0,
	}
}

func publish(observers []func(Snapshot), snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}
