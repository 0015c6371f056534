package gui

import (
	"context"
	"testing"

	"fyne.io/fyne/v2/test"

	"codeberg.org/snonux/localtranslator/internal/api"
	"codeberg.org/snonux/localtranslator/internal/languages"
	"codeberg.org/snonux/localtranslator/internal/session"
	"codeberg.org/snonux/localtranslator/internal/testutil"
)

func newTestView(t *testing.T) (*TranslatorForm, *session.Form, *testutil.FakeAPI, *Toaster) {
	t.Helper()
	test.NewApp()

	fake := testutil.NewFakeAPI(t)
	toaster := NewToaster(0)
	t.Cleanup(toaster.Stop)

	form := session.NewForm(api.New(fake.URL()),
		session.WithNotifier(toaster),
		session.WithAudioDir(t.TempDir()),
	)
	t.Cleanup(func() { form.Close() })

	view := NewTranslatorForm(context.Background(), form, nil)
	t.Cleanup(view.Player().Clear)
	test.NewWindow(view)
	return view, form, fake, toaster
}

func TestTranslatorFormInitialState(t *testing.T) {
	view, _, _, _ := newTestView(t)

	if view.languageSelect.Selected != "Tamil" {
		t.Errorf("selected language = %q, want Tamil", view.languageSelect.Selected)
	}
	if len(view.languageSelect.Options) != 3 {
		t.Errorf("options = %v", view.languageSelect.Options)
	}
	if view.resultCard.Visible() {
		t.Error("result card shown without a translation")
	}
	if view.translateBtn.Disabled() || view.progress.Visible() {
		t.Error("form should be idle")
	}
}

func TestTranslatorFormEditsFlowIntoSession(t *testing.T) {
	view, form, _, _ := newTestView(t)

	test.Type(view.input, "Hello")
	view.languageSelect.SetSelected("Hindi")

	snap := form.Snapshot()
	if snap.InputText != "Hello" {
		t.Errorf("InputText = %q", snap.InputText)
	}
	if snap.TargetLanguage != languages.Hindi {
		t.Errorf("TargetLanguage = %v", snap.TargetLanguage)
	}
}

func TestTranslatorFormTranslate(t *testing.T) {
	view, _, fake, toaster := newTestView(t)
	fake.Respond("/translate", testutil.FakeResponse{JSON: map[string]any{"translated_text": "வணக்கம்"}})

	test.Type(view.input, "Hello")
	test.Tap(view.translateBtn)
	view.Wait()

	if view.resultLabel.Text != "வணக்கம்" || !view.resultCard.Visible() {
		t.Errorf("result = %q visible=%v", view.resultLabel.Text, view.resultCard.Visible())
	}
	if view.translateBtn.Disabled() {
		t.Error("buttons still disabled after completion")
	}

	toasts := toaster.Toasts()
	if len(toasts) == 0 || toasts[0].Message != session.MsgTranslateDone {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestTranslatorFormEmptyInput(t *testing.T) {
	view, _, fake, toaster := newTestView(t)

	test.Type(view.input, "   ")
	test.Tap(view.translateSpeakBtn)
	view.Wait()

	if fake.TotalCalls() != 0 {
		t.Error("request sent for blank input")
	}
	toasts := toaster.Toasts()
	if len(toasts) != 1 || toasts[0].Kind != ToastError || toasts[0].Message != "Please enter some text to translate" {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestTranslatorFormSpeakLoadsPlayer(t *testing.T) {
	view, form, fake, _ := newTestView(t)
	fake.Respond("/translate", testutil.FakeResponse{JSON: map[string]any{"translated_text": "नमस्ते"}})
	fake.Respond("/text-to-speech", testutil.FakeResponse{Body: testutil.MP3Data(), ContentType: "audio/mpeg"})

	test.Type(view.input, "Hello")
	view.OnTranslate()
	view.Wait()
	view.OnSpeak()
	view.Wait()

	h := form.Snapshot().Audio
	if h == nil {
		t.Fatal("no audio handle")
	}
	if view.Player().Handle() != h {
		t.Error("player not showing the current handle")
	}
	if view.Player().playButton.Disabled() {
		t.Error("play button disabled with audio loaded")
	}
}

func TestTranslatorFormSecondSpeakSwapsPlayerAudio(t *testing.T) {
	view, form, fake, _ := newTestView(t)
	fake.Respond("/translate", testutil.FakeResponse{JSON: map[string]any{"translated_text": "नमस्ते"}})
	fake.Respond("/text-to-speech", testutil.FakeResponse{Body: testutil.MP3Data(), ContentType: "audio/mpeg"})

	test.Type(view.input, "Hello")
	view.OnTranslate()
	view.Wait()
	view.OnSpeak()
	view.Wait()
	first := form.Snapshot().Audio

	// the player keeps its own reference next to the form's
	if first.RefCount() != 2 {
		t.Errorf("first refcount = %d, want 2", first.RefCount())
	}

	view.OnSpeak()
	view.Wait()
	second := form.Snapshot().Audio

	if second == first {
		t.Fatal("second speak did not replace the audio")
	}
	if !first.Released() {
		t.Errorf("first refcount = %d, want released", first.RefCount())
	}
	testutil.AssertFileNotExists(t, first.Path())
	if view.Player().Handle() != second || second.RefCount() != 2 {
		t.Errorf("player handle = %v, second refcount = %d", view.Player().Handle(), second.RefCount())
	}
}

func TestTranslatorFormServerDetail(t *testing.T) {
	view, _, fake, toaster := newTestView(t)
	fake.Respond("/translate", testutil.FakeResponse{Status: 429, JSON: map[string]any{"detail": "rate limited"}})

	test.Type(view.input, "Hello")
	view.OnTranslate()
	view.Wait()

	toasts := toaster.Toasts()
	if len(toasts) != 1 || toasts[0].Message != "rate limited" {
		t.Errorf("toasts = %+v", toasts)
	}
	if view.resultCard.Visible() {
		t.Error("result card shown after failure")
	}
}
