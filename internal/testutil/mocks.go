package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

// MockTranslator mocks translation service
type MockTranslator struct {
	Translations map[string]string
	Err          error

	mu    sync.Mutex
	Calls []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text string, target languages.Language) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("Translate: %s (en->%s)", text, target.ID()))
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("[%s] %s", target.ID(), text), nil
}

// Name returns the mock name
func (m *MockTranslator) Name() string { return "mock" }

// MockSynthesizer mocks a text-to-speech provider
type MockSynthesizer struct {
	Audio []byte
	Err   error

	mu    sync.Mutex
	Calls []string
}

// Synthesize mocks speech synthesis
func (m *MockSynthesizer) Synthesize(ctx context.Context, text string, lang languages.Language) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("TTS: %s (%s)", text, lang.ID()))
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Audio != nil {
		return m.Audio, nil
	}
	return MP3Data(), nil
}

// Name returns the mock name
func (m *MockSynthesizer) Name() string { return "mock" }

// IsAvailable always succeeds
func (m *MockSynthesizer) IsAvailable() error { return nil }
