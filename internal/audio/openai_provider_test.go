package audio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

func newSpeechServer(t *testing.T, status int, body []byte, gotReq *map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/speech") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if gotReq != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, gotReq)
		}
		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewOpenAISynthesizerDefaults(t *testing.T) {
	s, err := NewOpenAISynthesizer(&Config{OpenAIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAISynthesizer() error = %v", err)
	}
	if s.config.OpenAIModel != "gpt-4o-mini-tts" || s.config.OpenAIVoice != "nova" || s.config.OpenAISpeed != 1.0 {
		t.Errorf("defaults not applied: %+v", s.config)
	}
	if err := s.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v", err)
	}
}

func TestNewOpenAISynthesizerNoKey(t *testing.T) {
	if _, err := NewOpenAISynthesizer(&Config{}); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestOpenAISynthesize(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x00, 0x42}
	var req map[string]any
	srv := newSpeechServer(t, http.StatusOK, mp3, &req)

	s, err := NewOpenAISynthesizer(&Config{
		OpenAIKey:         "test-key",
		OpenAIBaseURL:     srv.URL + "/v1",
		OpenAIInstruction: "Speak %s like a native %s speaker.",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Synthesize(context.Background(), "  வணக்கம்  ", languages.Tamil)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !bytes.Equal(got, mp3) {
		t.Errorf("Synthesize() = %v, want %v", got, mp3)
	}

	if req["input"] != "வணக்கம்" {
		t.Errorf("input = %v, want trimmed text", req["input"])
	}
	if req["voice"] != "nova" {
		t.Errorf("voice = %v", req["voice"])
	}
	if req["response_format"] != "mp3" {
		t.Errorf("response_format = %v", req["response_format"])
	}
	if req["instructions"] != "Speak Tamil like a native Tamil speaker." {
		t.Errorf("instructions = %v", req["instructions"])
	}
}

func TestOpenAISynthesizeErrors(t *testing.T) {
	srv := newSpeechServer(t, http.StatusInternalServerError, nil, nil)
	s, err := NewOpenAISynthesizer(&Config{OpenAIKey: "k", OpenAIBaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		text string
		lang languages.Language
	}{
		{"empty text", "   ", languages.Hindi},
		{"no language", "hello", languages.Language{}},
		{"api failure", "hello", languages.Hindi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Synthesize(context.Background(), tt.text, tt.lang); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOpenAISynthesizeEmptyBody(t *testing.T) {
	srv := newSpeechServer(t, http.StatusOK, nil, nil)
	s, _ := NewOpenAISynthesizer(&Config{OpenAIKey: "k", OpenAIBaseURL: srv.URL + "/v1"})

	_, err := s.Synthesize(context.Background(), "hello", languages.Telugu)
	if err == nil || !strings.Contains(err.Error(), "no audio data") {
		t.Errorf("expected no audio data error, got %v", err)
	}
}

func TestInstructionFor(t *testing.T) {
	s, _ := NewOpenAISynthesizer(&Config{OpenAIKey: "k", OpenAIInstruction: "plain"})
	if got := s.instructionFor(languages.Hindi); got != "plain" {
		t.Errorf("instructionFor() = %q", got)
	}
}
