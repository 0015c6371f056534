package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
)

func newModelsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestCatalog_NoAPIKey(t *testing.T) {
	_, err := NewLister("", "").Catalog(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	expectedError := "OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .localtranslator.yaml"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got: %v", expectedError, err)
	}
}

func TestCatalog(t *testing.T) {
	srv := newModelsServer(t, http.StatusOK, `{"object":"list","data":[
		{"id":"tts-1-hd","object":"model"},
		{"id":"gpt-4o-mini","object":"model"},
		{"id":"dall-e-3","object":"model"},
		{"id":"gpt-4o-mini-tts","object":"model"},
		{"id":"gpt-4o-audio-preview","object":"model"},
		{"id":"gpt-4.1","object":"model"},
		{"id":"whisper-1","object":"model"}
	]}`)

	catalog, err := NewLister("k", srv.URL).Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	if want := []string{"gpt-4o-mini-tts", "tts-1-hd"}; !reflect.DeepEqual(catalog.Speech, want) {
		t.Errorf("Speech = %v, want %v", catalog.Speech, want)
	}
	if want := []string{"gpt-4.1", "gpt-4o-mini"}; !reflect.DeepEqual(catalog.Chat, want) {
		t.Errorf("Chat = %v, want %v", catalog.Chat, want)
	}
}

func TestCatalog_APIError(t *testing.T) {
	srv := newModelsServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)

	_, err := NewLister("k", srv.URL).Catalog(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to list models") {
		t.Errorf("Catalog() error = %v", err)
	}
}

func TestCatalogPrint(t *testing.T) {
	var buf bytes.Buffer
	(&Catalog{Chat: []string{"gpt-4o-mini"}}).Print(&buf)

	out := buf.String()
	for _, want := range []string{"No TTS models found", "  gpt-4o-mini\n", "--openai-model"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalog_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	if _, err := NewLister(apiKey, "").Catalog(context.Background()); err != nil {
		t.Errorf("Catalog failed: %v", err)
	}
}
