package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

// DefaultBaseURL is where the translation service listens by default
const DefaultBaseURL = "http://localhost:8000/api/v1"

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 32 << 20

// Client talks to the translation service
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the client default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the service at baseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("api")

	return c
}

// BaseURL returns the service base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TranslateRequest is the body of POST /translate and /translate-and-speak
type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

// SpeechRequest is the body of POST /text-to-speech
type SpeechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// TranslateResponse is the body returned by POST /translate
type TranslateResponse struct {
	OriginalText   string `json:"original_text,omitempty"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
}

// TranslateAndSpeakResponse is the body returned by POST /translate-and-speak
type TranslateAndSpeakResponse struct {
	OriginalText   string `json:"original_text,omitempty"`
	TranslatedText string `json:"translated_text"`
	AudioData      string `json:"audio_data"`
}

// TranslateAndSpeakResult is a decoded combined response
type TranslateAndSpeakResult struct {
	TranslatedText string
	Audio          []byte
}

// Translate requests a translation of text into lang
func (c *Client) Translate(ctx context.Context, text string, lang languages.Language) (*TranslateResponse, error) {
	body, err := c.post(ctx, "/translate", TranslateRequest{Text: text, TargetLanguage: lang.ID()})
	if err != nil {
		return nil, err
	}

	var resp TranslateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode translate response: %w", err)
	}
	if err := requireTranslation(body); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TextToSpeech requests synthesized MP3 audio for text in lang
func (c *Client) TextToSpeech(ctx context.Context, text string, lang languages.Language) ([]byte, error) {
	body, err := c.post(ctx, "/text-to-speech", SpeechRequest{Text: text, Language: lang.ID()})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("no audio data received")
	}
	return body, nil
}

// TranslateAndSpeak requests a translation plus its audio in one call
func (c *Client) TranslateAndSpeak(ctx context.Context, text string, lang languages.Language) (*TranslateAndSpeakResult, error) {
	body, err := c.post(ctx, "/translate-and-speak", TranslateRequest{Text: text, TargetLanguage: lang.ID()})
	if err != nil {
		return nil, err
	}

	var resp TranslateAndSpeakResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode translate-and-speak response: %w", err)
	}
	if err := requireTranslation(body); err != nil {
		return nil, err
	}

	audio, err := DecodeAudio(resp.AudioData)
	if err != nil {
		return nil, err
	}

	return &TranslateAndSpeakResult{
		TranslatedText: resp.TranslatedText,
		Audio:          audio,
	}, nil
}

// ErrNoTranslation is returned when a 2xx body lacks translated_text
var ErrNoTranslation = errors.New("no translated_text in response")

// requireTranslation checks that body carries a translated_text string.
// An empty string is a valid translation, a missing field is not.
func requireTranslation(body []byte) error {
	var field struct {
		TranslatedText *string `json:"translated_text"`
	}
	if err := json.Unmarshal(body, &field); err != nil || field.TranslatedText == nil {
		return ErrNoTranslation
	}
	return nil
}

// DecodeAudio decodes the base64 audio payload of a combined response
func DecodeAudio(data string) ([]byte, error) {
	if data == "" {
		return nil, fmt.Errorf("no audio data received")
	}
	audio, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio data: %w", err)
	}
	return audio, nil
}

// post sends payload as JSON and returns the body of a 2xx response
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	c.log.Debug("request done",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, body)
	}
	return body, nil
}
