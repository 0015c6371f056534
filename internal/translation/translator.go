package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

// SourceLanguage is the language all input text is expected in
const SourceLanguage = "en"

// ErrEmptyText is returned when there is nothing to translate
var ErrEmptyText = errors.New("Text cannot be empty")

// Translator translates English text into a target language
type Translator interface {
	Translate(ctx context.Context, text string, target languages.Language) (string, error)
	Name() string
}

// Result mirrors a completed translation
type Result struct {
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage languages.Language
}

// Translate validates the input and runs it through t
func Translate(ctx context.Context, t Translator, text string, target languages.Language) (*Result, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if target.IsZero() {
		return nil, fmt.Errorf("unsupported language: %s", target.ID())
	}

	translated, err := t.Translate(ctx, text, target)
	if err != nil {
		return nil, fmt.Errorf("Translation failed: %w", err)
	}

	return &Result{
		OriginalText:   text,
		TranslatedText: translated,
		SourceLanguage: SourceLanguage,
		TargetLanguage: target,
	}, nil
}

// prompt builds the instruction shared by all model backed translators
func prompt(text string, target languages.Language) string {
	return fmt.Sprintf("Translate the following English text to %s. Respond with only the %s translation in native script, nothing else.\n\n%s",
		target.DisplayName(), target.DisplayName(), text)
}

// OpenAITranslator handles translation through the OpenAI chat API
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// OpenAIOption configures an OpenAITranslator
type OpenAIOption func(*openai.ClientConfig, *OpenAITranslator)

// WithBaseURL points the translator at a different API endpoint
func WithBaseURL(url string) OpenAIOption {
	return func(c *openai.ClientConfig, _ *OpenAITranslator) {
		c.BaseURL = url
	}
}

// WithModel selects the chat model
func WithModel(model string) OpenAIOption {
	return func(_ *openai.ClientConfig, t *OpenAITranslator) {
		if model != "" {
			t.model = model
		}
	}
}

// NewOpenAITranslator creates a new translator instance
func NewOpenAITranslator(apiKey string, opts ...OpenAIOption) *OpenAITranslator {
	t := &OpenAITranslator{
		apiKey: apiKey,
		model:  openai.GPT4oMini,
	}

	config := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&config, t)
	}
	t.client = openai.NewClientWithConfig(config)

	return t
}

// Name returns the translator name
func (t *OpenAITranslator) Name() string {
	return "openai"
}

// Translate translates English text to the target language
func (t *OpenAITranslator) Translate(ctx context.Context, text string, target languages.Language) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt(text, target),
			},
		},
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}
