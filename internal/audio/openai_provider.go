package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

// OpenAISynthesizer implements Synthesizer for OpenAI TTS
type OpenAISynthesizer struct {
	client *openai.Client
	config *Config
	log    *zap.Logger
}

// NewOpenAISynthesizer creates a new OpenAI TTS provider
func NewOpenAISynthesizer(config *Config) (*OpenAISynthesizer, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	defaults := DefaultProviderConfig()
	if config.OpenAIModel == "" {
		config.OpenAIModel = defaults.OpenAIModel
	}
	if config.OpenAIVoice == "" {
		config.OpenAIVoice = defaults.OpenAIVoice
	}
	if config.OpenAISpeed == 0 {
		config.OpenAISpeed = defaults.OpenAISpeed
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		log:    log.Named("tts"),
	}, nil
}

// Synthesize generates MP3 audio using OpenAI TTS
func (p *OpenAISynthesizer) Synthesize(ctx context.Context, text string, lang languages.Language) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	if lang.IsZero() {
		return nil, fmt.Errorf("language is required")
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          strings.TrimSpace(text),
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	if p.supportsInstructions() && p.config.OpenAIInstruction != "" {
		req.Instructions = p.instructionFor(lang)
	}

	p.log.Debug("requesting speech",
		zap.String("model", p.config.OpenAIModel),
		zap.String("voice", p.config.OpenAIVoice),
		zap.String("language", lang.ID()),
		zap.Int("chars", len([]rune(req.Input))),
	)

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") && p.supportsInstructions() {
			return nil, fmt.Errorf("OpenAI TTS API error: %w (the %s model requires access, try tts-1-hd)", err, p.config.OpenAIModel)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return data, nil
}

// Name returns the provider name
func (p *OpenAISynthesizer) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAISynthesizer) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

func (p *OpenAISynthesizer) supportsInstructions() bool {
	return p.config.OpenAIModel == "gpt-4o-mini-tts"
}

// instructionFor fills the language name into the instruction template
func (p *OpenAISynthesizer) instructionFor(lang languages.Language) string {
	n := strings.Count(p.config.OpenAIInstruction, "%s")
	if n == 0 {
		return p.config.OpenAIInstruction
	}
	args := make([]any, n)
	for i := range args {
		args[i] = lang.DisplayName()
	}
	return fmt.Sprintf(p.config.OpenAIInstruction, args...)
}
