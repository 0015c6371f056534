package audio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

// Synthesizer defines the interface for text-to-speech providers
type Synthesizer interface {
	// Synthesize converts text in the given language to MP3 bytes
	Synthesize(ctx context.Context, text string, lang languages.Language) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for speech providers
type Config struct {
	Provider string // Provider name: "openai"

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string  // Overrides the API endpoint, empty for the default
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts, %s is the language name

	Logger *zap.Logger
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:          "openai",
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "nova",
		OpenAISpeed:       1.0,
		OpenAIInstruction: "You are speaking %s. Pronounce the text with native %s phonetics and speak clearly.",
	}
}

// NewSynthesizer creates the appropriate speech provider based on configuration
func NewSynthesizer(config *Config) (Synthesizer, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAISynthesizer(config)

	default:
		return nil, fmt.Errorf("unknown speech provider: %s", config.Provider)
	}
}
