package audio

import (
	"testing"
)

func TestDefaultProviderConfig(t *testing.T) {
	config := DefaultProviderConfig()

	if config.Provider != "openai" {
		t.Errorf("Provider = %v, want openai", config.Provider)
	}
	if config.OpenAIModel != "gpt-4o-mini-tts" {
		t.Errorf("OpenAIModel = %v, want gpt-4o-mini-tts", config.OpenAIModel)
	}
	if config.OpenAIVoice != "nova" {
		t.Errorf("OpenAIVoice = %v, want nova", config.OpenAIVoice)
	}
	if config.OpenAISpeed != 1.0 {
		t.Errorf("OpenAISpeed = %v, want 1.0", config.OpenAISpeed)
	}
}

func TestNewSynthesizer(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "nil config has no key",
			config:  nil,
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name:    "openai with key",
			config:  &Config{Provider: "openai", OpenAIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "openai without key",
			config:  &Config{Provider: "openai"},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name:    "unknown provider",
			config:  &Config{Provider: "unknown"},
			wantErr: true,
			errMsg:  "unknown speech provider: unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSynthesizer(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSynthesizer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("NewSynthesizer() error = %v, want %v", err.Error(), tt.errMsg)
			}
			if !tt.wantErr && s.Name() != "openai" {
				t.Errorf("Name() = %v, want openai", s.Name())
			}
		})
	}
}
