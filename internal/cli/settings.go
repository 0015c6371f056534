package cli

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

// Settings is the effective configuration after merging flags, the
// config file and the environment
type Settings struct {
	APIURL        string
	Timeout       time.Duration
	Language      languages.Language
	ToastDuration time.Duration
	LogLevel      string
	BatchDir      string

	ServerAddr  string
	RateLimit   int
	Translator  string
	Fallback    bool
	OpenAIKey   string
	OpenAIURL   string
	OpenAIModel string
	TTSModel    string
	Voice       string
	GeminiKey   string
	GeminiModel string
}

// LoadSettings reads the current viper state. Values not bound to a flag
// fall back to the flag defaults in flags.
func LoadSettings(flags *Flags) (*Settings, error) {
	if flags == nil {
		flags = NewFlags()
	}

	lang, err := languages.Parse(stringOr("ui.language", flags.Language))
	if err != nil {
		return nil, fmt.Errorf("invalid language: %w", err)
	}

	timeout, err := durationOr("api.timeout", flags.Timeout)
	if err != nil {
		return nil, err
	}
	toast, err := durationOr("ui.toast_duration", 0)
	if err != nil {
		return nil, err
	}

	translator := stringOr("server.translator", flags.Translator)
	if translator != "openai" && translator != "gemini" {
		return nil, fmt.Errorf("unknown translator: %s", translator)
	}

	rate := flags.RateLimit
	if viper.IsSet("server.rate_limit") {
		rate = viper.GetInt("server.rate_limit")
	}

	return &Settings{
		APIURL:        stringOr("api.url", flags.APIURL),
		Timeout:       timeout,
		Language:      lang,
		ToastDuration: toast,
		LogLevel:      stringOr("log.level", flags.LogLevel),
		BatchDir:      stringOr("batch.output_dir", flags.OutputDir),
		ServerAddr:    stringOr("server.addr", flags.Addr),
		RateLimit:     rate,
		Translator:    translator,
		Fallback:      viper.GetBool("gemini.fallback"),
		OpenAIKey:     GetOpenAIKey(),
		OpenAIURL:     viper.GetString("openai.base_url"),
		OpenAIModel:   stringOr("openai.model", flags.OpenAIModel),
		TTSModel:      stringOr("openai.tts_model", flags.TTSModel),
		Voice:         stringOr("openai.voice", flags.OpenAIVoice),
		GeminiKey:     GetGeminiKey(),
		GeminiModel:   stringOr("gemini.model", flags.GeminiModel),
	}, nil
}

func stringOr(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// durationOr accepts Go durations ("30s") and plain numbers of seconds
func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	if !viper.IsSet(key) {
		return fallback, nil
	}
	raw := viper.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	var secs float64
	if _, err := fmt.Sscanf(raw, "%g", &secs); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
}
