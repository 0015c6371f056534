package processor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/audio"
	"codeberg.org/snonux/localtranslator/internal/cli"
	"codeberg.org/snonux/localtranslator/internal/logging"
	"codeberg.org/snonux/localtranslator/internal/server"
	"codeberg.org/snonux/localtranslator/internal/translation"
)

// Serve runs the translation API until ctx is cancelled
func (p *Processor) Serve(ctx context.Context) error {
	settings, err := cli.LoadSettings(p.flags)
	if err != nil {
		return err
	}

	log, err := logging.New(settings.LogLevel, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	srv, err := buildServer(ctx, settings, log)
	if err != nil {
		return err
	}

	log.Info("starting server", zap.String("addr", settings.ServerAddr), zap.Int("rate_limit", settings.RateLimit))
	return srv.ListenAndServe(ctx)
}

func buildServer(ctx context.Context, settings *cli.Settings, log *zap.Logger) (*server.Server, error) {
	translator, err := buildTranslator(ctx, settings, log)
	if err != nil {
		return nil, err
	}

	synthesizer, err := audio.NewSynthesizer(&audio.Config{
		Provider:          "openai",
		OpenAIKey:         settings.OpenAIKey,
		OpenAIBaseURL:     settings.OpenAIURL,
		OpenAIModel:       settings.TTSModel,
		OpenAIVoice:       settings.Voice,
		OpenAISpeed:       audio.DefaultProviderConfig().OpenAISpeed,
		OpenAIInstruction: audio.DefaultProviderConfig().OpenAIInstruction,
		Logger:            log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create speech provider: %w", err)
	}

	config := server.DefaultConfig()
	config.Addr = settings.ServerAddr
	config.RateLimit = settings.RateLimit
	config.Translator = translator
	config.Synthesizer = synthesizer
	config.Logger = log

	return server.New(config)
}

// buildTranslator creates the configured translator. When both API keys are
// present and gemini.fallback is set, the other provider backs it up.
func buildTranslator(ctx context.Context, settings *cli.Settings, log *zap.Logger) (translation.Translator, error) {
	newOpenAI := func() (translation.Translator, error) {
		if settings.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found")
		}
		opts := []translation.OpenAIOption{translation.WithModel(settings.OpenAIModel)}
		if settings.OpenAIURL != "" {
			opts = append(opts, translation.WithBaseURL(settings.OpenAIURL))
		}
		return translation.NewOpenAITranslator(settings.OpenAIKey, opts...), nil
	}
	newGemini := func() (translation.Translator, error) {
		g, err := translation.NewGeminiTranslator(ctx, settings.GeminiKey, settings.GeminiModel)
		if err != nil {
			return nil, err
		}
		return g, nil
	}

	primaryFn, secondaryFn := newOpenAI, newGemini
	secondaryKey := settings.GeminiKey
	if settings.Translator == "gemini" {
		primaryFn, secondaryFn = newGemini, newOpenAI
		secondaryKey = settings.OpenAIKey
	}

	primary, err := primaryFn()
	if err != nil {
		return nil, fmt.Errorf("failed to create %s translator: %w", settings.Translator, err)
	}
	if !settings.Fallback || secondaryKey == "" {
		return primary, nil
	}

	secondary, err := secondaryFn()
	if err != nil {
		log.Warn("fallback translator unavailable", zap.Error(err))
		return primary, nil
	}
	log.Info("translator fallback enabled", zap.String("primary", primary.Name()), zap.String("fallback", secondary.Name()))
	return translation.NewTranslatorWithFallback(primary, secondary, log), nil
}
