package translation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

// TranslatorWithFallback wraps a primary translator with a fallback option
type TranslatorWithFallback struct {
	primary  Translator
	fallback Translator
	log      *zap.Logger
}

// NewTranslatorWithFallback creates a translator that falls back to secondary if primary fails
func NewTranslatorWithFallback(primary, fallback Translator, log *zap.Logger) Translator {
	if log == nil {
		log = zap.NewNop()
	}
	return &TranslatorWithFallback{
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// Translate tries the primary translator first, falls back to secondary on error
func (t *TranslatorWithFallback) Translate(ctx context.Context, text string, target languages.Language) (string, error) {
	result, err := t.primary.Translate(ctx, text, target)
	if err == nil {
		return result, nil
	}

	t.log.Warn("primary translator failed, falling back",
		zap.String("primary", t.primary.Name()),
		zap.String("fallback", t.fallback.Name()),
		zap.Error(err),
	)
	return t.fallback.Translate(ctx, text, target)
}

// Name returns the translator name
func (t *TranslatorWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", t.primary.Name(), t.fallback.Name())
}
