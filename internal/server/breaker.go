package server

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/audio"
	"codeberg.org/snonux/localtranslator/internal/languages"
	"codeberg.org/snonux/localtranslator/internal/translation"
)

// ErrUnavailable is returned while a provider's breaker is open
var ErrUnavailable = errors.New("service temporarily unavailable")

// tripAfter is the number of consecutive provider failures that opens a breaker
const tripAfter = 5

func newBreaker(name string, timeout time.Duration, log *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		IsSuccessful: providerHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// providerHealthy reports whether err leaves the provider's health untouched.
// A request cancelled by its client says nothing about the provider.
func providerHealthy(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// breakerErr maps the breaker's own rejections to ErrUnavailable
func breakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrUnavailable
	}
	return err
}

// guardedTranslator runs a translator behind a circuit breaker
type guardedTranslator struct {
	next translation.Translator
	cb   *gobreaker.CircuitBreaker
}

func (g *guardedTranslator) Translate(ctx context.Context, text string, target languages.Language) (string, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.next.Translate(ctx, text, target)
	})
	if err != nil {
		return "", breakerErr(err)
	}
	return out.(string), nil
}

func (g *guardedTranslator) Name() string { return g.next.Name() }

// guardedSynthesizer runs a synthesizer behind a circuit breaker
type guardedSynthesizer struct {
	next audio.Synthesizer
	cb   *gobreaker.CircuitBreaker
}

func (g *guardedSynthesizer) Synthesize(ctx context.Context, text string, lang languages.Language) ([]byte, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.next.Synthesize(ctx, text, lang)
	})
	if err != nil {
		return nil, breakerErr(err)
	}
	return out.([]byte), nil
}

func (g *guardedSynthesizer) Name() string { return g.next.Name() }

func (g *guardedSynthesizer) IsAvailable() error { return g.next.IsAvailable() }
