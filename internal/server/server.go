package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/audio"
	"codeberg.org/snonux/localtranslator/internal/translation"
)

// APIPrefix is where the translation routes are mounted
const APIPrefix = "/api/v1"

// Config holds the server settings
type Config struct {
	Addr           string
	RateLimit      int           // requests per client IP and minute, 0 disables limiting
	BreakerTimeout time.Duration // how long an open breaker rejects calls
	MaxBodyBytes   int64

	Translator  translation.Translator
	Synthesizer audio.Synthesizer
	Logger      *zap.Logger
}

// DefaultConfig returns the default server configuration without providers
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":8000",
		RateLimit:      60,
		BreakerTimeout: 30 * time.Second,
		MaxBodyBytes:   1 << 20,
	}
}

// Server serves the translation API
type Server struct {
	config      *Config
	translator  translation.Translator
	synthesizer audio.Synthesizer
	router      chi.Router
	log         *zap.Logger
}

// New creates a server. Both providers are required.
func New(config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Translator == nil {
		return nil, fmt.Errorf("translator is required")
	}
	if config.Synthesizer == nil {
		return nil, fmt.Errorf("synthesizer is required")
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("server")

	timeout := config.BreakerTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().BreakerTimeout
	}

	s := &Server{
		config: config,
		translator: &guardedTranslator{
			next: config.Translator,
			cb:   newBreaker("translator", timeout, log),
		},
		synthesizer: &guardedSynthesizer{
			next: config.Synthesizer,
			cb:   newBreaker("synthesizer", timeout, log),
		},
		log: log,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(recoverer(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route(APIPrefix, func(api chi.Router) {
		if s.config.RateLimit > 0 {
			api.Use(httprate.Limit(s.config.RateLimit, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeDetail(w, http.StatusTooManyRequests, "rate limited")
				}),
			))
		}
		if s.config.MaxBodyBytes > 0 {
			api.Use(middleware.RequestSize(s.config.MaxBodyBytes))
		}

		api.Post("/translate", s.handleTranslate)
		api.Post("/text-to-speech", s.handleTextToSpeech)
		api.Post("/translate-and-speak", s.handleTranslateAndSpeak)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening",
			zap.String("addr", s.config.Addr),
			zap.String("translator", s.translator.Name()),
			zap.String("synthesizer", s.synthesizer.Name()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
