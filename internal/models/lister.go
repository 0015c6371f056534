package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Catalog groups the OpenAI models the translation server can use
type Catalog struct {
	Speech []string // for openai.tts_model
	Chat   []string // for openai.model
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. An empty baseURL uses the
// default OpenAI endpoint.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// Catalog fetches the model list and keeps speech and chat models
func (l *Lister) Catalog(ctx context.Context) (*Catalog, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .localtranslator.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	catalog := &Catalog{}
	for _, model := range models.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"):
			catalog.Speech = append(catalog.Speech, id)
		case strings.Contains(id, "audio"), strings.Contains(id, "realtime"), strings.Contains(id, "transcribe"):
			// not usable for either job
		case strings.HasPrefix(id, "gpt-"), strings.Contains(id, "chat"):
			catalog.Chat = append(catalog.Chat, id)
		}
	}

	sort.Strings(catalog.Speech)
	sort.Strings(catalog.Chat)
	return catalog, nil
}

// Print writes the catalog grouped by purpose
func (c *Catalog) Print(w io.Writer) {
	fmt.Fprintln(w, "Available OpenAI Models:")

	fmt.Fprintln(w, "\nText-to-Speech Models (--tts-model):")
	printList(w, c.Speech, "No TTS models found")

	fmt.Fprintln(w, "\nChat/Translation Models (--openai-model):")
	printList(w, c.Chat, "No chat models found")
}

func printList(w io.Writer, models []string, empty string) {
	if len(models) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}
	for _, model := range models {
		fmt.Fprintf(w, "  %s\n", model)
	}
}
