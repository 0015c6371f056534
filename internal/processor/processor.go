package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal"
	"codeberg.org/snonux/localtranslator/internal/api"
	"codeberg.org/snonux/localtranslator/internal/archive"
	"codeberg.org/snonux/localtranslator/internal/audio"
	"codeberg.org/snonux/localtranslator/internal/batch"
	"codeberg.org/snonux/localtranslator/internal/cli"
	"codeberg.org/snonux/localtranslator/internal/gui"
	"codeberg.org/snonux/localtranslator/internal/languages"
	"codeberg.org/snonux/localtranslator/internal/logging"
	"codeberg.org/snonux/localtranslator/internal/models"
	"codeberg.org/snonux/localtranslator/internal/session"
)

// Processor implements cli.Runner
type Processor struct {
	flags  *cli.Flags
	out    io.Writer // results
	errOut io.Writer // notifications and progress

	launchGUI func(*gui.Config)
	play      func(path string) error
}

var _ cli.Runner = (*Processor)(nil)

// NewProcessor creates a new processor writing to stdout and stderr
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags:     flags,
		out:       os.Stdout,
		errOut:    os.Stderr,
		launchGUI: func(c *gui.Config) { gui.New(c).Run() },
		play:      playFile,
	}
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	settings, err := cli.LoadSettings(p.flags)
	if err != nil {
		return err
	}
	log, err := logging.New(settings.LogLevel, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	p.launchGUI(&gui.Config{
		APIURL:        settings.APIURL,
		Timeout:       settings.Timeout,
		Language:      settings.Language,
		ToastDuration: settings.ToastDuration,
		ShowLog:       settings.LogLevel == "debug",
		Logger:        log,
	})
	return nil
}

// Translate prints the translation of text
func (p *Processor) Translate(ctx context.Context, text string) error {
	form, err := p.newForm()
	if err != nil {
		return err
	}
	defer form.Close()

	form.SetInputText(text)
	translated, err := form.Translate(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, translated)
	return nil
}

// Speak synthesizes already translated text and writes the audio file
func (p *Processor) Speak(ctx context.Context, text string) error {
	form, err := p.newForm()
	if err != nil {
		return err
	}
	defer form.Close()

	form.SetTranslatedText(text)
	h, err := form.Speak(ctx)
	if err != nil {
		return err
	}

	data, err := h.Bytes()
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}
	path := p.outputPath(p.flags.Output, text, form.Snapshot().TargetLanguage)
	if err := writeAudio(path, data); err != nil {
		return err
	}
	fmt.Fprintln(p.out, path)

	return p.maybePlay(path)
}

// TranslateAndSpeak prints the translation and writes its audio file
func (p *Processor) TranslateAndSpeak(ctx context.Context, text string) error {
	form, err := p.newForm()
	if err != nil {
		return err
	}
	defer form.Close()

	form.SetInputText(text)
	translated, h, err := form.TranslateAndSpeak(ctx)
	if err != nil {
		return err
	}

	data, err := h.Bytes()
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}
	path := p.outputPath(p.flags.Output, translated, form.Snapshot().TargetLanguage)
	if err := writeAudio(path, data); err != nil {
		return err
	}

	fmt.Fprintln(p.out, translated)
	fmt.Fprintln(p.out, path)

	return p.maybePlay(path)
}

// ProcessBatch translates every phrase of the batch file, optionally
// writing audio for each into the batch output directory
func (p *Processor) ProcessBatch(ctx context.Context) error {
	settings, err := cli.LoadSettings(p.flags)
	if err != nil {
		return err
	}

	entries, err := batch.ReadBatchFile(p.flags.BatchFile, settings.Language)
	if err != nil {
		return err
	}

	if p.flags.Speak {
		if p.flags.Archive {
			archived, err := archive.Dir(settings.BatchDir)
			switch {
			case errors.Is(err, archive.ErrNotExist):
			case err != nil:
				return fmt.Errorf("failed to archive output directory: %w", err)
			default:
				fmt.Fprintf(p.errOut, "Previous output archived to: %s\n", archived)
			}
		}
		if err := os.MkdirAll(settings.BatchDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	client, err := p.newClient(settings)
	if err != nil {
		return err
	}

	processedCount := 0
	errorCount := 0

	for i, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(p.errOut, "\nProcessing %d/%d: %s (%s)\n", i+1, len(entries), entry.Text, entry.Language.DisplayName())

		if err := p.processEntry(ctx, client, settings, entry); err != nil {
			fmt.Fprintf(p.errOut, "Error on line %d: %v\n", entry.Line, err)
			errorCount++
			continue
		}
		processedCount++
	}

	// Print summary
	fmt.Fprintf(p.errOut, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(p.errOut, "Total phrases: %d\n", len(entries))
	fmt.Fprintf(p.errOut, "Processed: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.errOut, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.errOut, "================================\n")

	if errorCount > 0 && processedCount == 0 {
		return fmt.Errorf("all %d phrases failed", errorCount)
	}
	return nil
}

func (p *Processor) processEntry(ctx context.Context, client *api.Client, settings *cli.Settings, entry batch.Entry) error {
	form := session.NewForm(client, session.WithLanguage(entry.Language), session.WithLogger(zap.NewNop()))
	defer form.Close()
	form.SetInputText(entry.Text)

	if !p.flags.Speak {
		translated, err := form.Translate(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "%s\t%s\t%s\n", entry.Text, entry.Language.ID(), translated)
		return nil
	}

	translated, h, err := form.TranslateAndSpeak(ctx)
	if err != nil {
		return err
	}
	data, err := h.Bytes()
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}
	path := filepath.Join(settings.BatchDir, internal.AudioFilename(translated, entry.Language.ID()))
	if err := writeAudio(path, data); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "%s\t%s\t%s\t%s\n", entry.Text, entry.Language.ID(), translated, path)
	return nil
}

// ListLanguages prints the supported target languages
func (p *Processor) ListLanguages() error {
	for _, lang := range languages.All() {
		fmt.Fprintf(p.out, "%-8s %-8s %s\n", lang.ID(), lang.DisplayName(), lang.Code())
	}
	return nil
}

// ListModels prints the OpenAI models usable by the server
func (p *Processor) ListModels(ctx context.Context) error {
	settings, err := cli.LoadSettings(p.flags)
	if err != nil {
		return err
	}

	catalog, err := models.NewLister(settings.OpenAIKey, settings.OpenAIURL).Catalog(ctx)
	if err != nil {
		return err
	}
	catalog.Print(p.out)
	return nil
}

func (p *Processor) newClient(settings *cli.Settings) (*api.Client, error) {
	log, err := logging.New(settings.LogLevel, true)
	if err != nil {
		return nil, err
	}

	opts := []api.Option{api.WithLogger(log)}
	if settings.Timeout > 0 {
		opts = append(opts, api.WithTimeout(settings.Timeout))
	}
	return api.New(settings.APIURL, opts...), nil
}

func (p *Processor) newForm() (*session.Form, error) {
	settings, err := cli.LoadSettings(p.flags)
	if err != nil {
		return nil, err
	}
	client, err := p.newClient(settings)
	if err != nil {
		return nil, err
	}
	return session.NewForm(client,
		session.WithNotifier(p.notifier()),
		session.WithLanguage(settings.Language),
	), nil
}

// notifier prints form notifications to the error stream
func (p *Processor) notifier() session.Notifier {
	return session.NotifierFuncs{
		OnSuccess: func(msg string) { fmt.Fprintln(p.errOut, "✓", msg) },
		OnError:   func(msg string) { fmt.Fprintln(p.errOut, "✗", msg) },
	}
}

// outputPath returns explicit if set, else a name derived from text
func (p *Processor) outputPath(explicit, text string, lang languages.Language) string {
	if explicit != "" {
		return explicit
	}
	return internal.AudioFilename(text, lang.ID())
}

func (p *Processor) maybePlay(path string) error {
	if !p.flags.Play {
		return nil
	}
	if err := p.play(path); err != nil {
		return fmt.Errorf("failed to play audio: %w", err)
	}
	return nil
}

func writeAudio(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

func playFile(path string) error {
	cmd, err := audio.PlaybackCommand(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}
