package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/localtranslator/internal"
)

// Runner executes what the commands ask for
type Runner interface {
	RunGUIMode() error
	Translate(ctx context.Context, text string) error
	Speak(ctx context.Context, text string) error
	TranslateAndSpeak(ctx context.Context, text string) error
	ProcessBatch(ctx context.Context) error
	ListLanguages() error
	ListModels(ctx context.Context) error
	Serve(ctx context.Context) error
}

// CreateRootCommand creates and configures the root cobra command with
// all subcommands wired to runner
func CreateRootCommand(flags *Flags, runner Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "localtranslator",
		Short: "Translate English text into Indian languages and speak it",
		Long: `localtranslator translates English text into Tamil, Telugu or Hindi
through the translation API and can synthesize speech for the result.

Examples:
  localtranslator                                   # Launch interactive GUI (default)
  localtranslator translate "Good morning" -l hindi # Print the translation
  localtranslator translate-and-speak "Hello" -o hello.mp3
  localtranslator --batch phrases.txt --speak --output-dir audio/
  localtranslator serve --addr :8000                # Run the translation API`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.BatchFile != "" {
				return runner.ProcessBatch(cmd.Context())
			}
			return runner.RunGUIMode()
		},
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newTextCommand("translate TEXT", "Translate English text", runner.Translate),
		newAudioCommand(flags, "speak TEXT", "Synthesize speech for already translated text", runner.Speak),
		newAudioCommand(flags, "translate-and-speak TEXT", "Translate English text and synthesize the translation", runner.TranslateAndSpeak),
		&cobra.Command{
			Use:   "languages",
			Short: "List supported target languages",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runner.ListLanguages()
			},
		},
		&cobra.Command{
			Use:   "models",
			Short: "List OpenAI chat and speech models usable by serve",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runner.ListModels(cmd.Context())
			},
		},
		newServeCommand(flags, runner),
	)

	return rootCmd
}

func newTextCommand(use, short string, run func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newAudioCommand(flags *Flags, use, short string, run func(context.Context, string) error) *cobra.Command {
	cmd := newTextCommand(use, short, run)
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Audio output file (default: derived from the text)")
	cmd.Flags().BoolVar(&flags.Play, "play", false, "Play the audio after writing it")
	return cmd
}

func newServeCommand(flags *Flags, runner Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the translation API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "Listen address")
	cmd.Flags().IntVar(&flags.RateLimit, "rate-limit", flags.RateLimit, "Requests per minute and client IP (0 disables)")
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model used for translation")
	cmd.Flags().StringVar(&flags.TTSModel, "tts-model", flags.TTSModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used for translation")

	bindFlag("server.addr", cmd.Flags().Lookup("addr"))
	bindFlag("server.rate_limit", cmd.Flags().Lookup("rate-limit"))
	bindFlag("server.translator", cmd.Flags().Lookup("translator"))
	bindFlag("openai.model", cmd.Flags().Lookup("openai-model"))
	bindFlag("openai.tts_model", cmd.Flags().Lookup("tts-model"))
	bindFlag("openai.voice", cmd.Flags().Lookup("voice"))
	bindFlag("gemini.model", cmd.Flags().Lookup("gemini-model"))

	return cmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.localtranslator.yaml)")
	cmd.PersistentFlags().StringVar(&flags.APIURL, "api-url", flags.APIURL, "Translation API base URL")
	cmd.PersistentFlags().StringVarP(&flags.Language, "language", "l", flags.Language, "Target language: tamil, telugu or hindi")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP client timeout (0 means none)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate lines from file (\"TEXT\" or \"TEXT = language\")")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", ".", "Directory for batch audio files")
	cmd.Flags().BoolVar(&flags.Speak, "speak", false, "Also synthesize audio in batch mode")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing batch output directory to archive/ first")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	bindFlag("api.url", cmd.PersistentFlags().Lookup("api-url"))
	bindFlag("api.timeout", cmd.PersistentFlags().Lookup("timeout"))
	bindFlag("ui.language", cmd.PersistentFlags().Lookup("language"))
	bindFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	bindFlag("batch.output_dir", cmd.Flags().Lookup("output-dir"))
}

// bindFlag binds a config key to a flag, skipping flags that do not exist
func bindFlag(key string, flag *pflag.Flag) {
	if flag != nil {
		viper.BindPFlag(key, flag)
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".localtranslator" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".localtranslator")
	}

	// Environment variables, e.g. LOCALTRANSLATOR_API_URL
	viper.SetEnvPrefix("LOCALTRANSLATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("ui.toast_duration", "4s")
	viper.SetDefault("openai.base_url", "")
	viper.SetDefault("gemini.fallback", true)
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("gemini.key")
}
