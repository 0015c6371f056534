package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile  string
	APIURL   string
	Language string
	Timeout  time.Duration
	LogLevel string

	// Audio output
	Output string
	Play   bool

	// Batch mode
	BatchFile string
	OutputDir string
	Speak     bool
	Archive   bool

	// Server flags
	Addr       string
	RateLimit  int
	Translator string

	// Provider flags
	OpenAIModel string
	TTSModel    string
	OpenAIVoice string
	GeminiModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		APIURL:      "http://localhost:8000/api/v1",
		Language:    "tamil",
		LogLevel:    "info",
		Addr:        ":8000",
		RateLimit:   60,
		Translator:  "openai",
		OpenAIModel: "gpt-4o-mini",
		TTSModel:    "gpt-4o-mini-tts",
		OpenAIVoice: "nova",
		GeminiModel: "gemini-2.0-flash",
	}
}
