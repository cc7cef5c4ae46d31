package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"codeberg.org/snonux/hanzicloze/internal/vocablog"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	InputFile    string `validate:"required"`
	OutputDir    string `validate:"required"`
	DryRun       bool
	GenerateAPKG bool
	DeckName     string `validate:"required"`
	Archive      bool
	ListModels   bool
	Concurrency  int           `validate:"gte=0,lte=64"`
	Timeout      time.Duration `validate:"gte=0"`

	// Logging flags
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	// Transliteration flags
	Provider    string `validate:"oneof=local openai gemini"`
	OpenAIModel string `validate:"required_if=Provider openai"`
	GeminiModel string `validate:"required_if=Provider gemini"`
	NoCache     bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		InputFile:   vocablog.DefaultFileName,
		OutputDir:   DefaultOutputDir(),
		DeckName:    "Chinese Sentences",
		LogLevel:    "info",
		LogFormat:   "text",
		Provider:    "local",
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
	}
}

// DefaultOutputDir is the Anki import folder of the course material
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Documents", "Taiwan", "Chinese", "Copy-Paste-Chinese-Course", "Anki")
}

var validate = validator.New()

// Validate checks the flag values against their constraints
func (f *Flags) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
