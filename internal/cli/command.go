package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/hanzicloze/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hanzicloze",
		Short: "Chinese cloze sentence flashcard generator",
		Long: `hanzicloze turns new entries of a vocabulary log into Anki cloze cards.

Every line after the end|| marker of the log (word|sentence|translation)
becomes one card with the word hidden in the sentence and in its pinyin.
After a successful run the marker is moved to the end of the log so the
next run only picks up entries added since.

Examples:
  hanzicloze                           # Process sentence_flashcards.csv
  hanzicloze -i vocab.csv --apkg       # Also write an Anki package
  hanzicloze --provider openai         # Transliterate with OpenAI
  hanzicloze --dry-run                 # Print the cards, write nothing`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.hanzicloze.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputFile, "input", "i", flags.InputFile, "Vocabulary log (word|sentence|translation per line)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Output directory for the generated cards")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the cards without writing any file")
	cmd.Flags().BoolVar(&flags.GenerateAPKG, "apkg", false, "Also write an Anki package (.apkg) with a cloze note type")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move previously generated card files into an archive directory and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", 0, "Maximum entries transliterated at once (0 = unbounded)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Abort the run after this duration (0 = no timeout)")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Transliteration flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Transliteration provider: local, openai, gemini")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for the openai provider")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for the gemini provider")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Disable memoizing transliteration results within a run")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// viperKeys maps flag names to their configuration keys
var viperKeys = map[string]string{
	"input":        "input.file",
	"output":       "output.directory",
	"apkg":         "output.apkg",
	"deck-name":    "output.deck_name",
	"concurrency":  "run.concurrency",
	"timeout":      "run.timeout",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"provider":     "transliteration.provider",
	"openai-model": "openai.model",
	"gemini-model": "gemini.model",
	"no-cache":     "transliteration.no_cache",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range viperKeys {
		viper.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env file is fine, the environment may be set already
	_ = godotenv.Load()

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

		// Search config in home directory with name ".hanzicloze" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hanzicloze")
	}

	// Environment variables, e.g. HANZICLOZE_OUTPUT_DIRECTORY
	viper.SetEnvPrefix("HANZICLOZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies configured values into flags. Flags given on the
// command line win over the environment, which wins over the config file.
func ApplyConfig(flags *Flags) {
	flags.InputFile = viper.GetString("input.file")
	flags.OutputDir = viper.GetString("output.directory")
	flags.GenerateAPKG = viper.GetBool("output.apkg")
	flags.DeckName = viper.GetString("output.deck_name")
	flags.Concurrency = viper.GetInt("run.concurrency")
	flags.Timeout = viper.GetDuration("run.timeout")
	flags.LogLevel = viper.GetString("log.level")
	flags.LogFormat = viper.GetString("log.format")
	flags.Provider = viper.GetString("transliteration.provider")
	flags.OpenAIModel = viper.GetString("openai.model")
	flags.GeminiModel = viper.GetString("gemini.model")
	flags.NoCache = viper.GetBool("transliteration.no_cache")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("gemini.api_key")
}
