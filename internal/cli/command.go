package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/charla/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "charla",
		Short: "Conversational Spanish learning companion",
		Long: `charla is a chat-based Spanish tutor for the terminal.

It holds a conversation with you through OpenAI, teaches new Spanish
words inline, tracks your growing vocabulary, and pronounces words
using Gemini text-to-speech.

Examples:
  charla                          # Start a conversation
  charla --words seed.txt --warm  # Seed vocabulary and pre-generate audio
  charla --anki --deck-name "Mis Palabras"  # Export vocabulary after the session`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	home, _ := os.UserHomeDir()
	defaultOutputDir := filepath.Join(home, ".local", "state", "charla")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.charla.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", defaultOutputDir, "Output directory for exports and audio")
	cmd.Flags().StringVar(&flags.WordFile, "words", "", "Seed vocabulary from file (one word per line, optionally 'word = translation')")
	cmd.Flags().BoolVar(&flags.WarmAudio, "warm", false, "Pre-generate audio for seeded vocabulary")
	cmd.Flags().BoolVar(&flags.NoAudio, "no-audio", false, "Disable audio synthesis and playback")
	cmd.Flags().BoolVar(&flags.Phonetics, "phonetics", false, "Fetch IPA transcriptions for learned words")
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Export vocabulary as Anki deck on exit (APKG format by default, use --anki-csv for CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Export CSV instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini text-to-speech model")
	cmd.Flags().StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini voice for pronunciation")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("chat.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("audio.gemini_voice", cmd.Flags().Lookup("gemini-voice"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
}

// ApplyConfigOverrides fills flags from the config file for values the
// user left at their defaults on the command line.
func ApplyConfigOverrides(flags *Flags) {
	defaults := NewFlags()

	if flags.OpenAIModel == defaults.OpenAIModel && viper.IsSet("chat.openai_model") {
		flags.OpenAIModel = viper.GetString("chat.openai_model")
	}
	if flags.GeminiModel == defaults.GeminiModel && viper.IsSet("audio.gemini_model") {
		flags.GeminiModel = viper.GetString("audio.gemini_model")
	}
	if flags.GeminiVoice == defaults.GeminiVoice && viper.IsSet("audio.gemini_voice") {
		flags.GeminiVoice = viper.GetString("audio.gemini_voice")
	}
	if flags.DeckName == defaults.DeckName && viper.IsSet("anki.deck_name") {
		flags.DeckName = viper.GetString("anki.deck_name")
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".charla" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".charla")
	}

	// Environment variables
	viper.SetEnvPrefix("CHARLA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("chat.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.gemini_key")
}
