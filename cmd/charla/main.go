package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/charla/internal/chat"
	"codeberg.org/snonux/charla/internal/cli"
	"codeberg.org/snonux/charla/internal/speech"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	openAIKey := cli.GetOpenAIKey()
	if openAIKey == "" {
		return fmt.Errorf("no OpenAI API key found, set OPENAI_API_KEY or chat.openai_key in the config file")
	}

	cli.ApplyConfigOverrides(flags)

	conversation := chat.NewConversation(openAIKey, flags.OpenAIModel)

	var speechCache *speech.Cache
	if !flags.NoAudio {
		provider, err := buildSpeechProvider(flags)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Audio disabled: %v\n", err)
		} else {
			speechCache = speech.NewCache(provider)
		}
	}

	session := cli.NewSession(flags, conversation, speechCache)
	return session.Run(cmd.Context())
}

func buildSpeechProvider(flags *cli.Flags) (speech.Provider, error) {
	config := speech.DefaultProviderConfig()
	config.GeminiKey = cli.GetGeminiKey()
	config.GeminiModel = flags.GeminiModel
	config.GeminiVoice = flags.GeminiVoice

	provider, err := speech.NewProvider(config)
	if err != nil {
		return nil, err
	}

	// Retry transient failures, then stop hammering a failing API
	return speech.NewRetryProvider(speech.NewBreakerProvider(provider), 3, time.Second), nil
}
