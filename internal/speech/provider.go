package speech

import (
	"context"
	"fmt"
)

// PCM format delivered by the synthesis providers. The WAV encoding step
// and the playback duration estimate both rely on these.
const (
	SampleRate = 24000
	Channels   = 1
	BitDepth   = 16
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize generates pronunciation audio for a single word and
	// returns the raw PCM samples (SampleRate/Channels/BitDepth format)
	Synthesize(ctx context.Context, word string) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for speech providers
type Config struct {
	Provider string // Provider name: "gemini"

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string // TTS-capable Gemini model
	GeminiVoice string // Prebuilt voice name, e.g. "Kore"
	Prompt      string // Pronunciation directive, word appended via %s
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:    "gemini",
		GeminiModel: "gemini-2.5-flash-preview-tts",
		GeminiVoice: "Kore",
		Prompt:      "Pronounce in Castilian Spanish: %s",
	}
}

// NewProvider creates the appropriate speech provider based on configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "gemini":
		if config.GeminiKey == "" {
			return nil, ErrMissingKey
		}
		return NewGeminiProvider(config)

	default:
		return nil, fmt.Errorf("unknown speech provider: %s", config.Provider)
	}
}
