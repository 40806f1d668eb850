package speech

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Gemini speech-generation API.
// The API returns linear PCM at 24kHz, mono, 16-bit.
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini TTS provider
func NewGeminiProvider(config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, ErrMissingKey
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Synthesize requests pronunciation audio for a single word
func (p *GeminiProvider) Synthesize(ctx context.Context, word string) ([]byte, error) {
	prompt := fmt.Sprintf(p.config.Prompt, word)

	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
						VoiceName: p.config.GeminiVoice,
					},
				},
			},
		})
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS API error: %w", err)
	}

	pcm := extractAudioData(resp)
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}

	return pcm, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the Gemini API is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return ErrMissingKey
	}

	// A test call would use quota, so only verify configuration here
	return nil
}

// extractAudioData pulls the inline PCM payload out of a generate response
func extractAudioData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
