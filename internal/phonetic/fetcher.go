package phonetic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

// completionClient is the slice of the OpenAI client the fetcher needs.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Fetcher fetches IPA phonetic information for Spanish words. Results are
// cached in memory for the session so export runs don't refetch.
type Fetcher struct {
	apiKey string
	client completionClient

	mu    sync.Mutex
	cache map[string]string
}

// NewFetcher creates a new phonetic information fetcher
func NewFetcher(apiKey string) *Fetcher {
	return &Fetcher{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
		cache:  make(map[string]string),
	}
}

// Fetch returns the IPA breakdown for a Spanish word
func (f *Fetcher) Fetch(ctx context.Context, word string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	key := strings.ToLower(strings.TrimSpace(word))
	f.mu.Lock()
	if cached, ok := f.cache[key]; ok {
		f.mu.Unlock()
		return cached, nil
	}
	f.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a Castilian Spanish language expert helping language learners understand pronunciation. Provide detailed phonetic information using the International Phonetic Alphabet (IPA). For each IPA symbol used, give concrete examples of how it sounds using familiar English words or sounds when possible.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`For the Spanish word '%s':
1. Provide the complete IPA transcription (Castilian pronunciation)
2. Break down EACH phonetic symbol used in the transcription
3. For EVERY symbol, explain how it's pronounced with examples:
   - If similar to an English sound, give English word examples
   - If not in English, describe tongue/mouth position or compare to similar sounds
   - Include stress marks and explain which syllable is stressed

Example format:
Word: [IPA transcription]
• /p/ - like 'p' in English 'pot'
• /a/ - like 'a' in 'father'
• /ˈ/ - stress mark (following syllable is stressed)`, word),
			},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no phonetic information returned")
	}

	info := strings.TrimSpace(resp.Choices[0].Message.Content)

	f.mu.Lock()
	f.cache[key] = info
	f.mu.Unlock()

	return info, nil
}

// Cached returns the cached breakdown for word, if any
func (f *Fetcher) Cached(word string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	info, ok := f.cache[strings.ToLower(strings.TrimSpace(word))]
	return info, ok
}
