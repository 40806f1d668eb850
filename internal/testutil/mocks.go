package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// MockSpeechProvider mocks a speech provider for testing. It records every
// call and can be scripted with per-word PCM payloads, errors, or a gate
// that holds calls open to simulate slow synthesis.
type MockSpeechProvider struct {
	mu        sync.Mutex
	PCM       map[string][]byte
	Errors    map[string]error
	calls     []string
	callCount map[string]int

	// Gate, when set, blocks Synthesize until the channel is closed.
	Gate chan struct{}
}

// NewMockSpeechProvider creates a mock with empty scripts
func NewMockSpeechProvider() *MockSpeechProvider {
	return &MockSpeechProvider{
		PCM:       make(map[string][]byte),
		Errors:    make(map[string]error),
		callCount: make(map[string]int),
	}
}

// Synthesize returns the scripted payload or error for word
func (m *MockSpeechProvider) Synthesize(ctx context.Context, word string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, fmt.Sprintf("Synthesize: %s", word))
	m.callCount[word]++
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.Errors[word]; ok {
		return nil, err
	}
	if pcm, ok := m.PCM[word]; ok {
		return pcm, nil
	}

	// Default payload: two silent 16-bit samples
	return []byte{0x00, 0x00, 0x00, 0x00}, nil
}

// Name returns the provider name
func (m *MockSpeechProvider) Name() string {
	return "mock"
}

// IsAvailable always succeeds
func (m *MockSpeechProvider) IsAvailable() error {
	return nil
}

// Calls returns a copy of the recorded call log
func (m *MockSpeechProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many times word was synthesized
func (m *MockSpeechProvider) CallCount(word string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount[word]
}

// MockChatClient mocks the OpenAI chat completion client. Replies are
// consumed in order; when exhausted the scripted error or a canned reply
// is returned.
type MockChatClient struct {
	mu      sync.Mutex
	Replies []string
	Err     error
	Requests []openai.ChatCompletionRequest
}

// CreateChatCompletion returns the next scripted reply
func (m *MockChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)

	if m.Err != nil {
		return openai.ChatCompletionResponse{}, m.Err
	}

	reply := "mock reply"
	if len(m.Replies) > 0 {
		reply = m.Replies[0]
		m.Replies = m.Replies[1:]
	}

	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: reply,
			}},
		},
	}, nil
}

// LastRequest returns the most recent recorded request
func (m *MockChatClient) LastRequest() (openai.ChatCompletionRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Requests) == 0 {
		return openai.ChatCompletionRequest{}, false
	}
	return m.Requests[len(m.Requests)-1], true
}
