package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// systemPrompt instructs the model to blend Spanish into English replies
// and to tag every single Spanish word with the foreign-word markup.
const systemPrompt = `You are a friendly Spanish language learning teacher. Your role is to help users learn Spanish by blending Spanish words into English conversations.

CRITICAL FORMATTING RULES:
- Write primarily in English but mix in Spanish words naturally
- EVERY SINGLE SPANISH WORD must be formatted as: <foreign>[spanish_word]==[english_translation]</foreign>
- This includes greetings, exclamations, and ANY word in Spanish - NO EXCEPTIONS
- Keep responses SHORT (1-3 sentences max)
- Use 1-3 Spanish words per response maximum
- Choose common, useful Spanish words that fit the context naturally

EXAMPLES:
User: "Hello, I want to learn Spanish"
You: "<foreign>[¡Hola!]==[Hello!]</foreign> Welcome! I'm excited to help you learn <foreign>[español]==[Spanish]</foreign>. What would you like to start with?"

User: "I'm hungry"
You: "Oh! You could say 'Tengo <foreign>[hambre]==[hunger]</foreign>' in Spanish. What do you like to <foreign>[comer]==[eat]</foreign>?"

REMEMBER: Mark up EVERY Spanish word without exception, including ¡Hola!, ¿Cómo?, etc. Always be encouraging and focus on practical, everyday Spanish words!`

// historyLimit caps the conversation at the system message plus the most
// recent exchanges, to keep token usage bounded.
const historyLimit = 21

// CompletionClient is the slice of the OpenAI client the conversation needs.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Conversation holds the rolling message history with the AI teacher.
type Conversation struct {
	client CompletionClient
	model  string

	mu      sync.Mutex
	history []openai.ChatCompletionMessage
}

// NewConversation creates a conversation backed by the OpenAI API. An
// empty model selects the default.
func NewConversation(apiKey, model string) *Conversation {
	return NewConversationWithClient(openai.NewClient(apiKey), model)
}

// NewConversationWithClient creates a conversation with an injected client.
func NewConversationWithClient(client CompletionClient, model string) *Conversation {
	if model == "" {
		model = openai.GPT4o
	}
	return &Conversation{
		client: client,
		model:  model,
		history: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		},
	}
}

// Send appends the user message, requests a completion and appends the
// assistant reply to the history. The returned reply may contain zero or
// more foreign-word tags.
func (c *Conversation) Send(ctx context.Context, userMessage string) (string, error) {
	c.mu.Lock()
	c.history = append(c.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: strings.TrimSpace(userMessage),
	})
	messages := append([]openai.ChatCompletionMessage(nil), c.history...)
	c.mu.Unlock()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("no reply returned")
	}
	reply := resp.Choices[0].Message.Content

	c.mu.Lock()
	c.history = append(c.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: reply,
	})
	c.trimLocked()
	c.mu.Unlock()

	return reply, nil
}

// trimLocked keeps the system message plus the last historyLimit-1 entries.
func (c *Conversation) trimLocked() {
	if len(c.history) <= historyLimit {
		return
	}
	trimmed := []openai.ChatCompletionMessage{c.history[0]}
	c.history = append(trimmed, c.history[len(c.history)-(historyLimit-1):]...)
}

// Len returns the number of messages exchanged, excluding the system prompt.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history) - 1
}

// Clear resets the conversation to just the system prompt.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = c.history[:1]
}

// UserMessage translates an API error into the message shown to the
// learner.
func UserMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.Code.(type) {
		case string:
			switch code {
			case "insufficient_quota":
				return "API quota exceeded. Please check your billing."
			case "invalid_api_key":
				return "Invalid API key. Please check your configuration."
			case "rate_limit_exceeded":
				return "Too many requests. Please wait and try again."
			}
		}
	}
	return "Sorry, something went wrong. Please try again."
}
