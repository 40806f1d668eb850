package speech

import (
	"errors"
	"testing"
)

func TestDefaultProviderConfig(t *testing.T) {
	config := DefaultProviderConfig()

	if config.Provider != "gemini" {
		t.Errorf("Expected default provider 'gemini', got %q", config.Provider)
	}
	if config.GeminiVoice != "Kore" {
		t.Errorf("Expected default voice 'Kore', got %q", config.GeminiVoice)
	}
	if config.GeminiModel == "" {
		t.Error("Expected a default TTS model")
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	config := DefaultProviderConfig()

	_, err := NewProvider(config)
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("Expected ErrMissingKey for unset Gemini key, got %v", err)
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	config := &Config{Provider: "espeak"}

	_, err := NewProvider(config)
	if err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewProvider_Gemini(t *testing.T) {
	config := DefaultProviderConfig()
	config.GeminiKey = "test-key"

	provider, err := NewProvider(config)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if provider.Name() != "gemini" {
		t.Errorf("Expected provider name 'gemini', got %q", provider.Name())
	}
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("Expected provider with key to be available, got %v", err)
	}
}
