package prefetch

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/snonux/charla/internal/speech"
	"codeberg.org/snonux/charla/internal/testutil"
)

func TestWarm(t *testing.T) {
	provider := testutil.NewMockSpeechProvider()
	cache := speech.NewCache(provider)

	words := []string{"hola", "perro", "gato", "manzana", "agua"}
	result, err := Warm(context.Background(), cache, words, 2)
	if err != nil {
		t.Fatalf("Warm failed: %v", err)
	}

	if result.Warmed != 5 {
		t.Errorf("Expected 5 warmed words, got %d", result.Warmed)
	}
	if result.Skipped != 0 {
		t.Errorf("Expected 0 skipped words, got %d", result.Skipped)
	}
	if len(result.Failed) != 0 {
		t.Errorf("Expected no failures, got %v", result.Failed)
	}

	for _, word := range words {
		if !cache.Cached(word) {
			t.Errorf("Expected '%s' to be cached", word)
		}
		if provider.CallCount(word) != 1 {
			t.Errorf("Expected 1 synthesis call for '%s', got %d", word, provider.CallCount(word))
		}
	}
}

func TestWarmSkipsCached(t *testing.T) {
	provider := testutil.NewMockSpeechProvider()
	cache := speech.NewCache(provider)

	if _, err := cache.Synthesize(context.Background(), "hola"); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	result, err := Warm(context.Background(), cache, []string{"hola", "perro"}, 0)
	if err != nil {
		t.Fatalf("Warm failed: %v", err)
	}

	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped word, got %d", result.Skipped)
	}
	if result.Warmed != 1 {
		t.Errorf("Expected 1 warmed word, got %d", result.Warmed)
	}
	if provider.CallCount("hola") != 1 {
		t.Errorf("Expected no extra synthesis for cached word, got %d calls", provider.CallCount("hola"))
	}
}

func TestWarmReportsFailures(t *testing.T) {
	provider := testutil.NewMockSpeechProvider()
	provider.Errors["perro"] = errors.New("synthesis failed")
	cache := speech.NewCache(provider)

	result, err := Warm(context.Background(), cache, []string{"hola", "perro", "gato"}, 3)
	if err != nil {
		t.Fatalf("Warm failed: %v", err)
	}

	if result.Warmed != 2 {
		t.Errorf("Expected 2 warmed words, got %d", result.Warmed)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "perro" {
		t.Errorf("Expected 'perro' to fail, got %v", result.Failed)
	}
}

func TestWarmIgnoresEmptyWords(t *testing.T) {
	provider := testutil.NewMockSpeechProvider()
	cache := speech.NewCache(provider)

	result, err := Warm(context.Background(), cache, []string{"", "hola", ""}, 1)
	if err != nil {
		t.Fatalf("Warm failed: %v", err)
	}

	if result.Warmed != 1 {
		t.Errorf("Expected 1 warmed word, got %d", result.Warmed)
	}
}

func TestWarmCancelled(t *testing.T) {
	provider := testutil.NewMockSpeechProvider()
	provider.Gate = make(chan struct{})
	cache := speech.NewCache(provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Warm(ctx, cache, []string{"hola"}, 1)
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
