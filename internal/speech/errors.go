package speech

import (
	"errors"
	"strings"
)

// Sentinel errors for the speech layer.
var (
	// ErrBusy signals that a synthesis request for the same word is
	// already in flight. Not a failure; callers show a transient
	// "please wait" state instead of retrying.
	ErrBusy = errors.New("audio generation already in progress")

	// ErrMissingKey means the Google API key is not configured.
	ErrMissingKey = errors.New("Google API key not configured")

	// ErrNoAudio means the provider responded without an audio payload.
	ErrNoAudio = errors.New("no audio data received")
)

// Category classifies a synthesis failure for user-facing message selection.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryConfig
	CategoryRateLimited
	CategoryBusy
)

// Classify maps a synthesis error onto the message taxonomy. It inspects
// error text for provider status markers the same way the API surfaces
// them; unrecognized errors are generic.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryGeneric
	case errors.Is(err, ErrBusy):
		return CategoryBusy
	case errors.Is(err, ErrMissingKey):
		return CategoryConfig
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "SERVICE_DISABLED") || strings.Contains(msg, "403"):
		return CategoryConfig
	case strings.Contains(msg, "API key") || strings.Contains(msg, "API_KEY_INVALID"):
		return CategoryConfig
	case strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota"):
		return CategoryRateLimited
	default:
		return CategoryGeneric
	}
}

// UserMessage translates a synthesis error into the message shown to the
// learner. Never exposes raw provider errors.
func UserMessage(err error) string {
	switch Classify(err) {
	case CategoryBusy:
		return "Audio is being generated, please wait..."
	case CategoryConfig:
		if errors.Is(err, ErrMissingKey) {
			return "Gemini API key not found. Please set GEMINI_API_KEY or audio.gemini_key in your configuration."
		}
		return "Speech service not enabled or key invalid. Check your Google Cloud settings."
	case CategoryRateLimited:
		return "Too many requests. Please wait and try again."
	default:
		return "Failed to generate pronunciation. Please try again."
	}
}
