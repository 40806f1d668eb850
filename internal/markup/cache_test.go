package markup

import (
	"sync"
	"testing"
)

func TestParseCache_MemoizesByID(t *testing.T) {
	cache := NewParseCache()

	first := cache.Parse("Say <foreign>[hola]==[hello]</foreign>", "msg1")
	second := cache.Parse("different text entirely", "msg1")

	// Same ID returns the cached result regardless of the text argument;
	// callers re-parse a previously seen ID only from the same text.
	if len(second.Segments) != len(first.Segments) {
		t.Fatal("Cached result not returned for known ID")
	}
	if second.Segments[1].Text != "hola" {
		t.Errorf("Expected cached foreign segment, got %+v", second.Segments[1])
	}

	if cache.Len() != 1 {
		t.Errorf("Expected 1 cached entry, got %d", cache.Len())
	}
}

func TestParseCache_EmptyIDNotCached(t *testing.T) {
	cache := NewParseCache()

	cache.Parse("some text", "")
	if cache.Len() != 0 {
		t.Errorf("Expected no cached entries for empty ID, got %d", cache.Len())
	}
}

func TestParseCache_Reset(t *testing.T) {
	cache := NewParseCache()
	cache.Parse("a", "1")
	cache.Parse("b", "2")

	cache.Reset()
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after reset, got %d entries", cache.Len())
	}
}

func TestParseCache_ConcurrentAccess(t *testing.T) {
	cache := NewParseCache()
	text := "Hola <foreign>[amigo]==[friend]</foreign>"

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := cache.Parse(text, "shared")
			if !result.HasForeignWords {
				t.Error("Expected foreign words in parsed result")
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("Expected 1 cached entry after concurrent parses, got %d", cache.Len())
	}
}
