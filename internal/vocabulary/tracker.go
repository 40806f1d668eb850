package vocabulary

import (
	"sort"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/charla/internal/markup"
)

// LearnedWord is one tracked vocabulary entry.
type LearnedWord struct {
	Word             string    // surface form from the first encounter
	Translation      string    // translation from the first encounter
	Context          string    // most recent sentence the word appeared in
	DateAdded        time.Time // set once, never updated
	TimesEncountered int
}

type entry struct {
	word  LearnedWord
	order int // insertion order, breaks DateAdded ties
}

// Tracker is the in-memory word store. All mutation goes through a single
// mutex: two concurrent upserts of the same new word must not both create
// an entry.
type Tracker struct {
	mu        sync.RWMutex
	words     map[string]*entry
	nextOrder int
	now       func() time.Time
}

// NewTracker creates an empty vocabulary tracker.
func NewTracker() *Tracker {
	return &Tracker{
		words: make(map[string]*entry),
		now:   time.Now,
	}
}

// RecordFromText extracts every tagged word from a chat message and
// upserts it, using the full message as context.
func (t *Tracker) RecordFromText(text string) {
	for _, pair := range markup.ExtractPairs(text) {
		t.Upsert(pair.Word, pair.Translation, text)
	}
}

// Upsert adds a word or records another encounter of it. The key is the
// lowercased, trimmed word. On repeat encounters only Context and
// TimesEncountered change; Word, Translation and DateAdded keep their
// first-encounter values.
func (t *Tracker) Upsert(word, translation, context string) {
	key := normalizeKey(word)

	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.words[key]; ok {
		e.word.TimesEncountered++
		e.word.Context = context
		return
	}

	t.words[key] = &entry{
		word: LearnedWord{
			Word:             word,
			Translation:      translation,
			Context:          context,
			DateAdded:        t.now(),
			TimesEncountered: 1,
		},
		order: t.nextOrder,
	}
	t.nextOrder++
}

// Words returns all learned words, most recently added first. Entries
// added at the same instant list the later insertion first.
func (t *Tracker) Words() []LearnedWord {
	t.mu.RLock()
	entries := make([]*entry, 0, len(t.words))
	for _, e := range t.words {
		entries = append(entries, e)
	}
	t.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].word.DateAdded.Equal(entries[j].word.DateAdded) {
			return entries[i].order > entries[j].order
		}
		return entries[i].word.DateAdded.After(entries[j].word.DateAdded)
	})

	words := make([]LearnedWord, len(entries))
	for i, e := range entries {
		words[i] = e.word
	}
	return words
}

// Get returns the entry for word, if tracked.
func (t *Tracker) Get(word string) (LearnedWord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.words[normalizeKey(word)]
	if !ok {
		return LearnedWord{}, false
	}
	return e.word, true
}

// Count returns the number of distinct tracked words.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.words)
}

// Has reports whether word is tracked, case-insensitively.
func (t *Tracker) Has(word string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.words[normalizeKey(word)]
	return ok
}

// Reset clears all entries. Used by the start-over flow.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.words = make(map[string]*entry)
	t.nextOrder = 0
}

func normalizeKey(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
