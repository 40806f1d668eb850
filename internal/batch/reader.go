package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/charla/internal/vocabulary"
)

// WordEntry represents a seed word with optional translation
type WordEntry struct {
	Spanish     string
	Translation string
}

// ReadWordFile reads seed words from a file, one per line.
// Supported formats:
// - Spanish word only: "manzana"
// - With translation: "manzana = apple"
// Blank lines and lines starting with '#' are skipped.
func ReadWordFile(filename string) ([]WordEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}
	defer file.Close()

	var entries []WordEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			spanish := strings.TrimSpace(parts[0])
			translation := strings.TrimSpace(parts[1])
			if spanish == "" {
				// No word to seed, skip
				continue
			}
			entries = append(entries, WordEntry{
				Spanish:     spanish,
				Translation: translation,
			})
			continue
		}

		entries = append(entries, WordEntry{Spanish: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}

	return entries, nil
}

// Seed records all entries in the tracker and returns the number of
// newly added words.
func Seed(tracker *vocabulary.Tracker, entries []WordEntry) int {
	added := 0
	for _, entry := range entries {
		if !tracker.Has(entry.Spanish) {
			added++
		}
		tracker.Upsert(entry.Spanish, entry.Translation, "")
	}
	return added
}
