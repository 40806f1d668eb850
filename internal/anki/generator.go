package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/charla/internal"
	"codeberg.org/snonux/charla/internal/vocabulary"
)

// Card represents a single Anki flashcard built from a learned word.
type Card struct {
	Spanish     string // The Spanish word/phrase
	Translation string // English translation
	Context     string // Sentence the word was learned from
	Phonetic    string // IPA transcription, optional
	AudioFile   string // Path to audio file, optional
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	MediaFolder    string // Folder containing media files
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "charla_anki.csv",
		MediaFolder:    ".",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GetCards returns a slice of all cards for modification
func (g *Generator) GetCards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if g.options.IncludeHeaders {
		headers := []string{"Spanish", "Translation", "Context", "Phonetic", "Audio"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Spanish,
			card.Translation,
			card.Context,
			card.Phonetic,
			g.formatAudioField(card.AudioFile),
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	return nil
}

// formatAudioField formats the audio file reference for Anki.
// Anki expects [sound:filename.wav].
func (g *Generator) formatAudioField(audioFile string) string {
	if audioFile == "" {
		return ""
	}
	return fmt.Sprintf("[sound:%s]", filepath.Base(audioFile))
}

// CardsFromWords converts learned words into cards. When audioDir is
// non-empty, a word whose sanitized name matches a .wav file in that
// directory gets the file attached. Phonetics are matched by the word's
// canonical spelling and may be nil.
func CardsFromWords(words []vocabulary.LearnedWord, audioDir string, phonetics map[string]string) []Card {
	cards := make([]Card, 0, len(words))
	for _, word := range words {
		card := Card{
			Spanish:     word.Word,
			Translation: word.Translation,
			Context:     word.Context,
		}
		if phonetics != nil {
			card.Phonetic = phonetics[word.Word]
		}
		if audioDir != "" {
			path := filepath.Join(audioDir, internal.SanitizeFilename(word.Word)+".wav")
			if _, err := os.Stat(path); err == nil {
				card.AudioFile = path
			}
		}
		cards = append(cards, card)
	}
	return cards
}
