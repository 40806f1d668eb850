package anki

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/charla/internal/vocabulary"
)

func TestDefaultGeneratorOptions(t *testing.T) {
	opts := DefaultGeneratorOptions()

	if opts.OutputPath != "charla_anki.csv" {
		t.Errorf("Expected output path 'charla_anki.csv', got '%s'", opts.OutputPath)
	}

	if opts.MediaFolder != "." {
		t.Errorf("Expected media folder '.', got '%s'", opts.MediaFolder)
	}

	if !opts.IncludeHeaders {
		t.Error("Expected IncludeHeaders to be true")
	}
}

func TestNewGenerator(t *testing.T) {
	// Test with nil options
	gen := NewGenerator(nil)
	if gen == nil {
		t.Fatal("NewGenerator returned nil")
	}
	if gen.options == nil {
		t.Error("Generator options should not be nil")
	}

	// Test with custom options
	opts := &GeneratorOptions{
		OutputPath: "custom.csv",
	}
	gen = NewGenerator(opts)
	if gen.options.OutputPath != "custom.csv" {
		t.Errorf("Expected custom output path, got '%s'", gen.options.OutputPath)
	}
}

func TestAddCard(t *testing.T) {
	gen := NewGenerator(nil)

	card := Card{
		Spanish:     "manzana",
		Translation: "apple",
		Context:     "Quiero una manzana.",
		Phonetic:    "[manˈθana]",
		AudioFile:   "manzana.wav",
	}

	gen.AddCard(card)

	if len(gen.cards) != 1 {
		t.Errorf("Expected 1 card, got %d", len(gen.cards))
	}

	if gen.cards[0].Spanish != "manzana" {
		t.Errorf("Expected Spanish 'manzana', got '%s'", gen.cards[0].Spanish)
	}
}

func TestGenerateCSV(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "out.csv")

	gen := NewGenerator(&GeneratorOptions{
		OutputPath:     outputPath,
		IncludeHeaders: true,
	})
	gen.AddCard(Card{
		Spanish:     "perro",
		Translation: "dog",
		Context:     "El perro ladra.",
		AudioFile:   filepath.Join(tempDir, "perro.wav"),
	})
	gen.AddCard(Card{
		Spanish:     "gato",
		Translation: "cat",
	})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records (header + 2 cards), got %d", len(records))
	}

	if records[0][0] != "Spanish" {
		t.Errorf("Expected header 'Spanish', got '%s'", records[0][0])
	}

	if records[1][0] != "perro" {
		t.Errorf("Expected first card 'perro', got '%s'", records[1][0])
	}

	if records[1][4] != "[sound:perro.wav]" {
		t.Errorf("Expected audio field '[sound:perro.wav]', got '%s'", records[1][4])
	}

	if records[2][4] != "" {
		t.Errorf("Expected empty audio field, got '%s'", records[2][4])
	}
}

func TestGenerateCSVWithoutHeaders(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "out.csv")

	gen := NewGenerator(&GeneratorOptions{OutputPath: outputPath})
	gen.AddCard(Card{Spanish: "hola", Translation: "hello"})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if strings.Contains(string(data), "Spanish,Translation") {
		t.Error("CSV should not contain headers")
	}
}

func TestFormatAudioField(t *testing.T) {
	gen := NewGenerator(nil)

	if got := gen.formatAudioField(""); got != "" {
		t.Errorf("Expected empty string, got '%s'", got)
	}

	if got := gen.formatAudioField("/tmp/audio/hola.wav"); got != "[sound:hola.wav]" {
		t.Errorf("Expected '[sound:hola.wav]', got '%s'", got)
	}
}

func TestCardsFromWords(t *testing.T) {
	tempDir := t.TempDir()
	audioPath := filepath.Join(tempDir, "perro.wav")
	if err := os.WriteFile(audioPath, []byte("wav data"), 0644); err != nil {
		t.Fatalf("Failed to write audio file: %v", err)
	}

	now := time.Now()
	words := []vocabulary.LearnedWord{
		{Word: "perro", Translation: "dog", Context: "El perro ladra.", DateAdded: now},
		{Word: "gato", Translation: "cat", DateAdded: now},
	}
	phonetics := map[string]string{"perro": "[ˈpero]"}

	cards := CardsFromWords(words, tempDir, phonetics)

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}

	if cards[0].AudioFile != audioPath {
		t.Errorf("Expected audio file '%s', got '%s'", audioPath, cards[0].AudioFile)
	}

	if cards[0].Phonetic != "[ˈpero]" {
		t.Errorf("Expected phonetic '[ˈpero]', got '%s'", cards[0].Phonetic)
	}

	if cards[1].AudioFile != "" {
		t.Errorf("Expected no audio file for 'gato', got '%s'", cards[1].AudioFile)
	}

	if cards[1].Context != "" {
		t.Errorf("Expected empty context, got '%s'", cards[1].Context)
	}
}

func TestCardsFromWordsNoAudioDir(t *testing.T) {
	words := []vocabulary.LearnedWord{{Word: "hola", Translation: "hello"}}

	cards := CardsFromWords(words, "", nil)

	if len(cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(cards))
	}
	if cards[0].AudioFile != "" {
		t.Errorf("Expected no audio file, got '%s'", cards[0].AudioFile)
	}
	if cards[0].Phonetic != "" {
		t.Errorf("Expected no phonetic, got '%s'", cards[0].Phonetic)
	}
}
