package anki

import (
	"archive/zip"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	if gen == nil {
		t.Fatal("NewAPKGGenerator returned nil")
	}

	if gen.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", gen.deckName)
	}

	if len(gen.cards) != 0 {
		t.Errorf("Expected empty cards slice, got %d cards", len(gen.cards))
	}

	if len(gen.mediaFiles) != 0 {
		t.Errorf("Expected empty media files, got %d files", len(gen.mediaFiles))
	}
}

func TestAPKGAddCard(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	tempDir := t.TempDir()
	audioFile := filepath.Join(tempDir, "manzana.wav")
	os.WriteFile(audioFile, []byte("audio data"), 0644)

	card := Card{
		Spanish:     "manzana",
		Translation: "apple",
		Context:     "Quiero una manzana.",
		AudioFile:   audioFile,
	}

	gen.AddCard(card)

	if len(gen.cards) != 1 {
		t.Errorf("Expected 1 card, got %d", len(gen.cards))
	}

	// Media files are populated during copyMediaFiles, not AddCard
	if gen.cards[0].Spanish != "manzana" {
		t.Errorf("Expected Spanish 'manzana', got '%s'", gen.cards[0].Spanish)
	}
}

func TestGenerateAPKG(t *testing.T) {
	tempDir := t.TempDir()
	audioFile := filepath.Join(tempDir, "perro.wav")
	os.WriteFile(audioFile, []byte("wav data"), 0644)

	gen := NewAPKGGenerator("Spanish Deck")
	gen.AddCard(Card{
		Spanish:     "perro",
		Translation: "dog",
		Context:     "El perro ladra.",
		Phonetic:    "[ˈpero]",
		AudioFile:   audioFile,
	})
	gen.AddCard(Card{
		Spanish:     "gato",
		Translation: "cat",
	})

	outputPath := filepath.Join(tempDir, "deck.apkg")
	if err := gen.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG failed: %v", err)
	}

	// The package must be a zip with a collection and a media mapping
	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open apkg as zip: %v", err)
	}
	defer reader.Close()

	names := make(map[string]bool)
	for _, f := range reader.File {
		names[f.Name] = true
	}

	if !names["collection.anki2"] {
		t.Error("Missing collection.anki2 in package")
	}
	if !names["media"] {
		t.Error("Missing media mapping in package")
	}
	if !names["0"] {
		t.Error("Missing media file 0 in package")
	}
}

func TestAPKGDatabaseContents(t *testing.T) {
	tempDir := t.TempDir()

	gen := NewAPKGGenerator("Spanish Deck")
	gen.AddCard(Card{Spanish: "hola", Translation: "hello", Context: "¡Hola!"})

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := gen.createDatabase(dbPath); err != nil {
		t.Fatalf("createDatabase failed: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var noteCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&noteCount); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if noteCount != 1 {
		t.Errorf("Expected 1 note, got %d", noteCount)
	}

	// Each note gets a forward and a reverse card
	var cardCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cardCount); err != nil {
		t.Fatalf("Failed to count cards: %v", err)
	}
	if cardCount != 2 {
		t.Errorf("Expected 2 cards, got %d", cardCount)
	}

	var fields string
	if err := db.QueryRow("SELECT flds FROM notes").Scan(&fields); err != nil {
		t.Fatalf("Failed to read note fields: %v", err)
	}

	parts := strings.Split(fields, "\x1f")
	if len(parts) != 5 {
		t.Fatalf("Expected 5 note fields, got %d", len(parts))
	}
	if parts[0] != "hola" {
		t.Errorf("Expected Spanish field 'hola', got '%s'", parts[0])
	}
	if parts[1] != "hello" {
		t.Errorf("Expected Translation field 'hello', got '%s'", parts[1])
	}
	if parts[2] != "¡Hola!" {
		t.Errorf("Expected Context field '¡Hola!', got '%s'", parts[2])
	}
}

func TestAPKGMissingTranslation(t *testing.T) {
	tempDir := t.TempDir()

	gen := NewAPKGGenerator("Spanish Deck")
	gen.AddCard(Card{Spanish: "hola"})

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := gen.createDatabase(dbPath); err != nil {
		t.Fatalf("createDatabase failed: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var fields string
	if err := db.QueryRow("SELECT flds FROM notes").Scan(&fields); err != nil {
		t.Fatalf("Failed to read note fields: %v", err)
	}

	if !strings.Contains(fields, "Translation needed") {
		t.Error("Expected placeholder for missing translation")
	}
}

func TestCopyMediaFilesSkipsMissing(t *testing.T) {
	tempDir := t.TempDir()

	gen := NewAPKGGenerator("Test Deck")
	gen.AddCard(Card{Spanish: "hola", AudioFile: filepath.Join(tempDir, "missing.wav")})

	if err := gen.copyMediaFiles(tempDir); err != nil {
		t.Fatalf("copyMediaFiles failed: %v", err)
	}

	if len(gen.mediaFiles) != 0 {
		t.Errorf("Expected no media files, got %d", len(gen.mediaFiles))
	}
}
