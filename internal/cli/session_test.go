package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/charla/internal/chat"
	"codeberg.org/snonux/charla/internal/speech"
	"codeberg.org/snonux/charla/internal/testutil"
)

// capturePlayer records playback requests instead of playing audio
type capturePlayer struct {
	words []string
}

func (p *capturePlayer) Play(word string, wav []byte) error {
	p.words = append(p.words, word)
	return nil
}

func newTestSession(t *testing.T, flags *Flags, replies []string, withAudio bool) (*Session, *bytes.Buffer, *capturePlayer) {
	t.Helper()

	client := &testutil.MockChatClient{Replies: replies}
	conversation := chat.NewConversationWithClient(client, "")

	var cache *speech.Cache
	if withAudio {
		cache = speech.NewCache(testutil.NewMockSpeechProvider())
	}

	session := NewSession(flags, conversation, cache)
	out := &bytes.Buffer{}
	player := &capturePlayer{}
	session.player = player
	return session, out, player
}

func runSession(t *testing.T, session *Session, out *bytes.Buffer, input string) {
	t.Helper()
	session.SetIO(strings.NewReader(input), out)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestSessionChatFlow(t *testing.T) {
	flags := NewFlags()
	flags.NoAudio = true

	reply := "You could say " + testutil.TaggedMessage("tengo hambre", "I am hungry") + " here."
	session, out, _ := newTestSession(t, flags, []string{reply}, false)

	runSession(t, session, out, "how do I say I'm hungry?\n/vocab\n/quit\n")

	output := out.String()
	if !strings.Contains(output, "tengo hambre [I am hungry]") {
		t.Errorf("Expected inline translation in output, got:\n%s", output)
	}
	if !strings.Contains(output, "Learned words (1):") {
		t.Errorf("Expected vocabulary listing, got:\n%s", output)
	}
	if !session.Tracker().Has("tengo hambre") {
		t.Error("Expected 'tengo hambre' to be tracked")
	}
}

func TestSessionChatError(t *testing.T) {
	flags := NewFlags()
	flags.NoAudio = true

	session, out, _ := newTestSession(t, flags, nil, false)
	client := &testutil.MockChatClient{Err: os.ErrDeadlineExceeded}
	conversation := chat.NewConversationWithClient(client, "")
	session.conversation = conversation

	runSession(t, session, out, "hola\n/quit\n")

	if !strings.Contains(out.String(), "something went wrong") {
		t.Errorf("Expected a user-facing error message, got:\n%s", out.String())
	}
}

func TestSessionSayCommand(t *testing.T) {
	flags := NewFlags()
	session, out, player := newTestSession(t, flags, nil, true)

	runSession(t, session, out, "/say hola\n/quit\n")

	if len(player.words) != 1 || player.words[0] != "hola" {
		t.Errorf("Expected playback of 'hola', got %v", player.words)
	}
}

func TestSessionSayWithoutAudio(t *testing.T) {
	flags := NewFlags()
	flags.NoAudio = true
	session, out, player := newTestSession(t, flags, nil, false)

	runSession(t, session, out, "/say hola\n/quit\n")

	if len(player.words) != 0 {
		t.Errorf("Expected no playback, got %v", player.words)
	}
	if !strings.Contains(out.String(), "Audio is disabled.") {
		t.Errorf("Expected audio disabled notice, got:\n%s", out.String())
	}
}

func TestSessionQuizNeedsWords(t *testing.T) {
	flags := NewFlags()
	flags.NoAudio = true
	session, out, _ := newTestSession(t, flags, nil, false)

	runSession(t, session, out, "/quiz\n/quit\n")

	if !strings.Contains(out.String(), "at least 5") {
		t.Errorf("Expected minimum word count notice, got:\n%s", out.String())
	}
}

func TestSessionUnknownCommand(t *testing.T) {
	flags := NewFlags()
	flags.NoAudio = true
	session, out, _ := newTestSession(t, flags, nil, false)

	runSession(t, session, out, "/frobnicate\n/quit\n")

	if !strings.Contains(out.String(), "Unknown command /frobnicate") {
		t.Errorf("Expected unknown command notice, got:\n%s", out.String())
	}
}

func TestSessionStatsAfterExchange(t *testing.T) {
	flags := NewFlags()
	flags.NoAudio = true
	session, out, _ := newTestSession(t, flags, []string{"¡Muy bien!"}, false)

	runSession(t, session, out, "hola\n/stats\n/quit\n")

	if !strings.Contains(out.String(), "XP: 5") {
		t.Errorf("Expected 5 XP after one exchange, got:\n%s", out.String())
	}
}

func TestSessionReset(t *testing.T) {
	flags := NewFlags()
	flags.NoAudio = true
	session, out, _ := newTestSession(t, flags, []string{"Hola."}, false)

	runSession(t, session, out, "hola\n/reset\n/quit\n")

	if !strings.Contains(out.String(), "Conversation cleared.") {
		t.Errorf("Expected reset notice, got:\n%s", out.String())
	}
	if session.conversation.Len() != 0 {
		t.Errorf("Expected empty history after reset, got %d", session.conversation.Len())
	}
}

func TestSessionSeedsVocabulary(t *testing.T) {
	tmpDir := t.TempDir()
	wordFile := filepath.Join(tmpDir, "words.txt")
	if err := os.WriteFile(wordFile, []byte("manzana = apple\nperro = dog\n"), 0644); err != nil {
		t.Fatalf("Failed to write word file: %v", err)
	}

	flags := NewFlags()
	flags.NoAudio = true
	flags.WordFile = wordFile
	session, out, _ := newTestSession(t, flags, nil, false)

	runSession(t, session, out, "/quit\n")

	if !strings.Contains(out.String(), "Seeded 2 new words") {
		t.Errorf("Expected seeding notice, got:\n%s", out.String())
	}
	if session.Tracker().Count() != 2 {
		t.Errorf("Expected 2 words tracked, got %d", session.Tracker().Count())
	}
}

func TestSessionWarmsSeededAudio(t *testing.T) {
	tmpDir := t.TempDir()
	wordFile := filepath.Join(tmpDir, "words.txt")
	if err := os.WriteFile(wordFile, []byte("manzana = apple\n"), 0644); err != nil {
		t.Fatalf("Failed to write word file: %v", err)
	}

	flags := NewFlags()
	flags.WordFile = wordFile
	flags.WarmAudio = true
	session, out, _ := newTestSession(t, flags, nil, true)

	runSession(t, session, out, "/quit\n")

	if !strings.Contains(out.String(), "Warmed audio for 1 words") {
		t.Errorf("Expected warm-up notice, got:\n%s", out.String())
	}
	if !session.speechCache.Cached("manzana") {
		t.Error("Expected 'manzana' audio to be cached")
	}
}

func TestSessionAnkiCSVExport(t *testing.T) {
	tmpDir := t.TempDir()
	wordFile := filepath.Join(tmpDir, "words.txt")
	if err := os.WriteFile(wordFile, []byte("manzana = apple\n"), 0644); err != nil {
		t.Fatalf("Failed to write word file: %v", err)
	}

	flags := NewFlags()
	flags.NoAudio = true
	flags.WordFile = wordFile
	flags.GenerateAnki = true
	flags.AnkiCSV = true
	flags.OutputDir = filepath.Join(tmpDir, "out")
	session, out, _ := newTestSession(t, flags, nil, false)

	runSession(t, session, out, "/quit\n")

	csvPath := filepath.Join(flags.OutputDir, "charla_anki.csv")
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Expected CSV export at %s: %v", csvPath, err)
	}
	if !strings.Contains(string(data), "manzana") {
		t.Errorf("Expected 'manzana' in CSV, got:\n%s", data)
	}
}
