package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/charla/internal"
	"codeberg.org/snonux/charla/internal/anki"
	"codeberg.org/snonux/charla/internal/batch"
	"codeberg.org/snonux/charla/internal/chat"
	"codeberg.org/snonux/charla/internal/markup"
	"codeberg.org/snonux/charla/internal/phonetic"
	"codeberg.org/snonux/charla/internal/player"
	"codeberg.org/snonux/charla/internal/prefetch"
	"codeberg.org/snonux/charla/internal/quiz"
	"codeberg.org/snonux/charla/internal/speech"
	"codeberg.org/snonux/charla/internal/stats"
	"codeberg.org/snonux/charla/internal/vocabulary"
)

const (
	xpPerExchange    = 5
	xpPerQuizCorrect = 10
)

// audioPlayer abstracts playback so tests can capture instead of playing.
type audioPlayer interface {
	Play(word string, wav []byte) error
}

// Session drives an interactive conversation. All collaborators are
// injected so the loop can be tested without network or speakers.
type Session struct {
	flags        *Flags
	conversation *chat.Conversation
	tracker      *vocabulary.Tracker
	parseCache   *markup.ParseCache
	speechCache  *speech.Cache
	stats        *stats.Store
	phonetics    *phonetic.Fetcher
	player       audioPlayer

	in      io.Reader
	out     io.Writer
	scanner *bufio.Scanner
}

// NewSession wires a session from the given conversation and speech cache.
// The speech cache may be nil when audio is disabled.
func NewSession(flags *Flags, conversation *chat.Conversation, speechCache *speech.Cache) *Session {
	s := &Session{
		flags:        flags,
		conversation: conversation,
		tracker:      vocabulary.NewTracker(),
		parseCache:   markup.NewParseCache(),
		speechCache:  speechCache,
		stats:        stats.NewStore(),
		player:       player.New(),
		in:           os.Stdin,
		out:          os.Stdout,
	}
	if flags.Phonetics {
		s.phonetics = phonetic.NewFetcher(GetOpenAIKey())
	}
	return s
}

// SetIO redirects the session's input and output streams
func (s *Session) SetIO(in io.Reader, out io.Writer) {
	s.in = in
	s.out = out
}

// Tracker exposes the vocabulary collected during the session
func (s *Session) Tracker() *vocabulary.Tracker {
	return s.tracker
}

// Run starts the conversation loop and blocks until the user quits or
// input is exhausted.
func (s *Session) Run(ctx context.Context) error {
	if s.flags.WordFile != "" {
		if err := s.seedVocabulary(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, "¡Hola! Chat in English or Spanish. Type /help for commands.")

	s.scanner = bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !s.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := s.runCommand(ctx, line); quit {
				break
			}
			continue
		}

		s.sendMessage(ctx, line)
	}
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if s.flags.GenerateAnki {
		if err := s.exportAnki(ctx); err != nil {
			fmt.Fprintf(s.out, "Warning: Anki export failed: %v\n", err)
		}
	}

	fmt.Fprintf(s.out, "¡Hasta luego! You learned %d words.\n", s.tracker.Count())
	return nil
}

func (s *Session) seedVocabulary(ctx context.Context) error {
	entries, err := batch.ReadWordFile(s.flags.WordFile)
	if err != nil {
		return err
	}
	added := batch.Seed(s.tracker, entries)
	fmt.Fprintf(s.out, "Seeded %d new words from %s\n", added, s.flags.WordFile)

	if s.flags.WarmAudio && s.speechCache != nil {
		words := make([]string, len(entries))
		for i, entry := range entries {
			words[i] = entry.Spanish
		}
		result, err := prefetch.Warm(ctx, s.speechCache, words, prefetch.DefaultConcurrency)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Warmed audio for %d words", result.Warmed)
		if len(result.Failed) > 0 {
			fmt.Fprintf(s.out, " (%d failed)", len(result.Failed))
		}
		fmt.Fprintln(s.out)
	}
	return nil
}

// runCommand handles a /command line and reports whether to quit
func (s *Session) runCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "/quit", "/exit":
		return true
	case "/help":
		s.printHelp()
	case "/vocab":
		s.printVocabulary()
	case "/stats":
		s.printStats()
	case "/say":
		if len(args) == 0 {
			fmt.Fprintln(s.out, "Usage: /say <word>")
			break
		}
		s.sayWord(ctx, strings.Join(args, " "))
	case "/quiz":
		s.runQuiz()
	case "/reset":
		s.conversation.Clear()
		fmt.Fprintln(s.out, "Conversation cleared. Your vocabulary is kept.")
	default:
		fmt.Fprintf(s.out, "Unknown command %s. Type /help for commands.\n", command)
	}
	return false
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  /vocab        List learned words
  /say <word>   Pronounce a word
  /quiz         Quiz yourself on learned words
  /stats        Show streak, XP and level
  /reset        Start a fresh conversation
  /quit         Leave`)
}

func (s *Session) sendMessage(ctx context.Context, message string) {
	reply, err := s.conversation.Send(ctx, message)
	if err != nil {
		fmt.Fprintln(s.out, chat.UserMessage(err))
		return
	}

	parsed := s.parseCache.Parse(reply, internal.GenerateMessageID(reply))
	s.tracker.RecordFromText(reply)
	s.stats.AddXP(xpPerExchange)

	s.renderReply(parsed)

	if parsed.HasForeignWords && s.speechCache != nil && !s.flags.NoAudio {
		words := make([]string, 0, len(parsed.Segments))
		for _, segment := range parsed.Segments {
			if segment.Kind == markup.KindForeign {
				words = append(words, segment.Text)
			}
		}
		// Warm in the background so the prompt comes back immediately
		go func() {
			prefetch.Warm(context.WithoutCancel(ctx), s.speechCache, words, prefetch.DefaultConcurrency)
		}()
	}
}

// renderReply prints the reply with inline translations after each
// Spanish word
func (s *Session) renderReply(parsed markup.ParsedText) {
	var b strings.Builder
	for _, segment := range parsed.Segments {
		if segment.Kind == markup.KindForeign {
			fmt.Fprintf(&b, "%s [%s]", segment.Text, segment.Translation)
			continue
		}
		b.WriteString(segment.Text)
	}
	fmt.Fprintln(s.out, b.String())
}

func (s *Session) sayWord(ctx context.Context, word string) {
	if s.speechCache == nil || s.flags.NoAudio {
		fmt.Fprintln(s.out, "Audio is disabled.")
		return
	}

	wav, err := s.speechCache.Synthesize(ctx, word)
	if err != nil {
		if errors.Is(err, speech.ErrBusy) {
			fmt.Fprintf(s.out, "Audio for %q is still being generated, try again in a moment.\n", word)
			return
		}
		fmt.Fprintln(s.out, speech.UserMessage(err))
		return
	}

	if err := s.player.Play(word, wav); err != nil {
		fmt.Fprintf(s.out, "Playback failed: %v\n", err)
	}
}

func (s *Session) printVocabulary() {
	words := s.tracker.Words()
	if len(words) == 0 {
		fmt.Fprintln(s.out, "No words learned yet. Keep chatting!")
		return
	}

	fmt.Fprintf(s.out, "Learned words (%d):\n", len(words))
	for _, word := range words {
		fmt.Fprintf(s.out, "  %-20s %s", word.Word, word.Translation)
		if word.TimesEncountered > 1 {
			fmt.Fprintf(s.out, " (seen %dx)", word.TimesEncountered)
		}
		if s.phonetics != nil {
			if ipa, ok := s.phonetics.Cached(word.Word); ok {
				fmt.Fprintf(s.out, " %s", ipa)
			}
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Session) printStats() {
	snapshot := s.stats.Snapshot()
	fmt.Fprintf(s.out, "Streak: %d  XP: %d  Level: %d  Words: %d\n",
		snapshot.Streak, snapshot.XP, snapshot.Level, s.tracker.Count())
}

func (s *Session) runQuiz() {
	generator := quiz.NewGenerator(s.tracker)
	if !generator.CanStart() {
		fmt.Fprintf(s.out, "You need at least %d learned words for a quiz, you have %d.\n",
			quiz.MinWords, s.tracker.Count())
		return
	}

	if s.scanner == nil {
		s.scanner = bufio.NewScanner(s.in)
	}

	questions := generator.Generate()
	fmt.Fprintf(s.out, "Quiz time! %d questions.\n", len(questions))

	answers := make([]string, 0, len(questions))
	streak := 0
	for i, question := range questions {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, question.Prompt)
		for j, option := range question.Options {
			fmt.Fprintf(s.out, "   %d) %s\n", j+1, option)
		}
		fmt.Fprint(s.out, "? ")
		if !s.scanner.Scan() {
			break
		}
		answer := resolveAnswer(strings.TrimSpace(s.scanner.Text()), question.Options)
		answers = append(answers, answer)

		if answer == question.CorrectAnswer {
			streak++
			s.stats.AddXP(xpPerQuizCorrect)
			fmt.Fprintln(s.out, "¡Correcto!")
		} else {
			streak = 0
			fmt.Fprintf(s.out, "Not quite, it's %q.\n", question.CorrectAnswer)
		}
		s.stats.SetStreak(streak)
	}

	result := quiz.Score(questions, answers)
	fmt.Fprintf(s.out, "Score: %d/%d (%d%%)\n",
		result.CorrectAnswers, result.TotalQuestions, result.Percentage)
}

// resolveAnswer accepts either the option number or the option text
func resolveAnswer(input string, options []string) string {
	if len(input) == 1 && input[0] >= '1' && input[0] <= '9' {
		index := int(input[0] - '1')
		if index < len(options) {
			return options[index]
		}
	}
	return input
}

// exportAnki writes the session vocabulary as an Anki deck. Cached audio
// is written alongside so cards can play pronunciations.
func (s *Session) exportAnki(ctx context.Context) error {
	words := s.tracker.Words()
	if len(words) == 0 {
		fmt.Fprintln(s.out, "Nothing to export.")
		return nil
	}

	if err := os.MkdirAll(s.flags.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	audioDir := ""
	if s.speechCache != nil && !s.flags.NoAudio {
		audioDir = filepath.Join(s.flags.OutputDir, "audio")
		if err := s.writeAudioFiles(audioDir, words); err != nil {
			return err
		}
	}

	var phonetics map[string]string
	if s.phonetics != nil {
		phonetics = s.fetchPhonetics(ctx, words)
	}

	cards := anki.CardsFromWords(words, audioDir, phonetics)

	if s.flags.AnkiCSV {
		outputPath := filepath.Join(s.flags.OutputDir, "charla_anki.csv")
		generator := anki.NewGenerator(&anki.GeneratorOptions{
			OutputPath:     outputPath,
			MediaFolder:    audioDir,
			IncludeHeaders: true,
		})
		for _, card := range cards {
			generator.AddCard(card)
		}
		if err := generator.GenerateCSV(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Anki CSV created: %s\n", outputPath)
		return nil
	}

	outputPath := filepath.Join(s.flags.OutputDir, "charla.apkg")
	generator := anki.NewAPKGGenerator(s.flags.DeckName)
	for _, card := range cards {
		generator.AddCard(card)
	}
	if err := generator.GenerateAPKG(outputPath); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Anki package created: %s\n", outputPath)
	return nil
}

func (s *Session) writeAudioFiles(dir string, words []vocabulary.LearnedWord) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}
	for _, word := range words {
		wav, ok := s.speechCache.Get(word.Word)
		if !ok {
			continue
		}
		path := filepath.Join(dir, internal.SanitizeFilename(word.Word)+".wav")
		if err := os.WriteFile(path, wav, 0644); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}
	}
	return nil
}

func (s *Session) fetchPhonetics(ctx context.Context, words []vocabulary.LearnedWord) map[string]string {
	phonetics := make(map[string]string, len(words))
	for _, word := range words {
		ipa, err := s.phonetics.Fetch(ctx, word.Word)
		if err != nil {
			fmt.Fprintf(s.out, "Warning: no phonetics for %q: %v\n", word.Word, err)
			continue
		}
		phonetics[word.Word] = ipa
	}
	return phonetics
}
