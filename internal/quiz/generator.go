// Package quiz builds multiple-choice vocabulary quizzes from the words a
// learner has encountered in chat.
package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"codeberg.org/snonux/charla/internal/vocabulary"
)

// MinWords is the vocabulary size required before a quiz can start.
const MinWords = 5

// maxQuestions caps a quiz at the most recently learned words.
const maxQuestions = 10

// Direction is the translation direction of one question.
type Direction string

const (
	SpanishToEnglish Direction = "spanish-to-english"
	EnglishToSpanish Direction = "english-to-spanish"
)

// Question is one multiple-choice quiz question.
type Question struct {
	ID            string
	Direction     Direction
	Prompt        string
	CorrectAnswer string
	Options       []string
	Word          vocabulary.LearnedWord
}

// Result summarizes a completed quiz.
type Result struct {
	TotalQuestions int
	CorrectAnswers int
	Percentage     int
	CompletedAt    time.Time
}

// Generator builds quizzes from a vocabulary tracker.
type Generator struct {
	tracker *vocabulary.Tracker
	rng     *rand.Rand
}

// NewGenerator creates a quiz generator.
func NewGenerator(tracker *vocabulary.Tracker) *Generator {
	return &Generator{
		tracker: tracker,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CanStart reports whether enough words have been learned for a quiz.
func (g *Generator) CanStart() bool {
	return g.tracker.Count() >= MinWords
}

// Generate builds a shuffled quiz of up to ten questions from the most
// recently learned words. Returns nil when the vocabulary is too small.
func (g *Generator) Generate() []Question {
	words := g.tracker.Words()
	if len(words) < MinWords {
		return nil
	}

	pool := words
	if len(pool) > maxQuestions {
		pool = pool[:maxQuestions]
	}

	questions := make([]Question, 0, len(pool))
	for i, word := range pool {
		direction := SpanishToEnglish
		if g.rng.Intn(2) == 0 {
			direction = EnglishToSpanish
		}

		q := g.buildQuestion(word, words, direction)
		q.ID = fmt.Sprintf("q_%d_%d", i, time.Now().UnixMilli())
		questions = append(questions, q)
	}

	g.shuffleQuestions(questions)
	return questions
}

// buildQuestion assembles one question with up to two distractors drawn
// from the rest of the vocabulary.
func (g *Generator) buildQuestion(target vocabulary.LearnedWord, all []vocabulary.LearnedWord, direction Direction) Question {
	prompt, correct := target.Word, target.Translation
	if direction == EnglishToSpanish {
		prompt, correct = target.Translation, target.Word
	}

	var distractors []string
	for _, w := range all {
		if w.Word == target.Word {
			continue
		}
		if direction == SpanishToEnglish {
			distractors = append(distractors, w.Translation)
		} else {
			distractors = append(distractors, w.Word)
		}
	}
	g.shuffleStrings(distractors)
	if len(distractors) > 2 {
		distractors = distractors[:2]
	}

	options := append([]string{correct}, distractors...)
	g.shuffleStrings(options)

	return Question{
		Direction:     direction,
		Prompt:        prompt,
		CorrectAnswer: correct,
		Options:       options,
		Word:          target,
	}
}

// Score tallies the answers against the questions. Missing answers count
// as wrong.
func Score(questions []Question, answers []string) Result {
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	percentage := 0
	if len(questions) > 0 {
		percentage = int(float64(correct)/float64(len(questions))*100 + 0.5)
	}

	return Result{
		TotalQuestions: len(questions),
		CorrectAnswers: correct,
		Percentage:     percentage,
		CompletedAt:    time.Now(),
	}
}

// Fisher-Yates shuffles.

func (g *Generator) shuffleStrings(s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func (g *Generator) shuffleQuestions(q []Question) {
	for i := len(q) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		q[i], q[j] = q[j], q[i]
	}
}
