// Package stats keeps the learner's session statistics: daily streak,
// experience points and level.
package stats

import "sync"

// xpPerLevel is how much XP each level requires.
const xpPerLevel = 100

// Statistics is a snapshot of the learner's progress.
type Statistics struct {
	Streak int
	XP     int
	Level  int
}

// Store holds the learner statistics for one session.
type Store struct {
	mu    sync.Mutex
	stats Statistics
}

// NewStore creates a zeroed statistics store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current statistics.
func (s *Store) Snapshot() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// SetStreak sets the streak, clamped at zero.
func (s *Store) SetStreak(value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Streak = max(0, value)
}

// AddXP adds experience points and levels up at every full hundred.
// Levels are never taken away by adding XP.
func (s *Store) AddXP(points int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.XP += points
	if level := s.stats.XP / xpPerLevel; level > s.stats.Level {
		s.stats.Level = level
	}
}

// SetXP sets XP directly (clamped at zero) and recomputes the level.
func (s *Store) SetXP(value int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.XP = max(0, value)
	s.stats.Level = s.stats.XP / xpPerLevel
}

// SetLevel sets the level directly, clamped at zero.
func (s *Store) SetLevel(value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Level = max(0, value)
}

// Reset zeroes all statistics. Used by the start-over flow.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = Statistics{}
}
