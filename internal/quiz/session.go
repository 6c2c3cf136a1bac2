// Package quiz implements the lifecycle of a single quiz attempt: generation,
// answer collection, grading, persistence, and reset.
package quiz

import (
	"errors"
	"fmt"

	"github.com/pavelanni/tutor/internal/model"
)

// Policy constants. These are fixed by design, not derived.
const (
	// NumQuestions is the number of questions in every quiz.
	NumQuestions = 8
	// PassThreshold is the minimum correct count for a "mastered" outcome.
	PassThreshold = 5
	// NumOptions is the number of answer options per question.
	NumOptions = 4
)

// State is the lifecycle state of a quiz session.
type State string

const (
	// StateUninitialized means no quiz has been generated for the topic yet.
	StateUninitialized State = "uninitialized"
	// StateGenerating means a generation request is in flight.
	StateGenerating State = "generating"
	// StateReady means questions are loaded and nothing has been answered.
	StateReady State = "ready"
	// StateAnswering means at least one answer has been recorded.
	StateAnswering State = "answering"
	// StateGraded means the quiz has been submitted and scored.
	StateGraded State = "graded"
)

// ErrNotReady is returned when an operation requires loaded questions.
var ErrNotReady = errors.New("quiz has no questions loaded")

// ProgressRecorder persists one graded attempt. *store.Store satisfies it.
type ProgressRecorder interface {
	RecordProgress(userID int64, topic string, score int) error
}

// Session is the state machine for one quiz attempt. It is private to one
// browser session and never shared, so it carries no locking of its own.
type Session struct {
	userID int64
	age    int
	topic  string

	items     []model.QuizItem
	answers   map[int]string // question index -> full option text as selected
	state     State
	score     int
	submitted bool
	recorded  bool
}

// NewSession creates an empty session for a topic. The account's age travels
// with the session so generation can pick the right tone.
func NewSession(userID int64, age int, topic string) *Session {
	return &Session{
		userID:  userID,
		age:     age,
		topic:   topic,
		answers: make(map[int]string),
		state:   StateUninitialized,
	}
}

// Topic returns the session's topic.
func (s *Session) Topic() string { return s.topic }

// Age returns the owning account's age.
func (s *Session) Age() int { return s.age }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Items returns the loaded questions (nil while uninitialized).
func (s *Session) Items() []model.QuizItem { return s.items }

// Answer returns the recorded answer text for a question index.
func (s *Session) Answer(i int) string { return s.answers[i] }

// Answered returns how many questions have a recorded answer.
func (s *Session) Answered() int { return len(s.answers) }

// Submitted reports whether the session has been graded.
func (s *Session) Submitted() bool { return s.submitted }

// BeginGeneration marks the session as waiting for quiz content.
func (s *Session) BeginGeneration() {
	s.state = StateGenerating
}

// Load installs a generated question set and moves the session to Ready.
// A set of the wrong size is rejected and the session returns to
// Uninitialized, as does an explicit nil from a failed generation.
func (s *Session) Load(items []model.QuizItem) error {
	if len(items) != NumQuestions {
		s.state = StateUninitialized
		if len(items) == 0 {
			return ErrNotReady
		}
		return fmt.Errorf("expected %d questions, got %d", NumQuestions, len(items))
	}
	s.items = items
	s.answers = make(map[int]string)
	s.submitted = false
	s.recorded = false
	s.score = 0
	s.state = StateReady
	return nil
}

// FailGeneration returns the session to Uninitialized after a generation
// error so the user can retry.
func (s *Session) FailGeneration() {
	s.items = nil
	s.state = StateUninitialized
}

// SelectAnswer records the user's choice for one question. The full option
// text is stored, label prefix included: grading is literal string equality,
// so two options differing only in label remain distinguishable.
func (s *Session) SelectAnswer(index int, option string) error {
	if s.items == nil {
		return ErrNotReady
	}
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("question index %d out of range", index)
	}
	if s.submitted {
		return errors.New("quiz already submitted")
	}
	s.answers[index] = option
	s.state = StateAnswering
	return nil
}

// Submit grades the quiz and records the result. Grading compares each
// recorded answer against the option at the item's correct index and counts
// exact matches. The progress record is appended at most once: re-rendering
// a graded quiz recomputes the same score without touching the store again.
func (s *Session) Submit(rec ProgressRecorder) (int, error) {
	if s.items == nil {
		return 0, ErrNotReady
	}

	s.score = s.grade()
	s.submitted = true
	s.state = StateGraded

	if !s.recorded {
		if err := rec.RecordProgress(s.userID, s.topic, s.score); err != nil {
			return s.score, fmt.Errorf("record progress: %w", err)
		}
		s.recorded = true
	}
	return s.score, nil
}

func (s *Session) grade() int {
	count := 0
	for i, item := range s.items {
		if s.answers[i] == item.Options[item.Correct] {
			count++
		}
	}
	return count
}

// Score returns the graded correct count.
func (s *Session) Score() int { return s.score }

// Mastered reports whether the graded score meets the pass threshold.
func (s *Session) Mastered() bool { return s.score >= PassThreshold }

// Correct reports whether the recorded answer for a question matches.
func (s *Session) Correct(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	return s.answers[i] == s.items[i].Options[s.items[i].Correct]
}

// Retake clears answers and the graded state but keeps the same questions.
// Generation is expensive; presenting the identical set again is intended.
func (s *Session) Retake() {
	s.answers = make(map[int]string)
	s.submitted = false
	s.recorded = false
	s.score = 0
	if s.items != nil {
		s.state = StateReady
	} else {
		s.state = StateUninitialized
	}
}

// Reset discards everything: questions, answers, and the graded state. Used
// when the user moves to a new topic.
func (s *Session) Reset() {
	s.items = nil
	s.answers = make(map[int]string)
	s.submitted = false
	s.recorded = false
	s.score = 0
	s.state = StateUninitialized
}
