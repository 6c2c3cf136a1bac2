package quiz

import (
	"fmt"
	"testing"

	"github.com/pavelanni/tutor/internal/model"
)

// fakeRecorder counts progress appends.
type fakeRecorder struct {
	calls []model.ProgressRecord
	err   error
}

func (f *fakeRecorder) RecordProgress(userID int64, topic string, score int) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, model.ProgressRecord{UserID: userID, Topic: topic, Score: score})
	return nil
}

// makeItems builds a full question set with the given correct indices.
func makeItems(t *testing.T, correct []int) []model.QuizItem {
	t.Helper()
	if len(correct) != NumQuestions {
		t.Fatalf("makeItems needs %d correct indices, got %d", NumQuestions, len(correct))
	}
	items := make([]model.QuizItem, NumQuestions)
	for i := range items {
		options := make([]string, NumOptions)
		for j := range options {
			options[j] = fmt.Sprintf("%c) Option %d for question %d", 'A'+j, j+1, i+1)
		}
		items[i] = model.QuizItem{
			Question:    fmt.Sprintf("Question %d?", i+1),
			Options:     options,
			Correct:     correct[i],
			Explanation: fmt.Sprintf("Explanation %d", i+1),
		}
	}
	return items
}

func readySession(t *testing.T, correct []int) *Session {
	t.Helper()
	s := NewSession(1, 16, "Loops")
	s.BeginGeneration()
	if err := s.Load(makeItems(t, correct)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestLifecycle(t *testing.T) {
	s := NewSession(1, 16, "Loops")
	if s.State() != StateUninitialized {
		t.Fatalf("new session state = %q, want uninitialized", s.State())
	}

	s.BeginGeneration()
	if s.State() != StateGenerating {
		t.Fatalf("state = %q, want generating", s.State())
	}

	if err := s.Load(makeItems(t, []int{0, 0, 0, 0, 0, 0, 0, 0})); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("state = %q, want ready", s.State())
	}

	if err := s.SelectAnswer(0, s.Items()[0].Options[0]); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if s.State() != StateAnswering {
		t.Fatalf("state = %q, want answering", s.State())
	}

	rec := &fakeRecorder{}
	if _, err := s.Submit(rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.State() != StateGraded {
		t.Fatalf("state = %q, want graded", s.State())
	}
}

func TestFailedGenerationStaysUninitialized(t *testing.T) {
	s := NewSession(1, 16, "Loops")
	s.BeginGeneration()
	s.FailGeneration()
	if s.State() != StateUninitialized {
		t.Errorf("state = %q, want uninitialized", s.State())
	}
	if s.Items() != nil {
		t.Error("expected no items after failed generation")
	}
}

func TestLoadRejectsWrongSize(t *testing.T) {
	s := NewSession(1, 16, "Loops")
	s.BeginGeneration()

	short := makeItems(t, []int{0, 0, 0, 0, 0, 0, 0, 0})[:3]
	if err := s.Load(short); err == nil {
		t.Fatal("expected error loading 3 items")
	}
	if s.State() != StateUninitialized {
		t.Errorf("state = %q, want uninitialized after bad load", s.State())
	}

	if err := s.Load(nil); err == nil {
		t.Fatal("expected error loading nil items")
	}
	if s.State() != StateUninitialized {
		t.Errorf("state = %q, want uninitialized after nil load", s.State())
	}
}

// The worked example: answer indices [0,1,2,3,0,1,2,3] against correct
// indices [0,0,0,0,1,1,1,1] give 4 correct, below the pass threshold.
func TestGradingExample(t *testing.T) {
	s := readySession(t, []int{0, 0, 0, 0, 1, 1, 1, 1})

	answerIdx := []int{0, 1, 2, 3, 0, 1, 2, 3}
	for i, a := range answerIdx {
		if err := s.SelectAnswer(i, s.Items()[i].Options[a]); err != nil {
			t.Fatalf("SelectAnswer(%d): %v", i, err)
		}
	}

	rec := &fakeRecorder{}
	score, err := s.Submit(rec)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if score != 4 {
		t.Errorf("score = %d, want 4", score)
	}
	if s.Mastered() {
		t.Error("4/8 must not be mastered")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected exactly 1 progress record, got %d", len(rec.calls))
	}
	if rec.calls[0].Topic != "Loops" || rec.calls[0].Score != 4 {
		t.Errorf("recorded %+v, want topic Loops score 4", rec.calls[0])
	}
}

func TestPassBoundary(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		mastered bool
	}{
		{"four correct needs review", 4, false},
		{"five correct mastered", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := readySession(t, []int{0, 0, 0, 0, 0, 0, 0, 0})
			for i := 0; i < NumQuestions; i++ {
				pick := 1 // wrong
				if i < tt.correct {
					pick = 0
				}
				if err := s.SelectAnswer(i, s.Items()[i].Options[pick]); err != nil {
					t.Fatalf("SelectAnswer(%d): %v", i, err)
				}
			}

			rec := &fakeRecorder{}
			score, err := s.Submit(rec)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if score != tt.correct {
				t.Errorf("score = %d, want %d", score, tt.correct)
			}
			if s.Mastered() != tt.mastered {
				t.Errorf("Mastered() = %v, want %v", s.Mastered(), tt.mastered)
			}
		})
	}
}

// Grading compares full option text, not indices: an unrecorded answer never
// matches, and the text includes the label prefix.
func TestGradingIsLiteralStringMatch(t *testing.T) {
	s := readySession(t, []int{0, 0, 0, 0, 0, 0, 0, 0})

	// Only answer the first question, correctly.
	if err := s.SelectAnswer(0, s.Items()[0].Options[0]); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	rec := &fakeRecorder{}
	score, err := s.Submit(rec)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if score != 1 {
		t.Errorf("score = %d, want 1: unanswered questions must not match", score)
	}
}

func TestSubmitRecordsAtMostOnce(t *testing.T) {
	s := readySession(t, []int{0, 0, 0, 0, 0, 0, 0, 0})
	for i := 0; i < NumQuestions; i++ {
		if err := s.SelectAnswer(i, s.Items()[i].Options[0]); err != nil {
			t.Fatalf("SelectAnswer(%d): %v", i, err)
		}
	}

	rec := &fakeRecorder{}
	first, err := s.Submit(rec)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Re-rendering a graded quiz resubmits; the score must be stable and
	// the store must not see another append.
	for range 3 {
		again, err := s.Submit(rec)
		if err != nil {
			t.Fatalf("repeat Submit: %v", err)
		}
		if again != first {
			t.Errorf("repeat score = %d, want %d", again, first)
		}
	}
	if len(rec.calls) != 1 {
		t.Errorf("expected exactly 1 progress record, got %d", len(rec.calls))
	}
}

func TestRetakeKeepsItems(t *testing.T) {
	s := readySession(t, []int{0, 0, 0, 0, 1, 1, 1, 1})
	items := s.Items()
	for i := 0; i < NumQuestions; i++ {
		if err := s.SelectAnswer(i, s.Items()[i].Options[0]); err != nil {
			t.Fatalf("SelectAnswer(%d): %v", i, err)
		}
	}

	rec := &fakeRecorder{}
	if _, err := s.Submit(rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	s.Retake()
	if s.State() != StateReady {
		t.Errorf("state after retake = %q, want ready", s.State())
	}
	if s.Answered() != 0 {
		t.Errorf("answers after retake = %d, want 0", s.Answered())
	}
	if s.Submitted() {
		t.Error("submitted flag must clear on retake")
	}
	for i := range items {
		if s.Items()[i].Question != items[i].Question {
			t.Fatalf("retake changed question %d", i)
		}
	}

	// A second attempt is a new submission and gets its own record.
	for i := 0; i < NumQuestions; i++ {
		if err := s.SelectAnswer(i, s.Items()[i].Options[s.Items()[i].Correct]); err != nil {
			t.Fatalf("SelectAnswer(%d): %v", i, err)
		}
	}
	score, err := s.Submit(rec)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if score != NumQuestions {
		t.Errorf("second score = %d, want %d", score, NumQuestions)
	}
	if len(rec.calls) != 2 {
		t.Errorf("expected 2 progress records after retake, got %d", len(rec.calls))
	}
}

func TestResetDiscardsEverything(t *testing.T) {
	s := readySession(t, []int{0, 0, 0, 0, 0, 0, 0, 0})
	if err := s.SelectAnswer(0, s.Items()[0].Options[0]); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	s.Reset()
	if s.State() != StateUninitialized {
		t.Errorf("state after reset = %q, want uninitialized", s.State())
	}
	if s.Items() != nil {
		t.Error("items must be discarded on reset")
	}
	if s.Answered() != 0 {
		t.Error("answers must be discarded on reset")
	}
	if _, err := s.Submit(&fakeRecorder{}); err == nil {
		t.Error("submit after reset must fail")
	}
}

func TestSelectAnswerValidation(t *testing.T) {
	s := NewSession(1, 16, "Loops")
	if err := s.SelectAnswer(0, "anything"); err == nil {
		t.Error("expected error selecting before load")
	}

	s = readySession(t, []int{0, 0, 0, 0, 0, 0, 0, 0})
	if err := s.SelectAnswer(-1, "x"); err == nil {
		t.Error("expected error for negative index")
	}
	if err := s.SelectAnswer(NumQuestions, "x"); err == nil {
		t.Error("expected error for out-of-range index")
	}

	rec := &fakeRecorder{}
	if _, err := s.Submit(rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := s.SelectAnswer(0, "x"); err == nil {
		t.Error("expected error selecting after submit")
	}
}
