package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/quiz"
)

func loadedQuizSession(t *testing.T) *quiz.Session {
	t.Helper()
	items := make([]model.QuizItem, quiz.NumQuestions)
	for i := range items {
		items[i] = model.QuizItem{
			Question: fmt.Sprintf("Question %d?", i+1),
			Options: []string{
				"A) first", "B) second", "C) third", "D) fourth",
			},
			Correct:     i % quiz.NumOptions,
			Explanation: "because",
		}
	}
	s := quiz.NewSession(1, 16, "Python Basics")
	s.BeginGeneration()
	if err := s.Load(items); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

// Answer selections post in the background, so two can be in flight for the
// same login at once. The per-session lock must serialize them.
func TestConcurrentAnswerSelections(t *testing.T) {
	sess := &tutorSession{Quiz: loadedQuizSession(t)}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < quiz.NumQuestions; i++ {
				sess.mu.Lock()
				if err := sess.Quiz.SelectAnswer(i, "A) first"); err != nil {
					t.Errorf("SelectAnswer(%d): %v", i, err)
				}
				sess.mu.Unlock()
			}
		}(g)
	}
	wg.Wait()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if got := sess.Quiz.Answered(); got != quiz.NumQuestions {
		t.Errorf("Answered() = %d, want %d", got, quiz.NumQuestions)
	}
}

// A submit for a quiz that was never generated is a stale form, not a
// server fault: the user goes back to the lesson instead of seeing a 500.
func TestSubmitWithoutLoadedQuizRedirects(t *testing.T) {
	h := &Handler{sessions: newSessionRegistry()}

	sess := h.sessions.get("tok-1")
	sess.Quiz = quiz.NewSession(1, 16, "Python Basics")

	r := httptest.NewRequest("POST", "/quiz/submit", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-1"})
	w := httptest.NewRecorder()

	h.handleSubmitQuiz(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/lesson" {
		t.Errorf("Location = %q, want %q", loc, "/lesson")
	}
}

// A submit with no quiz session at all goes back to topic selection.
func TestSubmitWithoutQuizSessionRedirects(t *testing.T) {
	h := &Handler{sessions: newSessionRegistry()}

	r := httptest.NewRequest("POST", "/quiz/submit", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok-2"})
	w := httptest.NewRecorder()

	h.handleSubmitQuiz(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
}
