package handler

import (
	"sync"

	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/quiz"
)

// tutorSession is the per-login mutable state: the active lesson and the
// quiz attempt for it. One entry per auth token. A browser still issues
// concurrent requests for one login (background answer posts can overlap
// each other or a submit), so every handler holds mu while reading or
// mutating Lesson or Quiz.
type tutorSession struct {
	mu     sync.Mutex
	Lesson *model.LessonContext
	Quiz   *quiz.Session
}

type sessionRegistry struct {
	mu sync.Mutex
	m  map[string]*tutorSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{m: make(map[string]*tutorSession)}
}

// get returns the session state for a token, creating it on first use.
func (r *sessionRegistry) get(token string) *tutorSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[token]
	if !ok {
		s = &tutorSession{}
		r.m[token] = s
	}
	return s
}

// drop removes a token's state. Called on logout so a later login on the
// same browser never resumes someone else's lesson or quiz.
func (r *sessionRegistry) drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, token)
}
