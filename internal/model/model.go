package model

import (
	"context"
	"time"
)

// Account represents a registered learner. The password hash is kept out of
// this struct on purpose: anything returned across the auth boundary carries
// no credential material.
type Account struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Age       int        `json:"age"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// ProgressRecord is one completed quiz attempt. Records are append-only and
// never mutated.
type ProgressRecord struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Topic       string    `json:"topic"`
	Score       int       `json:"quiz_score"`
	CompletedAt time.Time `json:"completed_at"`
}

// QuizItem is one multiple-choice question: four answer options, the index
// of the correct option, and an explanation shown after grading.
type QuizItem struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// LessonContext holds the active lesson for one browser session. It is
// discarded whenever the user picks a new topic or returns to topic selection.
type LessonContext struct {
	Topic   string
	Content string
}

// TutorConfig holds runtime parameters set via CLI flags.
type TutorConfig struct {
	BasePath      string // URL prefix for sub-path deployments (e.g. "/ru")
	SecureCookies bool   // Set Secure flag on cookies (disable for local dev)
}

type userCtxKey struct{}

// ContextWithUser stores an account in the request context.
func ContextWithUser(ctx context.Context, a *Account) context.Context {
	return context.WithValue(ctx, userCtxKey{}, a)
}

// UserFromContext retrieves the authenticated account from context, or nil.
func UserFromContext(ctx context.Context) *Account {
	a, _ := ctx.Value(userCtxKey{}).(*Account)
	return a
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}

type csrfCtxKey struct{}

// ContextWithCSRFToken stores the CSRF token in context.
func ContextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfCtxKey{}, token)
}

// CSRFTokenFromContext retrieves the CSRF token from context.
func CSRFTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(csrfCtxKey{}).(string)
	return t
}
