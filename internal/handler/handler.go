package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/tutor/internal/llm"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store    *store.Store
	llm      *llm.Client
	sessions *sessionRegistry
	config   model.TutorConfig
}

// New creates a new Handler.
func New(s *store.Store, l *llm.Client, cfg model.TutorConfig) (*Handler, error) {
	return &Handler{
		store:    s,
		llm:      l,
		sessions: newSessionRegistry(),
		config:   cfg,
	}, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.csrfMiddleware)

		r.Get("/login", h.handleLoginPage)
		r.Post("/login", h.handleLogin)
		// login and registration share one page
		r.Get("/register", h.handleLoginPage)
		r.Post("/register", h.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Post("/logout", h.handleLogout)
			r.Get("/", h.handleTopics)
			r.Post("/lesson", h.handleStartLesson)
			r.Get("/lesson", h.handleLessonPage)
			r.Post("/lesson/ask", h.handleAsk)
			r.Post("/quiz/generate", h.handleGenerateQuiz)
			r.Post("/quiz/answer", h.handleSelectAnswer)
			r.Post("/quiz/submit", h.handleSubmitQuiz)
			r.Post("/quiz/retake", h.handleRetakeQuiz)
			r.Post("/quiz/new-topic", h.handleNewTopic)
		})
	})
}

// BasePathMiddleware injects the configured base path into the request
// context so views can build correct links under sub-path deployments.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// path prefixes a route with the configured base path.
func (h *Handler) path(p string) string {
	return h.config.BasePath + p
}
