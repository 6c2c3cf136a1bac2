package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/pavelanni/tutor/internal/handler/views"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/quiz"
)

// historyLimit is how many past attempts the topic page shows.
const historyLimit = 5

// Topic catalogs shown on the selection page, carried over from the
// original course list.
var (
	languageTopics = []string{
		"Python Basics", "JavaScript Fundamentals", "Java Essentials",
		"C++ Programming", "HTML & CSS", "SQL Database Queries",
		"React Framework", "Node.js Backend", "Python Data Science",
	}
	roleTopics = []string{
		"Web Developer Skills", "Data Scientist Path", "DevOps Engineer",
		"Cybersecurity Analyst", "Mobile App Developer", "Cloud Engineer AWS",
		"Machine Learning Engineer", "Full Stack Developer", "Database Administrator",
	}
)

func (h *Handler) handleTopics(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())

	history, err := h.store.History(user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.TopicsPage(user, languageTopics, roleTopics, history).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

// handleStartLesson begins a lesson on the chosen topic. Any previous
// lesson and quiz state for this session is discarded first.
func (h *Handler) handleStartLesson(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())
	topic := strings.TrimSpace(r.FormValue("topic"))
	if topic == "" {
		http.Redirect(w, r, h.path("/"), http.StatusSeeOther)
		return
	}

	sess := h.sessions.get(sessionToken(r))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Quiz = quiz.NewSession(user.ID, user.Age, topic)

	content := h.llm.GenerateLesson(r.Context(), topic, user.Age)
	sess.Lesson = &model.LessonContext{Topic: topic, Content: content}

	slog.Info("lesson started", "user_id", user.ID, "topic", topic)
	http.Redirect(w, r, h.path("/lesson"), http.StatusSeeOther)
}

func (h *Handler) handleLessonPage(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())
	sess := h.sessions.get(sessionToken(r))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Lesson == nil {
		http.Redirect(w, r, h.path("/"), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.LessonPage(user, sess.Lesson, sess.Quiz, "").Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

// handleAsk answers a free-text question about the active lesson and
// returns an htmx fragment. Degraded answers render like real ones.
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())
	sess := h.sessions.get(sessionToken(r))
	sess.mu.Lock()
	if sess.Lesson == nil {
		sess.mu.Unlock()
		h.redirectToLogin(w, r)
		return
	}
	topic := sess.Lesson.Topic
	sess.mu.Unlock()

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	answer := h.llm.AnswerQuestion(r.Context(), question, topic, user.Age)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.AnswerFragment(answer).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())
	sess := h.sessions.get(sessionToken(r))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Lesson == nil || sess.Quiz == nil {
		http.Redirect(w, r, h.path("/"), http.StatusSeeOther)
		return
	}

	sess.Quiz.BeginGeneration()
	items, err := h.llm.GenerateQuiz(r.Context(), sess.Quiz.Topic(), user.Age)
	if err != nil {
		sess.Quiz.FailGeneration()
		slog.Error("quiz generation failed", "topic", sess.Quiz.Topic(), "error", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if rerr := views.LessonPage(user, sess.Lesson, sess.Quiz, err.Error()).Render(r.Context(), w); rerr != nil {
			slog.Error("render error", "error", rerr)
		}
		return
	}
	if err := sess.Quiz.Load(items); err != nil {
		slog.Error("quiz load failed", "topic", sess.Quiz.Topic(), "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.path("/lesson"), http.StatusSeeOther)
}

// handleSelectAnswer records one radio selection via htmx. The full option
// text is stored; grading compares it literally.
func (h *Handler) handleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.get(sessionToken(r))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Quiz == nil {
		h.redirectToLogin(w, r)
		return
	}

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Error(w, "invalid question index", http.StatusBadRequest)
		return
	}
	if err := sess.Quiz.SelectAnswer(index, r.FormValue("option")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.get(sessionToken(r))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Quiz == nil {
		http.Redirect(w, r, h.path("/"), http.StatusSeeOther)
		return
	}

	// Plain form submissions carry all selections at once; record them
	// before grading so the no-JS path works too.
	if err := r.ParseForm(); err == nil {
		for i := range sess.Quiz.Items() {
			if v := r.FormValue(fmt.Sprintf("q_%d", i)); v != "" {
				_ = sess.Quiz.SelectAnswer(i, v)
			}
		}
	}

	score, err := sess.Quiz.Submit(h.store)
	if err != nil {
		// A submit with no quiz loaded is a stale or hand-crafted form,
		// not a server fault. Send the user back to the lesson.
		if errors.Is(err, quiz.ErrNotReady) {
			http.Redirect(w, r, h.path("/lesson"), http.StatusSeeOther)
			return
		}
		slog.Error("quiz submit failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("quiz graded",
		"topic", sess.Quiz.Topic(),
		"score", score,
		"mastered", sess.Quiz.Mastered(),
	)
	http.Redirect(w, r, h.path("/lesson"), http.StatusSeeOther)
}

func (h *Handler) handleRetakeQuiz(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.get(sessionToken(r))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Quiz == nil {
		http.Redirect(w, r, h.path("/"), http.StatusSeeOther)
		return
	}
	sess.Quiz.Retake()
	http.Redirect(w, r, h.path("/lesson"), http.StatusSeeOther)
}

// handleNewTopic discards the lesson and the quiz entirely and returns to
// topic selection.
func (h *Handler) handleNewTopic(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.get(sessionToken(r))
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Quiz != nil {
		sess.Quiz.Reset()
	}
	sess.Lesson = nil
	sess.Quiz = nil
	http.Redirect(w, r, h.path("/"), http.StatusSeeOther)
}
