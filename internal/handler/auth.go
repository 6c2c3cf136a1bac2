package handler

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/pavelanni/tutor/internal/handler/views"
	appI18n "github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/store"
)

const (
	sessionCookieName = "session"
	csrfCookieName    = "csrf_token"

	minPasswordLen = 6
	minAge         = 8
	maxAge         = 100
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func generateCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (h *Handler) setCSRFCookie(w http.ResponseWriter, token string) {
	cookiePath := "/"
	if h.config.BasePath != "" {
		cookiePath = h.config.BasePath + "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     cookiePath,
		HttpOnly: false,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// csrfMiddleware implements the double-submit cookie pattern. The token is
// NOT rotated on POST: answer selections post in the background via htmx
// while the rendered page keeps its hidden token, so rotation would
// invalidate the eventual quiz submission.
func (h *Handler) csrfMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" || r.Method == "HEAD" {
			token := ""
			if cookie, err := r.Cookie(csrfCookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				var err error
				token, err = generateCSRFToken()
				if err != nil {
					slog.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				h.setCSRFCookie(w, token)
			}
			ctx := model.ContextWithCSRFToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		cookie, err := r.Cookie(csrfCookieName)
		if err != nil || cookie.Value == "" {
			slog.Warn("CSRF cookie missing")
			http.Error(w, "csrf token missing", http.StatusForbidden)
			return
		}

		formToken := r.FormValue("csrf_token")
		if formToken == "" {
			slog.Warn("CSRF form token missing")
			http.Error(w, "csrf token missing", http.StatusForbidden)
			return
		}

		if len(formToken) != len(cookie.Value) || subtle.ConstantTimeCompare([]byte(formToken), []byte(cookie.Value)) != 1 {
			slog.Warn("CSRF token mismatch")
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}

		ctx := model.ContextWithCSRFToken(r.Context(), cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth is middleware that checks for a valid session cookie.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			h.redirectToLogin(w, r)
			return
		}

		authSess, err := h.store.GetAuthSession(cookie.Value)
		if err != nil {
			slog.Error("failed to get auth session", "error", err)
			h.redirectToLogin(w, r)
			return
		}
		if authSess == nil {
			h.redirectToLogin(w, r)
			return
		}

		user, err := h.store.GetUserByID(authSess.UserID)
		if err != nil || user == nil {
			h.redirectToLogin(w, r)
			return
		}

		ctx := model.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	loginPath := h.path("/login")
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", loginPath)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// sessionToken returns the auth cookie value for the current request.
// Only meaningful behind requireAuth.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.AuthPage("", "", false).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.renderAuthError(w, r, appI18n.T(r.Context(), "FillAllFields"))
		return
	}
	if !emailRegex.MatchString(email) {
		h.renderAuthError(w, r, appI18n.T(r.Context(), "InvalidEmail"))
		return
	}

	user, err := h.store.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			h.renderAuthError(w, r, appI18n.T(r.Context(), "LoginError"))
			return
		}
		slog.Error("authentication failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token, err := h.store.CreateAuthSession(user.ID)
	if err != nil {
		slog.Error("failed to create auth session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	cookiePath := "/"
	if h.config.BasePath != "" {
		cookiePath = h.config.BasePath + "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     cookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.config.SecureCookies,
	})
	http.Redirect(w, r, h.path("/"), http.StatusSeeOther)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")
	ageStr := r.FormValue("age")

	if msgID := validateRegistration(email, password, confirm, ageStr); msgID != "" {
		h.renderRegisterError(w, r, appI18n.T(r.Context(), msgID))
		return
	}
	age, _ := strconv.Atoi(ageStr)

	_, err := h.store.Register(email, password, age)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			h.renderRegisterError(w, r, appI18n.T(r.Context(), "EmailExists"))
			return
		}
		slog.Error("registration failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.AuthPage("", "", true).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

// validateRegistration runs the controller-side checks before any store
// access and returns the message ID of the first failure, or "".
func validateRegistration(email, password, confirm, ageStr string) string {
	if email == "" || password == "" || confirm == "" || ageStr == "" {
		return "FillAllFields"
	}
	if !emailRegex.MatchString(email) {
		return "InvalidEmail"
	}
	if len(password) < minPasswordLen {
		return "PasswordTooShort"
	}
	if password != confirm {
		return "PasswordMismatch"
	}
	age, err := strconv.Atoi(ageStr)
	if err != nil || age < minAge || age > maxAge {
		return "InvalidAge"
	}
	return ""
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		_ = h.store.DeleteAuthSession(cookie.Value)
		// Drop in-memory lesson/quiz state too: a fresh login on this
		// browser must not resume the previous user's quiz.
		h.sessions.drop(cookie.Value)
	}

	logoutCookiePath := "/"
	if h.config.BasePath != "" {
		logoutCookiePath = h.config.BasePath + "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     logoutCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
	})
	http.Redirect(w, r, h.path("/login"), http.StatusSeeOther)
}

func (h *Handler) renderAuthError(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	if err := views.AuthPage(msg, "", false).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) renderRegisterError(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	if err := views.AuthPage("", msg, false).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}
