package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pavelanni/tutor/internal/model"
)

// loginTTL bounds how long a learner stays signed in without logging in
// again. The in-memory lesson/quiz state hangs off the same token, so an
// expired login also orphans that state for cleanup.
const loginTTL = 24 * time.Hour

// CreateAuthSession mints a bearer token for a freshly authenticated
// account and persists it with its expiry.
func (s *Store) CreateAuthSession(userID int64) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	now := time.Now()
	if _, err := s.db.Exec(
		`INSERT INTO auth_sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		token, userID, now, now.Add(loginTTL),
	); err != nil {
		return "", fmt.Errorf("insert auth session: %w", err)
	}
	return token, nil
}

// GetAuthSession resolves a token to its session. Unknown tokens return
// (nil, nil); an expired token is deleted on sight and treated as unknown.
func (s *Store) GetAuthSession(token string) (*model.AuthSession, error) {
	var sess model.AuthSession
	err := s.db.QueryRow(
		`SELECT id, user_id, created_at, expires_at FROM auth_sessions WHERE id = ?`, token,
	).Scan(&sess.ID, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}
	if !sess.ExpiresAt.After(time.Now()) {
		_ = s.DeleteAuthSession(token)
		return nil, nil
	}
	return &sess, nil
}

// DeleteAuthSession invalidates a token. Deleting an unknown token is not
// an error; logout must be idempotent.
func (s *Store) DeleteAuthSession(token string) error {
	_, err := s.db.Exec(`DELETE FROM auth_sessions WHERE id = ?`, token)
	return err
}

// CleanupExpiredSessions sweeps tokens past their expiry. Run at startup;
// GetAuthSession handles stragglers lazily in between.
func (s *Store) CleanupExpiredSessions() error {
	res, err := s.db.Exec(`DELETE FROM auth_sessions WHERE expires_at <= ?`, time.Now())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		slog.Info("removed expired auth sessions", "count", n)
	}
	return nil
}

// newSessionToken returns 32 random bytes as unpadded URL-safe base64,
// cookie- and URL-clean without further escaping.
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
