package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func registerTestUser(t *testing.T, s *Store, email, password string, age int) int64 {
	t.Helper()
	id, err := s.Register(email, password, age)
	if err != nil {
		t.Fatalf("registerTestUser(%s): %v", email, err)
	}
	return id
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := newTestStore(t)

	id := registerTestUser(t, s, "alice@example.com", "Secret1", 16)
	if id == 0 {
		t.Fatal("expected non-zero user ID")
	}

	acc, err := s.Authenticate("alice@example.com", "Secret1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if acc.ID != id {
		t.Errorf("expected ID %d, got %d", id, acc.ID)
	}
	if acc.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", acc.Email)
	}
	if acc.Age != 16 {
		t.Errorf("expected age 16, got %d", acc.Age)
	}
	if acc.LastLogin == nil {
		t.Error("expected last login to be stamped")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	registerTestUser(t, s, "alice@example.com", "Secret1", 16)

	before, err := s.UserCount()
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}

	_, err = s.Register("alice@example.com", "Another1", 30)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	after, err := s.UserCount()
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if after != before {
		t.Errorf("duplicate registration created a record: %d -> %d users", before, after)
	}
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	s := newTestStore(t)
	registerTestUser(t, s, "alice@example.com", "Secret1", 16)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "WrongPass"},
		{"unknown email", "nobody@example.com", "Secret1"},
		{"both wrong", "nobody@example.com", "WrongPass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := s.Authenticate(tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if acc != nil {
				t.Errorf("expected nil account, got %+v", acc)
			}
		})
	}
}

func TestAuthenticateDoesNotStampOnFailure(t *testing.T) {
	s := newTestStore(t)
	id := registerTestUser(t, s, "alice@example.com", "Secret1", 16)

	if _, err := s.Authenticate("alice@example.com", "WrongPass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	acc, err := s.GetUserByID(id)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if acc.LastLogin != nil {
		t.Error("failed login must not stamp last_login")
	}
}

func TestProgressHistory(t *testing.T) {
	s := newTestStore(t)
	id := registerTestUser(t, s, "alice@example.com", "Secret1", 16)

	history, err := s.History(id)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d records", len(history))
	}

	for _, attempt := range []struct {
		topic string
		score int
	}{
		{"Loops", 4},
		{"Loops", 6},
		{"SQL Database Queries", 8},
	} {
		if err := s.RecordProgress(id, attempt.topic, attempt.score); err != nil {
			t.Fatalf("RecordProgress(%s): %v", attempt.topic, err)
		}
	}

	history, err = s.History(id)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}

	// Newest first.
	if history[0].Topic != "SQL Database Queries" || history[0].Score != 8 {
		t.Errorf("expected newest record first, got %+v", history[0])
	}
	if history[2].Topic != "Loops" || history[2].Score != 4 {
		t.Errorf("expected oldest record last, got %+v", history[2])
	}

	count, err := s.ProgressCount(id)
	if err != nil {
		t.Fatalf("ProgressCount: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}

func TestHistoryIsPerAccount(t *testing.T) {
	s := newTestStore(t)
	alice := registerTestUser(t, s, "alice@example.com", "Secret1", 16)
	bob := registerTestUser(t, s, "bob@example.com", "Secret2", 30)

	if err := s.RecordProgress(alice, "Loops", 5); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	history, err := s.History(bob)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("bob should have no history, got %d records", len(history))
	}
}

func TestAuthSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	id := registerTestUser(t, s, "alice@example.com", "Secret1", 16)

	token, err := s.CreateAuthSession(id)
	if err != nil {
		t.Fatalf("CreateAuthSession: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	sess, err := s.GetAuthSession(token)
	if err != nil {
		t.Fatalf("GetAuthSession: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session, got nil")
	}
	if sess.UserID != id {
		t.Errorf("expected user ID %d, got %d", id, sess.UserID)
	}

	if err := s.DeleteAuthSession(token); err != nil {
		t.Fatalf("DeleteAuthSession: %v", err)
	}
	sess, err = s.GetAuthSession(token)
	if err != nil {
		t.Fatalf("GetAuthSession after delete: %v", err)
	}
	if sess != nil {
		t.Error("expected nil session after delete")
	}

	// Unknown token is not an error.
	sess, err = s.GetAuthSession("no-such-token")
	if err != nil {
		t.Fatalf("GetAuthSession unknown: %v", err)
	}
	if sess != nil {
		t.Error("expected nil session for unknown token")
	}
}

func TestExportAllProgress(t *testing.T) {
	s := newTestStore(t)
	alice := registerTestUser(t, s, "alice@example.com", "Secret1", 16)
	registerTestUser(t, s, "bob@example.com", "Secret2", 30)

	if err := s.RecordProgress(alice, "Loops", 6); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if err := s.RecordProgress(alice, "Loops", 4); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	export, err := s.ExportAllProgress()
	if err != nil {
		t.Fatalf("ExportAllProgress: %v", err)
	}
	if export.UserCount != 2 {
		t.Errorf("expected 2 users, got %d", export.UserCount)
	}
	if len(export.Users) != 2 {
		t.Fatalf("expected 2 user entries, got %d", len(export.Users))
	}

	aliceExport := export.Users[0]
	if aliceExport.Email != "alice@example.com" {
		t.Fatalf("expected alice first, got %q", aliceExport.Email)
	}
	if len(aliceExport.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(aliceExport.Attempts))
	}
	// Newest first; 4/8 is below the pass threshold, 6/8 is above.
	if aliceExport.Attempts[0].Score != 4 || aliceExport.Attempts[0].Mastered {
		t.Errorf("expected newest attempt score 4 not mastered, got %+v", aliceExport.Attempts[0])
	}
	if aliceExport.Attempts[1].Score != 6 || !aliceExport.Attempts[1].Mastered {
		t.Errorf("expected attempt score 6 mastered, got %+v", aliceExport.Attempts[1])
	}
	if len(export.Users[1].Attempts) != 0 {
		t.Errorf("bob should have no attempts, got %d", len(export.Users[1].Attempts))
	}
}

func TestExpiredAuthSessionIsDropped(t *testing.T) {
	s := newTestStore(t)
	id := registerTestUser(t, s, "alice@example.com", "Secret1", 16)

	now := time.Now()
	if _, err := s.db.Exec(
		`INSERT INTO auth_sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		"stale-token", id, now.Add(-25*time.Hour), now.Add(-time.Hour),
	); err != nil {
		t.Fatalf("seed expired session: %v", err)
	}

	sess, err := s.GetAuthSession("stale-token")
	if err != nil {
		t.Fatalf("GetAuthSession: %v", err)
	}
	if sess != nil {
		t.Fatal("expected expired session to be treated as unknown")
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM auth_sessions WHERE id = ?`, "stale-token").Scan(&count); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 0 {
		t.Error("expected expired session row to be deleted")
	}
}
