package store

import (
	"database/sql"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pavelanni/tutor/internal/model"
)

// dummyHash is a bcrypt hash of an unguessable throwaway value. Authenticate
// compares against it when the email is unknown so both failure paths cost
// roughly one bcrypt verification.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Register creates an account. The password is stored only as a bcrypt hash
// (bcrypt embeds a randomized per-record salt). A duplicate email surfaces
// as ErrDuplicateEmail.
func (s *Store) Register(email, password string, age int) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	res, err := s.db.Exec(
		`INSERT INTO users (email, password_hash, age, created_at) VALUES (?, ?, ?, ?)`,
		email, string(hash), age, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		slog.Error("failed to create user", "email", email, "error", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	slog.Info("registered user", "id", id, "email", email)
	return id, nil
}

// Authenticate verifies the password against the stored hash and, on
// success, stamps last_login and returns the account without the hash.
// Every mismatch returns ErrInvalidCredentials.
func (s *Store) Authenticate(email, password string) (*model.Account, error) {
	var (
		a    model.Account
		hash string
	)
	err := s.db.QueryRow(
		`SELECT id, email, password_hash, age, created_at, last_login
		 FROM users WHERE email = ?`, email,
	).Scan(&a.ID, &a.Email, &hash, &a.Age, &a.CreatedAt, &a.LastLogin)
	if err == sql.ErrNoRows {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if _, err := s.db.Exec(`UPDATE users SET last_login = ? WHERE id = ?`, now, a.ID); err != nil {
		return nil, err
	}
	a.LastLogin = &now
	return &a, nil
}

// GetUserByID returns an account by ID, or nil if not found.
func (s *Store) GetUserByID(id int64) (*model.Account, error) {
	var a model.Account
	err := s.db.QueryRow(
		`SELECT id, email, age, created_at, last_login FROM users WHERE id = ?`, id,
	).Scan(&a.ID, &a.Email, &a.Age, &a.CreatedAt, &a.LastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListUsers returns all accounts ordered by ID.
func (s *Store) ListUsers() ([]model.Account, error) {
	rows, err := s.db.Query(
		`SELECT id, email, age, created_at, last_login FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Age, &a.CreatedAt, &a.LastLogin); err != nil {
			return nil, err
		}
		users = append(users, a)
	}
	return users, rows.Err()
}

// UserCount returns the total number of accounts.
func (s *Store) UserCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
