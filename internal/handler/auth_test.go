package handler

import "testing"

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		age      string
		want     string
	}{
		{"valid", "alice@example.com", "Secret1", "Secret1", "16", ""},
		{"valid boundary age low", "alice@example.com", "Secret1", "Secret1", "8", ""},
		{"valid boundary age high", "alice@example.com", "Secret1", "Secret1", "100", ""},
		{"missing email", "", "Secret1", "Secret1", "16", "FillAllFields"},
		{"missing password", "alice@example.com", "", "Secret1", "16", "FillAllFields"},
		{"missing confirm", "alice@example.com", "Secret1", "", "16", "FillAllFields"},
		{"missing age", "alice@example.com", "Secret1", "Secret1", "", "FillAllFields"},
		{"bad email no at", "alice.example.com", "Secret1", "Secret1", "16", "InvalidEmail"},
		{"bad email no tld", "alice@example", "Secret1", "Secret1", "16", "InvalidEmail"},
		{"short password", "alice@example.com", "abc12", "abc12", "16", "PasswordTooShort"},
		{"six char password ok", "alice@example.com", "abc123", "abc123", "16", ""},
		{"mismatch", "alice@example.com", "Secret1", "Secret2", "16", "PasswordMismatch"},
		{"age too low", "alice@example.com", "Secret1", "Secret1", "7", "InvalidAge"},
		{"age too high", "alice@example.com", "Secret1", "Secret1", "101", "InvalidAge"},
		{"age not a number", "alice@example.com", "Secret1", "Secret1", "teen", "InvalidAge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateRegistration(tt.email, tt.password, tt.confirm, tt.age)
			if got != tt.want {
				t.Errorf("validateRegistration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionRegistry(t *testing.T) {
	r := newSessionRegistry()

	s1 := r.get("token-a")
	if s1 == nil {
		t.Fatal("expected session to be created")
	}
	if got := r.get("token-a"); got != s1 {
		t.Error("same token must return the same session")
	}
	if got := r.get("token-b"); got == s1 {
		t.Error("different tokens must not share state")
	}

	r.drop("token-a")
	if got := r.get("token-a"); got == s1 {
		t.Error("dropped token must get fresh state")
	}
}
