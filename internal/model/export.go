package model

import "time"

// ProgressExport is the top-level JSON structure for progress export.
type ProgressExport struct {
	ExportedAt time.Time      `json:"exported_at"`
	UserCount  int            `json:"user_count"`
	Users      []UserProgress `json:"users"`
}

// UserProgress holds one account's attempt history for export.
type UserProgress struct {
	Email     string          `json:"email"`
	Age       int             `json:"age"`
	CreatedAt time.Time       `json:"created_at"`
	LastLogin *time.Time      `json:"last_login,omitempty"`
	Attempts  []AttemptExport `json:"attempts"`
}

// AttemptExport holds one quiz attempt for export.
type AttemptExport struct {
	Topic       string    `json:"topic"`
	Score       int       `json:"quiz_score"`
	MaxScore    int       `json:"max_score"`
	Mastered    bool      `json:"mastered"`
	CompletedAt time.Time `json:"completed_at"`
}
