package store

import (
	"fmt"
	"time"

	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/quiz"
)

// ExportAllProgress builds an export-ready view of every account's attempt
// history, newest attempts first within each account.
func (s *Store) ExportAllProgress() (*model.ProgressExport, error) {
	users, err := s.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	export := &model.ProgressExport{
		ExportedAt: time.Now(),
		UserCount:  len(users),
	}

	for _, u := range users {
		history, err := s.History(u.ID)
		if err != nil {
			return nil, fmt.Errorf("history for user %d: %w", u.ID, err)
		}

		var attempts []model.AttemptExport
		for _, r := range history {
			attempts = append(attempts, model.AttemptExport{
				Topic:       r.Topic,
				Score:       r.Score,
				MaxScore:    quiz.NumQuestions,
				Mastered:    r.Score >= quiz.PassThreshold,
				CompletedAt: r.CompletedAt,
			})
		}

		export.Users = append(export.Users, model.UserProgress{
			Email:     u.Email,
			Age:       u.Age,
			CreatedAt: u.CreatedAt,
			LastLogin: u.LastLogin,
			Attempts:  attempts,
		})
	}

	return export, nil
}
