package store

import (
	"time"

	"github.com/pavelanni/tutor/internal/model"
)

// RecordProgress appends one quiz attempt. History is append-only; nothing
// ever updates or deletes a row here.
func (s *Store) RecordProgress(userID int64, topic string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO user_progress (user_id, topic, quiz_score, completed_at) VALUES (?, ?, ?, ?)`,
		userID, topic, score, time.Now(),
	)
	return err
}

// History returns all attempts for an account, newest first.
func (s *Store) History(userID int64) ([]model.ProgressRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, topic, quiz_score, completed_at
		 FROM user_progress WHERE user_id = ? ORDER BY completed_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []model.ProgressRecord
	for rows.Next() {
		var r model.ProgressRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Topic, &r.Score, &r.CompletedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ProgressCount returns the number of attempts recorded for an account.
func (s *Store) ProgressCount(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM user_progress WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}
