package models

import (
	"time"
)

// User is a registered account. Authentication happens with email and password;
// the password itself is never stored, only its bcrypt hash.
type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserStats aggregates a user's interview history for the dashboard.
type UserStats struct {
	TotalInterviews int64   `db:"total_interviews"`
	AverageScore    float64 `db:"average_score"`
	BestScore       float64 `db:"best_score"`
	WorstScore      float64 `db:"worst_score"`
}
