package domain

import "time"

// User is an authentication account. Business roles live on Member records.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
