package models

import "time"

// UserDiet records that a user owns a diet. It is the only source of
// ownership.
type UserDiet struct {
	ID        string
	UserID    string
	DietID    string
	CreatedAt time.Time
}
