// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered person, found by the session token of the browser
// that created it.
type User struct {
	ID        string    `json:"id"`
	SessionID *string   `json:"session_id"`
	Name      string    `json:"name"`
	Password  *string   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
