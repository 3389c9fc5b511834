package models

import "time"

// Diet is a single meal/diet log entry.
type Diet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateHour    string    `json:"date_hour"`
	IsOnDiet    bool      `json:"is_on_diet"`
	CreatedAt   time.Time `json:"created_at"`
}

// DietPatch carries the fields of a partial update. Nil fields are left
// untouched.
type DietPatch struct {
	Name        *string
	Description *string
	DateHour    *string
	IsOnDiet    *bool
}

// Empty reports whether the patch changes nothing.
func (p DietPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.DateHour == nil && p.IsOnDiet == nil
}

// Apply copies the set fields of p onto d.
func (p DietPatch) Apply(d *Diet) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.DateHour != nil {
		d.DateHour = *p.DateHour
	}
	if p.IsOnDiet != nil {
		d.IsOnDiet = *p.IsOnDiet
	}
}
