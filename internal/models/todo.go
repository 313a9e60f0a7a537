package models

import "time"

// TitleMaxLength is the maximum number of characters allowed in a title.
const TitleMaxLength = 255

// Todo represents a todo item
type Todo struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Toggle flips the completion flag and stamps UpdatedAt with now.
// UpdatedAt never moves backwards.
func (t *Todo) Toggle(now time.Time) {
	t.Completed = !t.Completed
	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
}

// Clone returns a copy that shares no memory with t.
func (t *Todo) Clone() *Todo {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	return &c
}
