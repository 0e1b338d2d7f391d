package model

import "time"

// Task is a single checklist line within a todo list. A task carries at
// most one reminder.
type Task struct {
	ID          string    `json:"id" db:"id"`
	ListID      string    `json:"list_id" db:"list_id"`
	Description string    `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Reminder is populated by queries that load the task's reminder.
	Reminder *Reminder `json:"reminder,omitempty" db:"-"`
}
