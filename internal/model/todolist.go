package model

import "time"

// TodoList kind constants.
const (
	TodoListKindNote = "note"
	TodoListKindList = "list"
)

// TodoList is a sub-container of an element: either a free-text note
// (Content is used) or an ordered checklist of tasks. Its lifecycle is
// bound to the parent element.
type TodoList struct {
	ID        string    `json:"id" db:"id"`
	ElementID string    `json:"element_id" db:"element_id"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	Kind      string    `json:"kind" db:"kind"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Tasks is populated by queries that load the list's checklist.
	Tasks []Task `json:"tasks,omitempty" db:"-"`
}
