package model

import "time"

// Note is a free-form text attachment on an element, deleted together
// with it.
type Note struct {
	ID        string    `json:"id" db:"id"`
	ElementID string    `json:"element_id" db:"element_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
