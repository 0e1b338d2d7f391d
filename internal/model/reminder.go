package model

import "time"

// ReminderDateLayout is the wire encoding of Reminder.Date. RFC 3339 in
// UTC sorts lexicographically in chronological order, which the
// due-date range scan relies on.
const ReminderDateLayout = time.RFC3339

// Reminder is a due-date marker attached to exactly one task.
type Reminder struct {
	ID        string    `json:"id" db:"id"`
	TaskID    string    `json:"task_id" db:"task_id"`
	Date      string    `json:"date" db:"date"`
	Notified  bool      `json:"notified" db:"notified"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DueAt parses the string-encoded due instant.
func (r Reminder) DueAt() (time.Time, error) {
	return time.Parse(ReminderDateLayout, r.Date)
}

// FormatReminderDate encodes t for storage in Reminder.Date.
func FormatReminderDate(t time.Time) string {
	return t.UTC().Format(ReminderDateLayout)
}
