package model

import "time"

// Element status constants.
const (
	ElementStatusActive   = "active"
	ElementStatusArchived = "archived"
)

// assignedHour is the fixed time-of-day assigned dates are stored at,
// so day-granularity comparisons are stable across time zones.
const assignedHour = 12

// Element is a dated work item, the central retrievable unit. It always
// belongs to a user and may optionally belong to a project.
type Element struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	ProjectID    *string   `json:"project_id,omitempty" db:"project_id"`
	Title        string    `json:"title" db:"title"`
	AssignedDate time.Time `json:"assigned_date" db:"assigned_date"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Populated by queries that load the element's relation graph.
	Tags  []Tag      `json:"tags,omitempty" db:"-"`
	Notes []Note     `json:"notes,omitempty" db:"-"`
	Lists []TodoList `json:"lists,omitempty" db:"-"`
}

// ElementSummary is the reduced projection returned by calendar queries.
type ElementSummary struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	AssignedDate time.Time `json:"assigned_date" db:"assigned_date"`
}

// NormalizeAssignedDate maps t to noon UTC of its calendar day.
func NormalizeAssignedDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), assignedHour, 0, 0, 0, time.UTC)
}

// DayRange returns the half-open UTC interval [start, end) covering the
// calendar day of t.
func DayRange(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// YearRange returns the half-open UTC interval [Jan 1 of year, Jan 1 of
// year+1).
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}
