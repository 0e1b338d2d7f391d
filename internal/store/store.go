package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hvaldez/dayplan/internal/model"
)

// NotFoundError reports that a referenced entity does not exist. Every
// parent reference is resolved before any write, so a NotFoundError is
// always raised before side effects.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func notFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// UserPatch carries a partial user update. Nil fields are left
// unchanged; Password, when present, is re-hashed before storage.
// Pointer-valued columns (phone, image) are cleared by supplying an
// empty string.
type UserPatch struct {
	Email           *string
	Password        *string
	Name            *string
	LastName        *string
	PhoneNumber     *string
	ProfileImageURL *string
	Status          *string
}

// ProjectPatch carries a partial project update.
type ProjectPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

// TagPatch carries a partial tag update.
type TagPatch struct {
	Name  *string
	Color *string
}

// ElementPatch carries a partial element update. ProjectID, when
// present, is re-resolved and must exist. ClearProject detaches the
// element from its project; a nil ProjectID alone leaves the
// association untouched.
type ElementPatch struct {
	Title        *string
	AssignedDate *time.Time
	ProjectID    *string
	ClearProject bool
	Status       *string
}

// TodoListPatch carries a partial todo-list update.
type TodoListPatch struct {
	SortOrder *int
	Kind      *string
	Content   *string
}

// TaskPatch carries a partial task update.
type TaskPatch struct {
	Description *string
	Completed   *bool
}

// ReminderPatch carries a partial reminder update.
type ReminderPatch struct {
	Date     *time.Time
	Notified *bool
}

// NotePatch carries a partial note update.
type NotePatch struct {
	Content *string
}

// Store is the persistence interface for the planner domain graph.
// Mutations validate parent existence before writing; deletes rely on
// the schema's cascade and SET NULL rules for their blast radius.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, u *model.User, password string) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error

	// === Projects ===

	CreateProject(ctx context.Context, p *model.Project) error
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	GetProjectsByUser(ctx context.Context, userID string) ([]model.Project, error)
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error

	// === Tags ===

	CreateTag(ctx context.Context, t *model.Tag) error
	GetTagByID(ctx context.Context, id string) (*model.Tag, error)
	GetTagsByUser(ctx context.Context, userID string) ([]model.Tag, error)
	UpdateTag(ctx context.Context, id string, patch TagPatch) (*model.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	GetElementsByTag(ctx context.Context, tagID string) ([]model.Element, error)

	// === Elements ===

	CreateElement(ctx context.Context, e *model.Element) error
	GetElementByID(ctx context.Context, id string) (*model.Element, error)
	GetElementsByUser(ctx context.Context, userID string) ([]model.Element, error)
	GetElementsByProject(ctx context.Context, projectID string) ([]model.Element, error)
	UpdateElement(ctx context.Context, id string, patch ElementPatch) (*model.Element, error)
	DeleteElement(ctx context.Context, id string) error

	// FindElements returns the user's elements for the calendar day of
	// at (defaulting to now when nil), optionally scoped to a project,
	// with the full relation graph loaded.
	FindElements(ctx context.Context, userID string, at *time.Time, projectID *string) ([]model.Element, error)

	// SearchElements matches query as a case-insensitive substring of
	// element title, tag name, or todo-list content, scoped to the user.
	SearchElements(ctx context.Context, userID, query string) ([]model.Element, error)

	// ElementsByYear returns a reduced projection of the user's elements
	// whose assigned date falls in the given calendar year.
	ElementsByYear(ctx context.Context, userID string, year int, projectID *string) ([]model.ElementSummary, error)

	AddElementTags(ctx context.Context, elementID string, tagIDs []string) (*model.Element, error)
	RemoveElementTags(ctx context.Context, elementID string, tagIDs []string) (*model.Element, error)
	GetTagsForElement(ctx context.Context, elementID string) ([]model.Tag, error)

	// === Todo lists ===

	CreateTodoList(ctx context.Context, l *model.TodoList) error
	GetTodoListByID(ctx context.Context, id string) (*model.TodoList, error)
	GetTodoListsByElement(ctx context.Context, elementID string) ([]model.TodoList, error)
	UpdateTodoList(ctx context.Context, id string, patch TodoListPatch) (*model.TodoList, error)
	DeleteTodoList(ctx context.Context, id string) error

	// === Tasks ===

	CreateTask(ctx context.Context, t *model.Task) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasksByList(ctx context.Context, listID string) ([]model.Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleTaskComplete(ctx context.Context, id string) (*model.Task, error)

	// === Reminders ===

	CreateReminder(ctx context.Context, r *model.Reminder) error
	GetReminderByID(ctx context.Context, id string) (*model.Reminder, error)
	GetRemindersByTask(ctx context.Context, taskID string) ([]model.Reminder, error)
	UpdateReminder(ctx context.Context, id string, patch ReminderPatch) (*model.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error

	// RemindersDueInRange returns the user's un-notified reminders with
	// a due date between start and end (both inclusive), ascending by
	// due date.
	RemindersDueInRange(ctx context.Context, userID string, start, end time.Time) ([]model.Reminder, error)
	MarkReminderNotified(ctx context.Context, id string) error

	// === Notes ===

	CreateNote(ctx context.Context, n *model.Note) error
	GetNoteByID(ctx context.Context, id string) (*model.Note, error)
	GetNotesByElement(ctx context.Context, elementID string) ([]model.Note, error)
	UpdateNote(ctx context.Context, id string, patch NotePatch) (*model.Note, error)
	DeleteNote(ctx context.Context, id string) error

	// === Ownership resolution ===
	//
	// The boundary layer verifies the authenticated user against these
	// before mutating anything below the element level.

	ElementOwnerID(ctx context.Context, elementID string) (string, error)
	TodoListOwnerID(ctx context.Context, listID string) (string, error)
	TaskOwnerID(ctx context.Context, taskID string) (string, error)
	ReminderOwnerID(ctx context.Context, reminderID string) (string, error)
}
