package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hvaldez/dayplan/internal/model"
	"github.com/hvaldez/dayplan/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// CreateUser inserts a user with a unique email and returns it.
func CreateUser(t *testing.T, s *store.SQLiteStore) *model.User {
	t.Helper()

	u := &model.User{
		Email:    fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		Name:     "Test",
		LastName: "User",
	}
	if err := s.CreateUser(context.Background(), u, "hunter22"); err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return u
}

// CreateProject inserts a project for the given user and returns it.
func CreateProject(t *testing.T, s *store.SQLiteStore, userID, name string) *model.Project {
	t.Helper()

	p := &model.Project{UserID: userID, Name: name}
	if err := s.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("creating test project: %v", err)
	}
	return p
}

// CreateTag inserts a tag for the given user and returns it.
func CreateTag(t *testing.T, s *store.SQLiteStore, userID, name string) *model.Tag {
	t.Helper()

	tag := &model.Tag{UserID: userID, Name: name}
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("creating test tag: %v", err)
	}
	return tag
}

// CreateElement inserts an element for the given user and returns it.
func CreateElement(t *testing.T, s *store.SQLiteStore, userID, title string, assigned time.Time) *model.Element {
	t.Helper()

	e := &model.Element{UserID: userID, Title: title, AssignedDate: assigned}
	if err := s.CreateElement(context.Background(), e); err != nil {
		t.Fatalf("creating test element: %v", err)
	}
	return e
}

// CreateTodoList inserts a checklist-kind todo list under the given
// element and returns it.
func CreateTodoList(t *testing.T, s *store.SQLiteStore, elementID string) *model.TodoList {
	t.Helper()

	l := &model.TodoList{ElementID: elementID, Kind: model.TodoListKindList}
	if err := s.CreateTodoList(context.Background(), l); err != nil {
		t.Fatalf("creating test todo list: %v", err)
	}
	return l
}

// CreateTask inserts a task under the given todo list and returns it.
func CreateTask(t *testing.T, s *store.SQLiteStore, listID, description string) *model.Task {
	t.Helper()

	task := &model.Task{ListID: listID, Description: description}
	if err := s.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("creating test task: %v", err)
	}
	return task
}

// CreateReminder inserts a reminder on the given task, due at the given
// instant, and returns it.
func CreateReminder(t *testing.T, s *store.SQLiteStore, taskID string, due time.Time) *model.Reminder {
	t.Helper()

	r := &model.Reminder{TaskID: taskID, Date: model.FormatReminderDate(due)}
	if err := s.CreateReminder(context.Background(), r); err != nil {
		t.Fatalf("creating test reminder: %v", err)
	}
	return r
}
