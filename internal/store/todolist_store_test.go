package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvaldez/dayplan/internal/model"
	"github.com/hvaldez/dayplan/internal/store"
	"github.com/hvaldez/dayplan/tests/testutil"
)

func TestCreateTodoList_Defaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Weekend", time.Now())

	first := &model.TodoList{ElementID: e.ID}
	require.NoError(t, s.CreateTodoList(ctx, first))
	second := &model.TodoList{ElementID: e.ID}
	require.NoError(t, s.CreateTodoList(ctx, second))

	assert.Equal(t, model.TodoListKindList, first.Kind)
	assert.Less(t, first.SortOrder, second.SortOrder, "sort order should increment per element")

	err := s.CreateTodoList(ctx, &model.TodoList{ElementID: "missing"})
	assert.True(t, store.IsNotFound(err))
}

func TestCreateTodoList_NoteKind(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Journal", time.Now())

	l := &model.TodoList{ElementID: e.ID, Kind: model.TodoListKindNote, Content: "slept well"}
	require.NoError(t, s.CreateTodoList(ctx, l))

	got, err := s.GetTodoListByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TodoListKindNote, got.Kind)
	assert.Equal(t, "slept well", got.Content)
}

func TestGetTodoListByID_IncludesTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Move out", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)
	testutil.CreateTask(t, s, l.ID, "Rent a van")
	testutil.CreateTask(t, s, l.ID, "Pack boxes")

	got, err := s.GetTodoListByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 2)

	_, err = s.GetTodoListByID(ctx, "missing")
	assert.True(t, store.IsNotFound(err))
}

func TestUpdateTodoList_Patch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Weekend", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)

	content := "pick up dry cleaning"
	got, err := s.UpdateTodoList(ctx, l.ID, store.TodoListPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "pick up dry cleaning", got.Content)
	assert.Equal(t, l.Kind, got.Kind, "unpatched fields survive")

	order := 5
	got, err = s.UpdateTodoList(ctx, l.ID, store.TodoListPatch{SortOrder: &order})
	require.NoError(t, err)
	assert.Equal(t, 5, got.SortOrder)
	assert.Equal(t, "pick up dry cleaning", got.Content)

	_, err = s.UpdateTodoList(ctx, "missing", store.TodoListPatch{Content: &content})
	assert.True(t, store.IsNotFound(err))
}

func TestCreateTask_ParentValidation(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	err := s.CreateTask(ctx, &model.Task{ListID: "missing", Description: "orphan"})
	assert.True(t, store.IsNotFound(err))
}

func TestToggleTaskComplete(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Chores", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)
	task := testutil.CreateTask(t, s, l.ID, "Vacuum")
	require.False(t, task.Completed)

	got, err := s.ToggleTaskComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = s.ToggleTaskComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)

	_, err = s.ToggleTaskComplete(ctx, "missing")
	assert.True(t, store.IsNotFound(err))
}

func TestUpdateTask_Patch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Chores", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)
	task := testutil.CreateTask(t, s, l.ID, "Vacuum")

	done := true
	got, err := s.UpdateTask(ctx, task.ID, store.TaskPatch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "Vacuum", got.Description)

	desc := "Vacuum upstairs"
	got, err = s.UpdateTask(ctx, task.ID, store.TaskPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Vacuum upstairs", got.Description)
	assert.True(t, got.Completed)
}

func TestGetTaskByID_IncludesReminder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Chores", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)

	plain := testutil.CreateTask(t, s, l.ID, "No reminder")
	withReminder := testutil.CreateTask(t, s, l.ID, "Has reminder")
	testutil.CreateReminder(t, s, withReminder.ID, time.Now().Add(24*time.Hour))

	got, err := s.GetTaskByID(ctx, plain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Reminder)

	got, err = s.GetTaskByID(ctx, withReminder.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Reminder)
	assert.Equal(t, withReminder.ID, got.Reminder.TaskID)
}
