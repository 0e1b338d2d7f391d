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

// TestCascadeDelete_UserToEverything verifies that deleting a user
// removes its projects, tags, and elements, and transitively the whole
// graph below them.
func TestCascadeDelete_UserToEverything(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	p := testutil.CreateProject(t, s, u.ID, "Inbox")
	tag := testutil.CreateTag(t, s, u.ID, "home")
	e := testutil.CreateElement(t, s, u.ID, "Groceries", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)
	task := testutil.CreateTask(t, s, l.ID, "Buy milk")
	r := testutil.CreateReminder(t, s, task.ID, time.Now().Add(time.Hour))

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	_, err := s.GetProjectByID(ctx, p.ID)
	assert.True(t, store.IsNotFound(err), "project should be cascade-deleted")
	_, err = s.GetTagByID(ctx, tag.ID)
	assert.True(t, store.IsNotFound(err), "tag should be cascade-deleted")
	_, err = s.GetElementByID(ctx, e.ID)
	assert.True(t, store.IsNotFound(err), "element should be cascade-deleted")
	_, err = s.GetTodoListByID(ctx, l.ID)
	assert.True(t, store.IsNotFound(err), "todo list should be cascade-deleted")
	_, err = s.GetTaskByID(ctx, task.ID)
	assert.True(t, store.IsNotFound(err), "task should be cascade-deleted")
	_, err = s.GetReminderByID(ctx, r.ID)
	assert.True(t, store.IsNotFound(err), "reminder should be cascade-deleted")
}

// TestDeleteProject_ReleasesElements verifies that deleting a project
// nullifies element.project_id instead of deleting the element.
func TestDeleteProject_ReleasesElements(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	p := testutil.CreateProject(t, s, u.ID, "Work")

	e := testutil.CreateElement(t, s, u.ID, "Quarterly report", time.Now())
	_, err := s.UpdateElement(ctx, e.ID, store.ElementPatch{ProjectID: &p.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject(ctx, p.ID))

	got, err := s.GetElementByID(ctx, e.ID)
	require.NoError(t, err, "element must survive project deletion")
	assert.Nil(t, got.ProjectID)
}

// TestCascadeDelete_ElementToListsAndNotes verifies elements -> todo_lists
// and elements -> notes cascades.
func TestCascadeDelete_ElementToListsAndNotes(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Trip", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)

	n := &model.Note{ElementID: e.ID, Content: "packing checklist draft"}
	require.NoError(t, s.CreateNote(ctx, n))

	require.NoError(t, s.DeleteElement(ctx, e.ID))

	_, err := s.GetTodoListByID(ctx, l.ID)
	assert.True(t, store.IsNotFound(err), "todo list should be cascade-deleted")
	_, err = s.GetNoteByID(ctx, n.ID)
	assert.True(t, store.IsNotFound(err), "note should be cascade-deleted")
}

// TestCascadeDelete_ListToTasks verifies todo_lists -> tasks cascade.
func TestCascadeDelete_ListToTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Trip", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)
	task := testutil.CreateTask(t, s, l.ID, "Pack bags")

	require.NoError(t, s.DeleteTodoList(ctx, l.ID))

	_, err := s.GetTaskByID(ctx, task.ID)
	assert.True(t, store.IsNotFound(err), "task should be cascade-deleted")
}

// TestCascadeDelete_TaskToReminder verifies tasks -> reminders cascade.
func TestCascadeDelete_TaskToReminder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Trip", time.Now())
	l := testutil.CreateTodoList(t, s, e.ID)
	task := testutil.CreateTask(t, s, l.ID, "Pack bags")
	r := testutil.CreateReminder(t, s, task.ID, time.Now().Add(time.Hour))

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	_, err := s.GetReminderByID(ctx, r.ID)
	assert.True(t, store.IsNotFound(err), "reminder should be cascade-deleted")
}

// TestDeleteTag_DetachesFromElements verifies that deleting a tag
// removes its associations but leaves elements alone.
func TestDeleteTag_DetachesFromElements(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	tag := testutil.CreateTag(t, s, u.ID, "errand")
	e := testutil.CreateElement(t, s, u.ID, "Groceries", time.Now())

	_, err := s.AddElementTags(ctx, e.ID, []string{tag.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTag(ctx, tag.ID))

	got, err := s.GetElementByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}
