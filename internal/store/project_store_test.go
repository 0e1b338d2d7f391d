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

func TestProjectCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)

	err := s.CreateProject(ctx, &model.Project{UserID: "missing", Name: "orphan"})
	assert.True(t, store.IsNotFound(err))

	p := testutil.CreateProject(t, s, u.ID, "Renovation")
	require.NotEmpty(t, p.ID)

	got, err := s.GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renovation", got.Name)

	name := "Kitchen renovation"
	got, err = s.UpdateProject(ctx, p.ID, store.ProjectPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Kitchen renovation", got.Name)

	all, err := s.GetProjectsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteProject(ctx, p.ID))
	_, err = s.GetProjectByID(ctx, p.ID)
	assert.True(t, store.IsNotFound(err))

	err = s.DeleteProject(ctx, p.ID)
	assert.True(t, store.IsNotFound(err))
}

func TestTagCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)

	err := s.CreateTag(ctx, &model.Tag{UserID: "missing", Name: "orphan"})
	assert.True(t, store.IsNotFound(err))

	tag := testutil.CreateTag(t, s, u.ID, "urgent")

	got, err := s.GetTagByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "urgent", got.Name)

	name := "today"
	got, err = s.UpdateTag(ctx, tag.ID, store.TagPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "today", got.Name)

	all, err := s.GetTagsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteTag(ctx, tag.ID))
	_, err = s.GetTagByID(ctx, tag.ID)
	assert.True(t, store.IsNotFound(err))
}

func TestNoteCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	e := testutil.CreateElement(t, s, u.ID, "Reading", time.Now())

	err := s.CreateNote(ctx, &model.Note{ElementID: "missing", Content: "orphan"})
	assert.True(t, store.IsNotFound(err))

	n := &model.Note{ElementID: e.ID, Content: "chapter three was the best"}
	require.NoError(t, s.CreateNote(ctx, n))
	require.NotEmpty(t, n.ID)

	content := "chapter four, actually"
	got, err := s.UpdateNote(ctx, n.ID, store.NotePatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "chapter four, actually", got.Content)

	all, err := s.GetNotesByElement(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteNote(ctx, n.ID))
	_, err = s.GetNoteByID(ctx, n.ID)
	assert.True(t, store.IsNotFound(err))
}
