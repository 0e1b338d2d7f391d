package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvaldez/dayplan/internal/model"
	"github.com/hvaldez/dayplan/internal/store"
	"github.com/hvaldez/dayplan/tests/testutil"
)

func TestCreateUser_HashesPassword(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := &model.User{Email: "ana@example.com", Name: "Ana"}
	require.NoError(t, s.CreateUser(ctx, u, "s3cret"))

	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.Equal(t, model.UserStatusActive, u.Status)

	stored, err := s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, store.CheckPassword(stored, "s3cret"))
	assert.False(t, store.CheckPassword(stored, "wrong"))
}

func TestCreateUser_DuplicateEmailRejected(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &model.User{Email: "dup@example.com"}, "pw"))
	err := s.CreateUser(ctx, &model.User{Email: "dup@example.com"}, "pw")
	assert.Error(t, err)
}

func TestGetUserByEmail(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)

	found, err := s.GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, store.IsNotFound(err))
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	phone := "+34 600 000 000"
	_, err := s.UpdateUser(ctx, u.ID, store.UserPatch{PhoneNumber: &phone})
	require.NoError(t, err)

	name := "Renamed"
	updated, err := s.UpdateUser(ctx, u.ID, store.UserPatch{Name: &name})
	require.NoError(t, err)

	// Only the supplied field changes; the phone set earlier survives.
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, phone, *updated.PhoneNumber)
	assert.Equal(t, u.Email, updated.Email)
}

func TestUpdateUser_ClearNullableField(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	phone := "+34 600 000 000"
	_, err := s.UpdateUser(ctx, u.ID, store.UserPatch{PhoneNumber: &phone})
	require.NoError(t, err)

	empty := ""
	updated, err := s.UpdateUser(ctx, u.ID, store.UserPatch{PhoneNumber: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.PhoneNumber)
}

func TestUpdateUser_RehashesPassword(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u := testutil.CreateUser(t, s)
	newPw := "changed"
	updated, err := s.UpdateUser(ctx, u.ID, store.UserPatch{Password: &newPw})
	require.NoError(t, err)

	assert.True(t, store.CheckPassword(updated, "changed"))
	assert.False(t, store.CheckPassword(updated, "hunter22"))
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	name := "x"
	_, err := s.UpdateUser(context.Background(), "missing", store.UserPatch{Name: &name})
	assert.True(t, store.IsNotFound(err))
}

func TestDeleteUser_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.DeleteUser(context.Background(), "missing")
	assert.True(t, store.IsNotFound(err))
}
