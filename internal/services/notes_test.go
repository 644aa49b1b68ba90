package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.login(t, "alice")

	n, err := f.notes.Create(ctx, s, "  plan ", "buy the dip")
	require.NoError(t, err)
	assert.Equal(t, "plan", n.Title)
	assert.NotZero(t, n.ID)

	list, err := f.notes.List(ctx, s)
	require.NoError(t, err)
	require.Len(t, list, 1)

	upd, err := f.notes.Update(ctx, s, n.ID, "plan B", "hold")
	require.NoError(t, err)
	assert.Equal(t, "plan B", upd.Title)

	got, err := f.notes.Get(ctx, s, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "hold", got.Content)

	require.NoError(t, f.notes.Delete(ctx, s, n.ID))
	_, err = f.notes.Get(ctx, s, n.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, f.notes.Delete(ctx, s, n.ID), common.ErrorNotFound)
}

func TestNotes_TitleRequired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.login(t, "alice")

	_, err := f.notes.Create(ctx, s, " ", "x")
	require.ErrorIs(t, err, common.ErrEmptyInput)

	n, err := f.notes.Create(ctx, s, "t", "x")
	require.NoError(t, err)
	_, err = f.notes.Update(ctx, s, n.ID, "", "y")
	require.ErrorIs(t, err, common.ErrEmptyInput)
}

func TestNotes_OwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.login(t, "alice")
	bob := f.login(t, "bob")

	n, err := f.notes.Create(ctx, alice, "secret", "")
	require.NoError(t, err)

	_, err = f.notes.Get(ctx, bob, n.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = f.notes.Update(ctx, bob, n.ID, "mine", "")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, f.notes.Delete(ctx, bob, n.ID), common.ErrorNotFound)

	list, err := f.notes.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}
