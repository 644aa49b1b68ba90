package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterVerifyLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.Register(ctx, "alice", []byte("pw1")))
	assert.True(t, f.auth.Verify(ctx, "alice", []byte("pw1")))
	assert.False(t, f.auth.Verify(ctx, "alice", []byte("pw2")))
	assert.False(t, f.auth.Verify(ctx, "bob", []byte("pw1")))

	s, err := f.auth.Login(ctx, "alice", []byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username)

	_, err = f.auth.Login(ctx, "alice", []byte("nope"))
	require.ErrorIs(t, err, common.ErrInvalidCredential)
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.Register(ctx, "alice", []byte("pw1")))
	err := f.auth.Register(ctx, "alice", []byte("other"))
	require.ErrorIs(t, err, common.ErrDuplicateCredential)

	// the first password still works
	assert.True(t, f.auth.Verify(ctx, "alice", []byte("pw1")))
}

func TestRegister_EmptyInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.auth.Register(ctx, "  ", []byte("pw")), common.ErrEmptyInput)
	require.ErrorIs(t, f.auth.Register(ctx, "alice", nil), common.ErrEmptyInput)
	_, err := f.auth.Login(ctx, "", []byte("pw"))
	require.ErrorIs(t, err, common.ErrEmptyInput)
}

func TestRegister_SaltDiffersForSamePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.Register(ctx, "alice", []byte("same")))
	require.NoError(t, f.auth.Register(ctx, "bob", []byte("same")))

	a, err := f.rm.Users(f.db).GetByUsername(ctx, "alice")
	require.NoError(t, err)
	b, err := f.rm.Users(f.db).GetByUsername(ctx, "bob")
	require.NoError(t, err)

	require.Len(t, a.Credential, 128)
	assert.NotEqual(t, a.Credential[:64], b.Credential[:64])
	assert.NotEqual(t, a.Credential, b.Credential)
}

func TestVerify_MalformedRecordFailsClosed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.Register(ctx, "alice", []byte("pw1")))
	_, err := f.db.ExecContext(ctx, `UPDATE users SET credential = 'zz' WHERE username = 'alice'`)
	require.NoError(t, err)

	assert.False(t, f.auth.Verify(ctx, "alice", []byte("pw1")))
}

func TestRememberResumeForget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Resume(ctx)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	s := f.login(t, "alice")
	require.NoError(t, f.auth.Remember(ctx, s))

	got, err := f.auth.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, s.ID, got.ID)

	require.NoError(t, f.auth.Forget(ctx))
	_, err = f.auth.Resume(ctx)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestResume_GarbageTokenIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.rm.Metadata(f.db).Set(ctx, common.MetadataSessionToken, []byte("garbage")))
	_, err := f.auth.Resume(ctx)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	v, err := f.rm.Metadata(f.db).Get(ctx, common.MetadataSessionToken)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRemember_RequiresSession(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.auth.Remember(context.Background(), nil), common.ErrorUnauthorized)
}
