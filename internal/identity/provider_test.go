package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/exam-portal/pkg/docstore"
)

func newProvider() *LocalProvider {
	return NewLocalProvider(docstore.NewMemory(), bcrypt.MinCost)
}

func TestLocalProviderCreateAndVerify(t *testing.T) {
	ctx := context.Background()
	p := newProvider()

	ident, err := p.CreateUser(ctx, " Head@Example.com ", "s3cret!")
	require.NoError(t, err)
	assert.NotEmpty(t, ident.UID)
	assert.Equal(t, "head@example.com", ident.Email)
	assert.NotEqual(t, "s3cret!", ident.PasswordHash)

	got, err := p.VerifyCredentials(ctx, "head@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, ident.UID, got.UID)
}

func TestLocalProviderRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	p := newProvider()
	_, err := p.CreateUser(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	_, err = p.CreateUser(ctx, "A@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLocalProviderVerifyFailures(t *testing.T) {
	ctx := context.Background()
	p := newProvider()
	_, err := p.CreateUser(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	_, err = p.VerifyCredentials(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = p.VerifyCredentials(ctx, "missing@example.com", "pw")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestLocalProviderDelete(t *testing.T) {
	ctx := context.Background()
	p := newProvider()
	ident, err := p.CreateUser(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, p.DeleteUser(ctx, ident.UID))
	_, err = p.LookupByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
	require.NoError(t, p.DeleteUser(ctx, ident.UID))
}
