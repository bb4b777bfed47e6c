package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(t *testing.T, ttl time.Duration) *Authenticator {
	t.Helper()

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	a, err := New(Options{PasswordHash: hash, Secret: "test-secret", TokenTTL: ttl})
	require.NoError(t, err)

	return a
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, time.Minute)

	token, err := a.Login("hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, a.Verify(token))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, time.Minute)

	_, err := a.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, time.Minute)

	assert.ErrorIs(t, a.Verify("not-a-token"), ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, -time.Minute)

	token, err := a.Login("hunter2")
	require.NoError(t, err)

	assert.ErrorIs(t, a.Verify(token), ErrInvalidToken)
}

func TestVerifyRejectsTokenFromOtherSecret(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t, time.Minute)

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	other, err := New(Options{PasswordHash: hash, Secret: "different-secret"})
	require.NoError(t, err)

	token, err := other.Login("hunter2")
	require.NoError(t, err)

	assert.ErrorIs(t, a.Verify(token), ErrInvalidToken)
}

func TestDisabledAuthenticator(t *testing.T) {
	t.Parallel()

	a, err := New(Options{})
	require.NoError(t, err)

	assert.False(t, a.Enabled())

	_, err = a.Login("anything")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, a.Verify("anything"), ErrDisabled)
}

func TestNewRequiresSecretWithPassword(t *testing.T) {
	t.Parallel()

	_, err := New(Options{PasswordHash: "hash"})
	assert.Error(t, err)
}
