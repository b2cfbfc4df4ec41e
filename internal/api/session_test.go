package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/trendscope/star-trends/internal/errors"
)

func TestSessionLoginIssuesToken(t *testing.T) {
	store := NewSessionStore("hunter2", time.Hour)

	token, expiresAt, err := store.Login("hunter2")
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, store.Validate(token))
}

func TestSessionLoginRejectsWrongPassword(t *testing.T) {
	store := NewSessionStore("hunter2", time.Hour)

	_, _, err := store.Login("letmein")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	_, _, err = store.Login("")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestSessionTokensAreUnique(t *testing.T) {
	store := NewSessionStore("hunter2", time.Hour)

	first, _, err := store.Login("hunter2")
	require.NoError(t, err)
	second, _, err := store.Login("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, store.Validate(first))
	assert.True(t, store.Validate(second))
}

func TestSessionValidateUnknownToken(t *testing.T) {
	store := NewSessionStore("hunter2", time.Hour)

	assert.False(t, store.Validate(""))
	assert.False(t, store.Validate("not-a-token"))
}

func TestSessionRevokeIsImmediate(t *testing.T) {
	store := NewSessionStore("hunter2", time.Hour)

	token, _, err := store.Login("hunter2")
	require.NoError(t, err)
	require.True(t, store.Validate(token))

	store.Revoke(token)
	assert.False(t, store.Validate(token))

	// Revoking again is harmless.
	store.Revoke(token)
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	store := NewSessionStore("hunter2", time.Hour)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	token, expiresAt, err := store.Login("hunter2")
	require.NoError(t, err)
	assert.Equal(t, current.Add(time.Hour), expiresAt)

	current = current.Add(59 * time.Minute)
	assert.True(t, store.Validate(token))

	current = current.Add(2 * time.Minute)
	assert.False(t, store.Validate(token))

	// An expired token stays invalid even if the clock moves back.
	current = current.Add(-time.Hour)
	assert.False(t, store.Validate(token))
}

func TestSessionLoginPurgesExpired(t *testing.T) {
	store := NewSessionStore("hunter2", time.Hour)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	stale, _, err := store.Login("hunter2")
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	fresh, _, err := store.Login("hunter2")
	require.NoError(t, err)

	assert.False(t, store.Validate(stale))
	assert.True(t, store.Validate(fresh))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.tokens, 1)
}
