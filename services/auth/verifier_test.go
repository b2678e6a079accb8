package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalVerifierRoundTrip(t *testing.T) {
	v := NewLocalVerifier("test-secret")
	token, err := v.Issue("uid-1", "jane@example.com", "Jane", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.UID)
	assert.Equal(t, "jane@example.com", id.Email)
	assert.Equal(t, "Jane", id.Name)
	assert.WithinDuration(t, time.Now().Add(time.Hour), id.ExpiresAt, 5*time.Second)
}

func TestLocalVerifierRejects(t *testing.T) {
	v := NewLocalVerifier("test-secret")
	other := NewLocalVerifier("other-secret")

	foreign, err := other.Issue("uid-1", "", "", time.Hour)
	require.NoError(t, err)
	expired, err := v.Issue("uid-1", "", "", -time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{"garbage": "not.a.token", "wrong secret": foreign, "expired": expired} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
