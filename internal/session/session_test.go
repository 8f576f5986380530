package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue("alice", "General")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "General", claims.Room)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue("alice", "General")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Issue("alice", "General")
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Verify("not-a-token")
	require.Error(t, err)
}
