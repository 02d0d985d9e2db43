package authentication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokensRoundTripThroughKeyring(t *testing.T) {
	keyring.MockInit()

	_, err := GetTokens()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	creds := &StoredCredentials{AccessToken: "a", RefreshToken: "r", Username: "deckard", ExpiresAt: 42}
	require.NoError(t, StoreTokens(creds))

	got, err := GetTokens()
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, DeleteTokens())
	require.NoError(t, DeleteTokens(), "deleting twice is fine")
	_, err = GetTokens()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&StoredCredentials{}).Expired(now), "unknown expiry is trusted")
	assert.False(t, (&StoredCredentials{ExpiresAt: now.Add(time.Hour).Unix()}).Expired(now))
	assert.True(t, (&StoredCredentials{ExpiresAt: now.Add(30 * time.Second).Unix()}).Expired(now))
	assert.True(t, (&StoredCredentials{ExpiresAt: now.Add(-time.Hour).Unix()}).Expired(now))
}
