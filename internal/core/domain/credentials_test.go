package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentials(t *testing.T) {
	creds, err := NewCredentials("id", "secret")

	require.NoError(t, err)
	assert.Equal(t, "id", creds.ClientID)
	assert.Equal(t, "secret", creds.ClientSecret)
	assert.Empty(t, creds.AccessToken)
	assert.Empty(t, creds.RefreshToken)
}

func TestNewCredentials_MissingFields(t *testing.T) {
	tests := []struct {
		name         string
		clientID     string
		clientSecret string
	}{
		{"missing client_id", "", "secret"},
		{"missing client_secret", "id", ""},
		{"missing both", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCredentials(tt.clientID, tt.clientSecret)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCredentials_IsZero(t *testing.T) {
	var creds *Credentials
	assert.True(t, creds.IsZero(), "nil credentials are zero")
	assert.True(t, (&Credentials{}).IsZero())
	assert.False(t, (&Credentials{ClientID: "id"}).IsZero())
	assert.False(t, (&Credentials{AccessToken: "tok"}).IsZero())
}

func TestCredentials_SetTokens(t *testing.T) {
	creds := &Credentials{ClientID: "id", ClientSecret: "secret", AccessToken: "a1", RefreshToken: "r1"}

	creds.SetTokens("a2", "r2")

	assert.Equal(t, "a2", creds.AccessToken)
	assert.Equal(t, "r2", creds.RefreshToken)
}

func TestCredentials_JSONRoundTrip(t *testing.T) {
	creds := Credentials{
		ClientID:     "A",
		ClientSecret: "B",
		AccessToken:  "tok",
		RefreshToken: "R1",
	}

	data, err := json.Marshal(creds)
	require.NoError(t, err)

	// The on-disk keys are fixed by the credentials file format.
	for _, key := range []string{"client_id", "client_secret", "access_token", "refresh_token"} {
		assert.Contains(t, string(data), `"`+key+`"`)
	}

	var loaded Credentials
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, creds, loaded)
}
