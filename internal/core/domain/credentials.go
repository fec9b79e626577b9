package domain

import "fmt"

// Credentials holds the OAuth client and token state for a single Fitbit user.
//
// ClientID and ClientSecret are fixed at authorization time. The token pair is
// rotated by the Fitbit client whenever an access token is refreshed: Fitbit
// refresh tokens are single-use, so both fields are overwritten together.
// Whoever holds the record is responsible for persisting it after any call
// that may have refreshed tokens.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewCredentials builds a Credentials record for an OAuth client that has not
// been authorized yet. Tokens are filled in by the authorization flow.
func NewCredentials(clientID, clientSecret string) (*Credentials, error) {
	c := &Credentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the static client fields are present. The token fields
// are optional; an empty access token simply fails authorization server-side.
func (c *Credentials) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%w: client_secret is required", ErrInvalidInput)
	}
	return nil
}

// IsZero reports whether the record carries no credentials at all.
func (c *Credentials) IsZero() bool {
	return c == nil ||
		(c.ClientID == "" && c.ClientSecret == "" && c.AccessToken == "" && c.RefreshToken == "")
}

// SetTokens replaces the token pair. Both tokens always rotate together.
func (c *Credentials) SetTokens(accessToken, refreshToken string) {
	c.AccessToken = accessToken
	c.RefreshToken = refreshToken
}
