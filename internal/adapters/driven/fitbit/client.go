// Package fitbit implements the authenticated Fitbit Web API client.
//
// The client hides access-token expiry from its callers: a request that is
// rejected with 401 triggers exactly one token refresh and one retry. Fitbit
// refresh tokens are single-use, so a successful refresh rotates both tokens
// in the caller's Credentials record; the caller owns persisting it.
package fitbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
	"github.com/oxysheet/oxysheet-cli/internal/logger"
)

const (
	defaultBaseURL  = "https://api.fitbit.com/1/user/-/"
	defaultTokenURL = "https://api.fitbit.com/oauth2/token"

	// AuthorizeURL is the browser-facing endpoint of the authorization code
	// grant.
	AuthorizeURL = "https://www.fitbit.com/oauth2/authorize"

	// requestTimeout bounds connect+read of every call against the API.
	requestTimeout = 10 * time.Second
)

// APIError is a non-2xx response from the Fitbit API. Statuses other than
// 401 are propagated to the caller unchanged; the core never retries them.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fitbit: request failed with status %d", e.StatusCode)
}

// Client performs authenticated requests against the Fitbit Web API.
// It holds no per-user state; credentials are passed per call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokenURL   string
}

// NewClient creates a client against the production Fitbit endpoints.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		tokenURL:   defaultTokenURL,
	}
}

// FetchResource performs an authenticated GET of urlPath relative to the
// user resource base and returns the raw JSON body.
//
// On 401 the access token is refreshed once, creds is updated in place with
// the rotated pair, and the request is retried once with the new token. If
// the refresh or the retry fails with an HTTP error the call returns a
// *domain.CredentialsError carrying the server's error body: the stored
// credentials cannot be recovered without re-running the authorization flow.
// Any other non-2xx status is returned as *APIError, untouched.
func (c *Client) FetchResource(ctx context.Context, creds *domain.Credentials, urlPath string) (json.RawMessage, error) {
	if creds.IsZero() {
		return nil, &domain.CredentialsError{Reason: "no credentials configured"}
	}

	resourceURL := c.baseURL + urlPath
	body, err := c.get(ctx, resourceURL, creds.AccessToken)
	if err == nil {
		return body, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return nil, err
	}

	logger.Debug("access token rejected, refreshing")
	accessToken, err := c.refresh(ctx, creds)
	if err != nil {
		if errors.As(err, &apiErr) {
			return nil, &domain.CredentialsError{Reason: "token refresh failed", Payload: apiErr.Body}
		}
		return nil, err
	}

	body, err = c.get(ctx, resourceURL, accessToken)
	if err != nil {
		if errors.As(err, &apiErr) {
			return nil, &domain.CredentialsError{Reason: "retry after refresh failed", Payload: apiErr.Body}
		}
		return nil, err
	}
	return body, nil
}

// get performs a bearer-authenticated GET. An empty token is allowed; the
// request simply fails authorization server-side.
func (c *Client) get(ctx context.Context, resourceURL, accessToken string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fitbit request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// refresh exchanges the current refresh token for a new token pair and
// updates creds in place. On an HTTP error creds is left untouched and the
// error is an *APIError carrying the token endpoint's body.
func (c *Client) refresh(ctx context.Context, creds *domain.Credentials) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", creds.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(creds.ClientID, creds.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	var token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	creds.SetTokens(token.AccessToken, token.RefreshToken)
	return token.AccessToken, nil
}
