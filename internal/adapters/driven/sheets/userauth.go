package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gsheets "google.golang.org/api/sheets/v4"
)

// LoadClientConfig reads the operator's OAuth client JSON (downloaded from
// the Google Cloud Console) and returns the oauth2 configuration with the
// spreadsheets scope.
func LoadClientConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read Google client file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse Google client file: %w", err)
	}
	return cfg, nil
}

// LoadToken reads a stored authorized-user token.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read Google token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decode Google token file: %w", err)
	}
	return &token, nil
}

// SaveToken writes an authorized-user token, restricted to the owner.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode Google token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write Google token file: %w", err)
	}
	return nil
}

// fileTokenSource wraps an auto-refreshing TokenSource and writes the token
// file back whenever the access token changes, so later invocations reuse
// the refreshed token.
type fileTokenSource struct {
	mu   sync.Mutex
	path string
	base oauth2.TokenSource
	last string
}

// NewFileTokenSource returns a TokenSource for the stored token that
// persists refreshed tokens to path.
func NewFileTokenSource(cfg *oauth2.Config, path string, token *oauth2.Token) oauth2.TokenSource {
	return &fileTokenSource{
		path: path,
		base: cfg.TokenSource(context.Background(), token),
		last: token.AccessToken,
	}
}

// Token implements oauth2.TokenSource.
func (s *fileTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.last {
		if err := SaveToken(s.path, token); err != nil {
			return nil, fmt.Errorf("persist refreshed token: %w", err)
		}
		s.last = token.AccessToken
	}
	return token, nil
}
