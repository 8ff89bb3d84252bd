package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"yt-summarizer/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// oauthHTTPClient builds an authenticated HTTP client from a previously
// saved token file. Refreshed tokens are written back so they survive
// restarts. There is no interactive flow here: the token file must have
// been provisioned already (an API key is the usual path; OAuth exists
// for accounts that need their own quota).
func oauthHTTPClient(ctx context.Context, cfg *config.YouTubeConfig) (*http.Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		Endpoint:     google.Endpoint,
	}

	token, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth token from %s: %w", cfg.TokenFile, err)
	}
	if token.RefreshToken == "" && !token.Valid() {
		return nil, fmt.Errorf("token in %s is expired and has no refresh token", cfg.TokenFile)
	}

	source := &persistingTokenSource{
		config:    oauthConfig,
		token:     token,
		tokenFile: cfg.TokenFile,
	}
	return oauth2.NewClient(ctx, source), nil
}

// persistingTokenSource refreshes through the wrapped config and writes
// any new token back to disk.
type persistingTokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	mu        sync.Mutex
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := s.config.TokenSource(context.Background(), s.token).Token()
	if err != nil {
		return nil, err
	}

	if fresh.AccessToken != s.token.AccessToken {
		s.token = fresh
		if err := saveToken(s.tokenFile, fresh); err != nil {
			log.Printf("Warning: failed to save refreshed YouTube token: %v", err)
		}
	}
	return fresh, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
