// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"
)

// stateTTL bounds how long an issued OAuth state value stays redeemable.
const stateTTL = 10 * time.Minute

// defaultAPIBase is the GitHub REST API root. Tests point it at a local
// server.
const defaultAPIBase = "https://api.github.com"

// GitHub drives the OAuth authorization-code flow against GitHub and
// resolves the authenticated user's profile.
type GitHub struct {
	oauth    *oauth2.Config
	sessions *SessionStore
	apiBase  string
	client   *http.Client

	mu     sync.Mutex
	states map[string]time.Time
}

// NewGitHub creates the OAuth flow. Empty client credentials leave the
// flow disabled: the login endpoints respond with an explanatory error
// instead of redirecting.
func NewGitHub(clientID, clientSecret, redirectURL string, sessions *SessionStore) *GitHub {
	return &GitHub{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user"},
			Endpoint:     githubendpoint.Endpoint,
		},
		sessions: sessions,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 10 * time.Second},
		states:   make(map[string]time.Time),
	}
}

// Enabled reports whether OAuth client credentials are configured.
func (g *GitHub) Enabled() bool {
	return g.oauth.ClientID != "" && g.oauth.ClientSecret != ""
}

// Sessions exposes the session store shared with the HTTP layer.
func (g *GitHub) Sessions() *SessionStore { return g.sessions }

// AuthURL issues a fresh CSRF state and returns the GitHub authorization
// URL to redirect the user to.
func (g *GitHub) AuthURL() (url, state string) {
	state = uuid.NewString()

	g.mu.Lock()
	g.states[state] = time.Now().Add(stateTTL)
	// Drop expired states while we hold the lock.
	now := time.Now()
	for s, exp := range g.states {
		if now.After(exp) {
			delete(g.states, s)
		}
	}
	g.mu.Unlock()

	return g.oauth.AuthCodeURL(state), state
}

// ConsumeState redeems a state value exactly once.
func (g *GitHub) ConsumeState(state string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	exp, ok := g.states[state]
	if !ok {
		return false
	}
	delete(g.states, state)
	return time.Now().Before(exp)
}

// Exchange trades the authorization code for an access token.
func (g *GitHub) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return token, nil
}

// FetchUser resolves the authenticated user's profile from the GitHub
// API.
func (g *GitHub) FetchUser(ctx context.Context, token *oauth2.Token) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiBase+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user: server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read user response: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("parse user response: %w", err)
	}
	return &user, nil
}
