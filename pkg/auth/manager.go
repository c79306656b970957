package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/ledgerline/freeagent-cli/pkg/config"
)

// Manager handles the OAuth2 token lifecycle: authorization-code
// exchange, refresh before expiry, and persistence through a Store.
type Manager struct {
	store      *Store
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewManager creates a token manager for the configured FreeAgent app.
func NewManager(cfg *config.Config, store *Store) *Manager {
	conf := &oauth2.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURI,
		Scopes:       []string{cfg.OAuth.Scope},
		Endpoint: oauth2.Endpoint{
			AuthURL: cfg.AuthEndpoint(),
			TokenURL: cfg.TokenEndpoint(),
			// FreeAgent expects client credentials via HTTP basic auth.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return &Manager{
		store:      store,
		conf:       conf,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// AuthCodeURL builds the browser authorization URL for the given state.
func (m *Manager) AuthCodeURL(state string) string {
	return m.conf.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token pair and persists it.
func (m *Manager) Exchange(ctx context.Context, code string) (*Token, error) {
	oTok, err := m.conf.Exchange(m.withClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed (check credentials and redirect URI): %w", err)
	}

	token := fromOAuth2(oTok, "")
	if err := m.store.Save(token); err != nil {
		return nil, fmt.Errorf("failed to save tokens: %w", err)
	}
	return token, nil
}

// Valid returns a usable access token, refreshing and persisting it
// first when the stored one is expired.
func (m *Manager) Valid(ctx context.Context) (*Token, error) {
	token, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("no tokens found in %s: run `fa auth` first", m.store.Path())
	}

	if !token.Expired() {
		return token, nil
	}
	return m.refresh(ctx, token)
}

// ForceRefresh refreshes the stored token unconditionally. Used after
// the API rejects an access token with 401.
func (m *Manager) ForceRefresh(ctx context.Context) (*Token, error) {
	token, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("no tokens found in %s: run `fa auth` first", m.store.Path())
	}
	return m.refresh(ctx, token)
}

func (m *Manager) refresh(ctx context.Context, token *Token) (*Token, error) {
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("access token expired and no refresh token stored: run `fa auth` again")
	}

	source := m.conf.TokenSource(m.withClient(ctx), &oauth2.Token{
		RefreshToken: token.RefreshToken,
		Expiry:       time.Unix(1, 0), // force a refresh
	})
	oTok, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	refreshed := fromOAuth2(oTok, token.RefreshToken)
	if err := m.store.Save(refreshed); err != nil {
		return nil, fmt.Errorf("failed to save refreshed tokens: %w", err)
	}
	return refreshed, nil
}

// withClient routes oauth2's internal HTTP calls through our client so
// the configured timeout applies to token requests too.
func (m *Manager) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
}

// fromOAuth2 converts an oauth2 token, keeping the previous refresh
// token when the server does not rotate it.
func fromOAuth2(oTok *oauth2.Token, previousRefresh string) *Token {
	token := &Token{
		AccessToken:  oTok.AccessToken,
		RefreshToken: oTok.RefreshToken,
	}
	if token.RefreshToken == "" {
		token.RefreshToken = previousRefresh
	}
	if !oTok.Expiry.IsZero() {
		token.ExpiresAt = oTok.Expiry.Unix()
	}
	return token
}
