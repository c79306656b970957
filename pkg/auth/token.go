// Package auth provides OAuth2 token management for the FreeAgent API.
// Tokens are persisted in the same .env file that holds the OAuth
// application settings, so one file carries the whole credential set.
package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerline/freeagent-cli/pkg/config"
)

// Refresh this long before the stored expiry.
const expiryBuffer = 60 * time.Second

// Env file keys for the persisted token set.
const (
	keyAccessToken  = "FREEAGENT_ACCESS_TOKEN"
	keyRefreshToken = "FREEAGENT_REFRESH_TOKEN"
	keyExpiresAt    = "FREEAGENT_EXPIRES_AT"
)

// Token represents a FreeAgent OAuth2 token pair.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64 // epoch seconds
}

// Expired reports whether the token is expired or will expire soon.
// A token without a stored expiry counts as expired.
func (t *Token) Expired() bool {
	if t.ExpiresAt == 0 {
		return true
	}
	return time.Now().Add(expiryBuffer).After(time.Unix(t.ExpiresAt, 0))
}

// Store persists tokens into an env file.
type Store struct {
	path  string
	oauth config.OAuthConfig
}

// NewStore creates a token store backed by the given env file.
// The OAuth settings are re-written on save so a freshly created file
// is self-contained.
func NewStore(path string, oauth config.OAuthConfig) *Store {
	return &Store{path: path, oauth: oauth}
}

// Path returns the env file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted token from the env file merged with the
// process environment; process env wins. Legacy unprefixed keys
// (ACCESS_TOKEN, REFRESH_TOKEN, EXPIRES_AT) are accepted on read.
// Returns nil when no access token is stored.
func (s *Store) Load() (*Token, error) {
	fileEnv, err := s.readFile()
	if err != nil {
		return nil, err
	}

	lookup := func(keys ...string) string {
		for _, key := range keys {
			if v := os.Getenv(key); v != "" {
				return v
			}
			if v := fileEnv[key]; v != "" {
				return v
			}
		}
		return ""
	}

	access := lookup(keyAccessToken, "ACCESS_TOKEN")
	if access == "" {
		return nil, nil
	}

	token := &Token{
		AccessToken:  access,
		RefreshToken: lookup(keyRefreshToken, "REFRESH_TOKEN"),
	}
	if raw := lookup(keyExpiresAt, "EXPIRES_AT"); raw != "" {
		expiresAt, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", keyExpiresAt, raw, err)
		}
		token.ExpiresAt = expiresAt
	}

	return token, nil
}

// Save writes the token back into the env file, preserving any other
// keys already present.
func (s *Store) Save(token *Token) error {
	fileEnv, err := s.readFile()
	if err != nil {
		return err
	}

	fileEnv[keyAccessToken] = token.AccessToken
	if token.RefreshToken != "" {
		fileEnv[keyRefreshToken] = token.RefreshToken
	}
	fileEnv[keyExpiresAt] = strconv.FormatInt(token.ExpiresAt, 10)

	setDefault(fileEnv, "FREEAGENT_OAUTH_ID", s.oauth.ClientID)
	setDefault(fileEnv, "FREEAGENT_OAUTH_SECRET", s.oauth.ClientSecret)
	setDefault(fileEnv, "FREEAGENT_OAUTH_REDIRECT_URI", s.oauth.RedirectURI)
	setDefault(fileEnv, "FREEAGENT_SCOPE", s.oauth.Scope)

	if err := godotenv.Write(fileEnv, s.path); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", s.path, err)
	}
	return nil
}

// readFile reads the env file as a map. A missing file is not an error.
func (s *Store) readFile() (map[string]string, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to stat env file %s: %w", s.path, err)
	}

	fileEnv, err := godotenv.Read(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", s.path, err)
	}
	return fileEnv, nil
}

func setDefault(env map[string]string, key, value string) {
	if env[key] == "" && value != "" {
		env[key] = value
	}
}
