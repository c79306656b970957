package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerline/freeagent-cli/pkg/config"
)

func testOAuth() config.OAuthConfig {
	return config.OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8888/callback",
		Scope:        "full",
	}
}

// clearTokenEnv shields Load from token variables in the host
// environment, which take precedence over the env file.
func clearTokenEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		keyAccessToken, keyRefreshToken, keyExpiresAt,
		"ACCESS_TOKEN", "REFRESH_TOKEN", "EXPIRES_AT",
	} {
		// t.Setenv registers the restore; godotenv-style lookups treat
		// unset and empty differently, so unset for the test body.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now().Unix()

	tests := []struct {
		name    string
		token   Token
		expired bool
	}{
		{"no expiry stored", Token{AccessToken: "a"}, true},
		{"already expired", Token{AccessToken: "a", ExpiresAt: now - 10}, true},
		{"expires within buffer", Token{AccessToken: "a", ExpiresAt: now + 30}, true},
		{"valid", Token{AccessToken: "a", ExpiresAt: now + 3600}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.Expired(); got != tt.expired {
				t.Errorf("Expired() = %v, expected %v", got, tt.expired)
			}
		})
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	clearTokenEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	store := NewStore(path, testOAuth())

	expiresAt := time.Now().Add(time.Hour).Unix()
	saved := &Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		ExpiresAt:    expiresAt,
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() returned nil token after Save()")
	}
	if loaded.AccessToken != saved.AccessToken {
		t.Errorf("AccessToken = %q, expected %q", loaded.AccessToken, saved.AccessToken)
	}
	if loaded.RefreshToken != saved.RefreshToken {
		t.Errorf("RefreshToken = %q, expected %q", loaded.RefreshToken, saved.RefreshToken)
	}
	if loaded.ExpiresAt != expiresAt {
		t.Errorf("ExpiresAt = %d, expected %d", loaded.ExpiresAt, expiresAt)
	}
}

func TestStoreSaveWritesOAuthDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	store := NewStore(path, testOAuth())

	if err := store.Save(&Token{AccessToken: "a", ExpiresAt: 1}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("failed to read env file: %v", err)
	}
	if env["FREEAGENT_OAUTH_ID"] != "client-id" {
		t.Errorf("FREEAGENT_OAUTH_ID = %q, expected client-id", env["FREEAGENT_OAUTH_ID"])
	}
	if env["FREEAGENT_OAUTH_SECRET"] != "client-secret" {
		t.Errorf("FREEAGENT_OAUTH_SECRET = %q, expected client-secret", env["FREEAGENT_OAUTH_SECRET"])
	}
}

func TestStoreSavePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"UNRELATED_KEY=keep-me",
		"FREEAGENT_OAUTH_ID=existing-id",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to seed env file: %v", err)
	}

	store := NewStore(path, testOAuth())
	if err := store.Save(&Token{AccessToken: "a", ExpiresAt: 1}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("failed to read env file: %v", err)
	}
	if env["UNRELATED_KEY"] != "keep-me" {
		t.Errorf("UNRELATED_KEY = %q, expected keep-me", env["UNRELATED_KEY"])
	}
	// Existing OAuth keys must not be overwritten.
	if env["FREEAGENT_OAUTH_ID"] != "existing-id" {
		t.Errorf("FREEAGENT_OAUTH_ID = %q, expected existing-id", env["FREEAGENT_OAUTH_ID"])
	}
}

func TestStoreSaveKeepsRefreshTokenWhenEmpty(t *testing.T) {
	clearTokenEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	store := NewStore(path, testOAuth())

	if err := store.Save(&Token{AccessToken: "a", RefreshToken: "r1", ExpiresAt: 1}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	// A refresh response without a rotated refresh token must not wipe
	// the stored one.
	if err := store.Save(&Token{AccessToken: "b", ExpiresAt: 2}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.RefreshToken != "r1" {
		t.Errorf("RefreshToken = %q, expected r1 to survive", loaded.RefreshToken)
	}
	if loaded.AccessToken != "b" {
		t.Errorf("AccessToken = %q, expected b", loaded.AccessToken)
	}
}

func TestStoreLoadProcessEnvWins(t *testing.T) {
	clearTokenEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"FREEAGENT_ACCESS_TOKEN=file-token",
		"FREEAGENT_REFRESH_TOKEN=file-refresh",
		"FREEAGENT_EXPIRES_AT=111",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to seed env file: %v", err)
	}

	t.Setenv("FREEAGENT_ACCESS_TOKEN", "env-token")
	t.Setenv("FREEAGENT_EXPIRES_AT", "222")

	store := NewStore(path, testOAuth())
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.AccessToken != "env-token" {
		t.Errorf("AccessToken = %q, expected process env to win over the file", loaded.AccessToken)
	}
	if loaded.ExpiresAt != 222 {
		t.Errorf("ExpiresAt = %d, expected 222 from process env", loaded.ExpiresAt)
	}
	// Keys absent from the process env still come from the file.
	if loaded.RefreshToken != "file-refresh" {
		t.Errorf("RefreshToken = %q, expected file-refresh", loaded.RefreshToken)
	}
}

func TestStoreLoadLegacyKeys(t *testing.T) {
	clearTokenEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"ACCESS_TOKEN=legacy-access",
		"REFRESH_TOKEN=legacy-refresh",
		"EXPIRES_AT=12345",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to seed env file: %v", err)
	}

	store := NewStore(path, testOAuth())
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load() returned nil for legacy keys")
	}
	if loaded.AccessToken != "legacy-access" {
		t.Errorf("AccessToken = %q, expected legacy-access", loaded.AccessToken)
	}
	if loaded.RefreshToken != "legacy-refresh" {
		t.Errorf("RefreshToken = %q, expected legacy-refresh", loaded.RefreshToken)
	}
	if loaded.ExpiresAt != 12345 {
		t.Errorf("ExpiresAt = %d, expected 12345", loaded.ExpiresAt)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	clearTokenEnv(t)
	store := NewStore(filepath.Join(t.TempDir(), "nope.env"), testOAuth())
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded != nil {
		t.Errorf("Load() = %+v, expected nil for missing file", loaded)
	}
}
