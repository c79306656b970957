package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/auth"
)

var (
	authPort      int
	authNoBrowser bool
)

// authCmd runs the OAuth2 authorization-code flow and stores the
// resulting tokens in the env file.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize with FreeAgent via OAuth2",
	Long: `Authorize with FreeAgent via the OAuth2 authorization-code flow.

Opens the approval page in a browser, waits for the redirect on a local
callback server, exchanges the code for tokens and writes them to the
env file. Subsequent commands refresh the access token automatically.`,
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		state, err := randomState()
		exitOnError(err, "Failed to generate state")

		store := auth.NewStore(app.cfg.EnvFile, app.cfg.OAuth)
		manager := auth.NewManager(app.cfg, store)

		authURL := manager.AuthCodeURL(state)
		fmt.Println("Open the following URL to authorize:")
		fmt.Println("  " + authURL)
		if !authNoBrowser {
			if err := openBrowser(authURL); err != nil {
				fmt.Println("Could not open a browser automatically; open the URL manually.")
			}
		}

		ctx := cmdContext(cmd)
		result, err := auth.WaitForCallback(ctx, callbackPort(app.cfg.OAuth.RedirectURI))
		exitOnError(err, "Authorization callback failed")
		exitOnError(validateCallback(result, state), "Authorization rejected")

		_, err = manager.Exchange(ctx, result.Code)
		exitOnError(err, "Token exchange failed")

		fmt.Printf("Authorization complete. Tokens saved to %s\n", store.Path())
	},
}

// authRefreshCmd forces a token refresh, mainly useful for checking
// that stored credentials still work.
var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a token refresh using the stored refresh token",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		store := auth.NewStore(app.cfg.EnvFile, app.cfg.OAuth)
		manager := auth.NewManager(app.cfg, store)

		token, err := manager.ForceRefresh(cmdContext(cmd))
		exitOnError(err, "Token refresh failed")

		fmt.Printf("Access token refreshed, expires at %d\n", token.ExpiresAt)
	},
}

func init() {
	authCmd.Flags().IntVar(&authPort, "port", 0, "callback port (default: port from the redirect URI, or 8888)")
	authCmd.Flags().BoolVar(&authNoBrowser, "no-browser", false, "do not try to open a browser automatically")
	authCmd.AddCommand(authRefreshCmd)
	rootCmd.AddCommand(authCmd)
}

// validateCallback checks the redirect result: a code must be present
// before the state is compared.
func validateCallback(result *auth.CallbackResult, state string) error {
	if result.Code == "" {
		return fmt.Errorf("no authorization code received")
	}
	if result.State != state {
		return fmt.Errorf("state mismatch: got %q", result.State)
	}
	return nil
}

// randomState generates an unguessable OAuth state parameter.
func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// callbackPort picks the local port to listen on: the --port flag wins,
// then the port embedded in the redirect URI, then 8888.
func callbackPort(redirectURI string) int {
	if authPort > 0 {
		return authPort
	}
	if u, err := url.Parse(redirectURI); err == nil {
		if p := u.Port(); p != "" {
			if port, err := strconv.Atoi(p); err == nil {
				return port
			}
		}
	}
	return 8888
}

// openBrowser opens the URL with the platform's default browser.
func openBrowser(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}
