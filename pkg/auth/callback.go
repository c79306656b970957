package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// CallbackResult carries the query parameters captured from the OAuth2
// redirect.
type CallbackResult struct {
	Code  string
	State string
}

// WaitForCallback serves a loopback HTTP endpoint on 127.0.0.1:port and
// blocks until one redirect request arrives or ctx is cancelled.
func WaitForCallback(ctx context.Context, port int) (*CallbackResult, error) {
	results := make(chan CallbackResult, 1)

	router := chi.NewRouter()
	// The redirect URI path is whatever the app registered, so accept any.
	router.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		result := CallbackResult{
			Code:  r.URL.Query().Get("code"),
			State: r.URL.Query().Get("state"),
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if result.Code != "" {
			fmt.Fprintln(w, "Authorization received. You may close this window.")
		} else {
			fmt.Fprintln(w, "Authorization failed.")
		}

		select {
		case results <- result:
		default:
		}
	})

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	server := &http.Server{Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	select {
	case result := <-results:
		return &result, nil
	case err := <-serveErr:
		return nil, fmt.Errorf("callback server failed: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
