package freeagent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/ledgerline/freeagent-cli/pkg/auth"
	"github.com/ledgerline/freeagent-cli/pkg/config"
)

// stubTokens is a TokenSource with a fixed token and a counter for
// forced refreshes.
type stubTokens struct {
	mu        sync.Mutex
	token     *auth.Token
	refreshes int
}

func (s *stubTokens) Valid(ctx context.Context) (*auth.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *stubTokens) ForceRefresh(ctx context.Context) (*auth.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	s.token = &auth.Token{AccessToken: fmt.Sprintf("refreshed-%d", s.refreshes)}
	return s.token, nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *stubTokens, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := &stubTokens{token: &auth.Token{AccessToken: "initial"}}
	cfg := &config.Config{BaseURL: server.URL, Timeout: 5 * time.Second}
	client := NewClient(cfg, tokens)
	client.sleep = func(time.Duration) {}
	return client, tokens, server
}

func TestGetSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"company": {"name": "Acme"}}`)
	}))

	payload, err := client.Get(context.Background(), "/company", nil)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if gotAuth != "Bearer initial" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
	company := Document(payload, "company")
	if company["name"] != "Acme" {
		t.Errorf("company name = %v", company["name"])
	}
}

func TestRefreshOn401(t *testing.T) {
	var calls int
	client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") == "Bearer initial" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"ok": true}`)
	}))

	payload, err := client.Get(context.Background(), "/invoices", nil)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if payload["ok"] != true {
		t.Errorf("payload = %v", payload)
	}
	if tokens.refreshes != 1 {
		t.Errorf("refreshes = %d, expected 1", tokens.refreshes)
	}
	if calls != 2 {
		t.Errorf("calls = %d, expected 2", calls)
	}
}

func TestRefreshOn401OnlyOnce(t *testing.T) {
	var calls int
	client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Get(context.Background(), "/invoices", nil)
	if err == nil {
		t.Fatal("Get() should fail when refresh does not help")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, expected *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if tokens.refreshes != 1 {
		t.Errorf("refreshes = %d, expected exactly 1", tokens.refreshes)
	}
	if calls != 2 {
		t.Errorf("calls = %d, expected 2", calls)
	}
}

func TestRetryOn429HonorsRetryAfter(t *testing.T) {
	var calls int
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"ok": true}`)
	}))

	var slept time.Duration
	client.sleep = func(d time.Duration) { slept = d }

	if _, err := client.Get(context.Background(), "/bills", nil); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if slept != 3*time.Second {
		t.Errorf("slept = %v, expected 3s from Retry-After", slept)
	}
	if calls != 2 {
		t.Errorf("calls = %d, expected 2", calls)
	}
}

func TestRetryOn429OnlyOnce(t *testing.T) {
	var calls int
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.Get(context.Background(), "/bills", nil)
	if err == nil {
		t.Fatal("Get() should fail after the retry budget is spent")
	}
	if calls != 2 {
		t.Errorf("calls = %d, expected 2", calls)
	}
}

func TestRetryAfterDefaultsToOneSecond(t *testing.T) {
	if got := retryAfter(&APIError{}); got != time.Second {
		t.Errorf("retryAfter() = %v, expected 1s default", got)
	}
	if got := retryAfter(&APIError{retryAfterHeader: "not-a-number"}); got != time.Second {
		t.Errorf("retryAfter() = %v, expected 1s for bad header", got)
	}
	if got := retryAfter(&APIError{retryAfterHeader: "7"}); got != 7*time.Second {
		t.Errorf("retryAfter() = %v, expected 7s", got)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	apiErr := &APIError{StatusCode: 404, Path: "/invoices/9", Body: "not found"}
	want := "API error 404 on /invoices/9: not found"
	if apiErr.Error() != want {
		t.Errorf("Error() = %q, expected %q", apiErr.Error(), want)
	}
}

func TestDeleteEmptyBody(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, expected DELETE", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.Delete(context.Background(), "/invoices/1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
}

func TestFetchAllPaginates(t *testing.T) {
	perPage := 2
	total := 5
	var pagesSeen []string

	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pagesSeen = append(pagesSeen, page)

		start := 0
		switch page {
		case "1":
			start = 0
		case "2":
			start = 2
		case "3":
			start = 4
		default:
			t.Errorf("unexpected page %q", page)
		}

		items := ""
		for i := start; i < start+perPage && i < total; i++ {
			if items != "" {
				items += ","
			}
			items += fmt.Sprintf(`{"reference": "INV-%d"}`, i)
		}
		fmt.Fprintf(w, `{"invoices": [%s]}`, items)
	}))

	rows, err := client.FetchAll(context.Background(), "/invoices", nil, "invoices", PageOptions{PerPage: perPage})
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if len(rows) != total {
		t.Errorf("FetchAll() returned %d rows, expected %d", len(rows), total)
	}
	if len(pagesSeen) != 3 {
		t.Errorf("fetched %d pages, expected 3: %v", len(pagesSeen), pagesSeen)
	}
}

func TestFetchAllRespectsMaxPages(t *testing.T) {
	var calls int
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Always a full page, so only MaxPages stops the loop.
		fmt.Fprint(w, `{"invoices": [{"reference": "a"}, {"reference": "b"}]}`)
	}))

	rows, err := client.FetchAll(context.Background(), "/invoices", nil, "invoices", PageOptions{PerPage: 2, MaxPages: 2})
	if err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, expected MaxPages to cap at 2", calls)
	}
	if len(rows) != 4 {
		t.Errorf("rows = %d, expected 4", len(rows))
	}
}

func TestFetchAllForwardsParams(t *testing.T) {
	var gotView string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotView = r.URL.Query().Get("view")
		fmt.Fprint(w, `{"invoices": []}`)
	}))

	params := url.Values{}
	params.Set("view", "open")
	if _, err := client.FetchAll(context.Background(), "/invoices", params, "invoices", PageOptions{}); err != nil {
		t.Fatalf("FetchAll() error: %v", err)
	}
	if gotView != "open" {
		t.Errorf("view param = %q, expected open", gotView)
	}
}

func TestCollectionAndDocument(t *testing.T) {
	payload := map[string]any{
		"invoices": []any{
			map[string]any{"reference": "INV-1"},
			"not-an-object",
		},
		"invoice": map[string]any{"reference": "INV-1"},
	}

	rows := Collection(payload, "invoices")
	if len(rows) != 1 {
		t.Errorf("Collection() = %d rows, expected non-objects skipped", len(rows))
	}
	if doc := Document(payload, "invoice"); doc["reference"] != "INV-1" {
		t.Errorf("Document() = %v", doc)
	}
	if doc := Document(payload, "missing"); len(doc) != 0 {
		t.Errorf("Document() for missing key = %v, expected empty map", doc)
	}
}

func TestRecorderSeesCalls(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	recorder := &captureRecorder{}
	client.SetRecorder(recorder)

	if _, err := client.Get(context.Background(), "/company", nil); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(recorder.calls) != 1 {
		t.Fatalf("recorded %d calls, expected 1", len(recorder.calls))
	}
	if recorder.calls[0] != "GET /company 200" {
		t.Errorf("recorded call = %q", recorder.calls[0])
	}
}

type captureRecorder struct {
	calls []string
}

func (c *captureRecorder) RecordCall(method, path string, status int) {
	c.calls = append(c.calls, fmt.Sprintf("%s %s %d", method, path, status))
}
