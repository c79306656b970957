// Package cmd provides CLI commands for the fa FreeAgent client.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/auth"
	"github.com/ledgerline/freeagent-cli/pkg/config"
	"github.com/ledgerline/freeagent-cli/pkg/freeagent"
	"github.com/ledgerline/freeagent-cli/pkg/history"
	"github.com/ledgerline/freeagent-cli/pkg/output"
	"github.com/ledgerline/freeagent-cli/pkg/pathutil"
)

var (
	envFile      string
	baseURL      string
	outputFormat string
	startPage    int
	perPage      int
	maxPages     int
	timeoutSecs  float64
	debug        bool
	noHistory    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fa",
	Short: "FreeAgent accounting API client",
	Long: `fa is a command-line client for the FreeAgent accounting REST API.

It supports:
- OAuth2 authorization with token refresh and .env persistence
- Paginated listing of bank accounts, transactions, bills, invoices and more
- Create/update/delete operations from JSON payloads with dry-run mode
- Accounting reports (profit and loss, balance sheet, trial balance, cashflow)
- Output as a plain table, CSV, JSON or YAML

Example:
  fa auth
  fa bank-accounts list
  fa --format json invoices list --view open
  fa bills create --body '{"bill": {...}}' --dry-run`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", config.DefaultEnvFile, "path to .env file with credentials and tokens")
	flags.StringVar(&baseURL, "base-url", "", "override API base URL (default "+config.DefaultBaseURL+")")
	flags.StringVar(&outputFormat, "format", "plain", "output format for list commands (plain, csv, json, yaml)")
	flags.IntVar(&startPage, "page", 1, "pagination start page")
	flags.IntVar(&perPage, "per-page", freeagent.PageMax, "items per page (max 100)")
	flags.IntVar(&maxPages, "max-pages", 0, "maximum number of pages to fetch for list commands (0 = all)")
	flags.Float64Var(&timeoutSecs, "timeout", 30, "HTTP timeout in seconds")
	flags.BoolVar(&debug, "debug", false, "enable debug logging for HTTP calls")
	flags.BoolVar(&noHistory, "no-history", false, "disable the local call-history database")
}

// app bundles the pieces a command needs to talk to the API.
type app struct {
	cfg    *config.Config
	client *freeagent.Client
	conn   *history.Connection
}

// newApp loads configuration and wires up the API client with token
// management and (unless disabled) the call-history recorder.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver := pathutil.New(pathutil.Config{
		EnvFile:   cfg.EnvFile,
		HistoryDB: cfg.HistoryDB,
	})

	store := auth.NewStore(resolver.GetEnvFile(), cfg.OAuth)
	manager := auth.NewManager(cfg, store)
	client := freeagent.NewClient(cfg, manager)

	a := &app{cfg: cfg, client: client}

	if !noHistory {
		conn, err := openHistoryDB(resolver)
		if err != nil {
			// History is best-effort; an unwritable DB must not block API use.
			slog.Warn("call history disabled", "error", err)
		} else {
			a.conn = conn
			recorder := history.NewCallRecorder(history.NewStore(conn), commandPath(cmd))
			client.SetRecorder(recorder)
		}
	}

	return a, nil
}

// openHistoryDB prepares the history database directory and opens the
// connection.
func openHistoryDB(resolver *pathutil.PathResolver) (*history.Connection, error) {
	dbPath := resolver.GetHistoryDBPath()
	if err := resolver.EnsureParentDir(dbPath); err != nil {
		return nil, err
	}
	return history.Open(dbPath)
}

// Close releases the history database connection, if open.
func (a *app) Close() {
	if a.conn != nil {
		a.conn.Close()
	}
}

// loadConfig loads configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeoutSecs > 0 {
		cfg.Timeout = time.Duration(timeoutSecs * float64(time.Second))
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// commandPath returns the command path without the binary name,
// e.g. "invoices list".
func commandPath(cmd *cobra.Command) string {
	return strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), rootCmd.Name()))
}

// pageOpts builds pagination options from the global flags.
func pageOpts() freeagent.PageOptions {
	return freeagent.PageOptions{
		Page:     startPage,
		PerPage:  perPage,
		MaxPages: maxPages,
	}
}

// listParams builds query parameters from key/value pairs, skipping
// empty values.
func listParams(pairs ...string) url.Values {
	params := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			params.Set(pairs[i], pairs[i+1])
		}
	}
	return params
}

// renderRows writes rows to stdout in the selected output format.
func renderRows(rows []map[string]any, fields []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	return output.Render(os.Stdout, rows, fields, format)
}

// printJSON writes a value to stdout as indented JSON.
func printJSON(v any) error {
	return output.PrintJSON(os.Stdout, v)
}

// parseJSONBody parses a --body flag value.
func parseJSONBody(raw string) (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return body, nil
}

// exitOnError logs the error and terminates the process.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

// cmdContext returns the context for API calls.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
