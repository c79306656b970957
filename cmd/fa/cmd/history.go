package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/history"
	"github.com/ledgerline/freeagent-cli/pkg/pathutil"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the local API call history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent API calls",
	Run: func(cmd *cobra.Command, args []string) {
		store, conn := openHistoryStore(cmd)
		defer conn.Close()

		records, err := store.List(flagInt(cmd, "limit"))
		exitOnError(err, "Failed to read call history")

		rows := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, map[string]any{
				"id":        rec.ID,
				"command":   rec.Command,
				"method":    rec.Method,
				"path":      rec.Path,
				"status":    rec.Status,
				"called_at": rec.CalledAt.Format(time.RFC3339),
			})
		}
		fields := []string{"id", "command", "method", "path", "status", "called_at"}
		exitOnError(renderRows(rows, fields), "Failed to render output")
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show call history statistics",
	Run: func(cmd *cobra.Command, args []string) {
		store, conn := openHistoryStore(cmd)
		defer conn.Close()

		stats, err := store.GetStats()
		exitOnError(err, "Failed to read call history")

		lastCalled := ""
		if stats.LastCalledAt.Valid {
			lastCalled = stats.LastCalledAt.String
		}
		rows := []map[string]any{
			{"metric": "database", "value": conn.GetPath()},
			{"metric": "total_calls", "value": stats.TotalCalls},
			{"metric": "mutations", "value": stats.Mutations},
			{"metric": "error_calls", "value": stats.ErrorCalls},
		}
		for _, mc := range stats.ByMethod {
			rows = append(rows, map[string]any{
				"metric": "calls_" + strings.ToLower(mc.Method),
				"value":  mc.Count,
			})
		}
		rows = append(rows, map[string]any{"metric": "last_called_at", "value": lastCalled})
		exitOnError(renderRows(rows, []string{"metric", "value"}), "Failed to render output")
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded API calls",
	Run: func(cmd *cobra.Command, args []string) {
		store, conn := openHistoryStore(cmd)
		defer conn.Close()

		deleted, err := store.Clear()
		exitOnError(err, "Failed to clear call history")
		fmt.Printf("Deleted %d history records\n", deleted)
	},
}

// openHistoryStore opens the history database directly; unlike API
// commands this does not need credentials.
func openHistoryStore(cmd *cobra.Command) (*history.Store, *history.Connection) {
	cfg, err := loadConfig()
	exitOnError(err, "Failed to load configuration")

	resolver := pathutil.New(pathutil.Config{
		EnvFile:   cfg.EnvFile,
		HistoryDB: cfg.HistoryDB,
	})
	// Inspect commands should not create an empty database.
	if !resolver.FileExists(resolver.GetHistoryDBPath()) {
		fmt.Printf("No call history recorded yet (%s)\n", resolver.GetHistoryDBPath())
		os.Exit(0)
	}
	conn, err := openHistoryDB(resolver)
	exitOnError(err, "Failed to open call history database")

	return history.NewStore(conn), conn
}

func init() {
	historyListCmd.Flags().Int("limit", 50, "maximum number of records to show")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
