package cmd

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/freeagent"
	"github.com/ledgerline/freeagent-cli/pkg/output"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Accounting reports",
}

var reportsProfitLossCmd = &cobra.Command{
	Use:   "profit-loss",
	Short: "Profit and loss summary",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
			"accounting_period", flagString(cmd, "accounting-period"),
		)
		runReport(cmd, "/accounting/profit_and_loss/summary", "profit_and_loss_summary", params)
	},
}

var reportsBalanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Balance sheet",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams("as_at_date", flagString(cmd, "as-at-date"))
		runReport(cmd, "/accounting/balance_sheet", "balance_sheet", params)
	},
}

var reportsTrialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Trial balance summary",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
		)
		runReport(cmd, "/accounting/trial_balance/summary", "trial_balance", params)
	},
}

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Cashflow summary",
}

var cashflowSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Cashflow summary for date range",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		params := listParams(
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
		)
		payload, err := app.client.Get(cmdContext(cmd), "/cashflow", params)
		exitOnError(err, "API request failed")
		data := freeagent.Document(payload, "cashflow")

		format, err := output.ParseFormat(outputFormat)
		exitOnError(err, "Invalid output format")
		switch format {
		case output.FormatJSON:
			exitOnError(printJSON(data), "Failed to render output")
		case output.FormatYAML:
			exitOnError(output.PrintYAML(cmd.OutOrStdout(), data), "Failed to render output")
		default:
			rows := []map[string]any{
				{"label": "balance", "value": data["balance"]},
				{"label": "incoming_total", "value": nestedTotal(data, "incoming")},
				{"label": "outgoing_total", "value": nestedTotal(data, "outgoing")},
				{"label": "from", "value": data["from"]},
				{"label": "to", "value": data["to"]},
			}
			exitOnError(renderRows(rows, []string{"label", "value"}), "Failed to render output")
		}
	},
}

func runReport(cmd *cobra.Command, path, documentKey string, params url.Values) {
	app, err := newApp(cmd)
	exitOnError(err, "Failed to load configuration")
	defer app.Close()

	payload, err := app.client.Get(cmdContext(cmd), path, params)
	exitOnError(err, "API request failed")
	exitOnError(printJSON(freeagent.Document(payload, documentKey)), "Failed to render output")
}

func nestedTotal(data map[string]any, key string) any {
	if section, ok := data[key].(map[string]any); ok {
		return section["total"]
	}
	return ""
}

func init() {
	reportsProfitLossCmd.Flags().String("from-date", "", "start date (YYYY-MM-DD); optional")
	reportsProfitLossCmd.Flags().String("to-date", "", "end date (YYYY-MM-DD); optional")
	reportsProfitLossCmd.Flags().String("accounting-period", "", "accounting period token (e.g. 2024/25); optional")
	reportsBalanceSheetCmd.Flags().String("as-at-date", "", "report date (YYYY-MM-DD)")
	reportsTrialBalanceCmd.Flags().String("from-date", "", "start date (YYYY-MM-DD)")
	reportsTrialBalanceCmd.Flags().String("to-date", "", "end date (YYYY-MM-DD)")

	reportsCmd.AddCommand(reportsProfitLossCmd)
	reportsCmd.AddCommand(reportsBalanceSheetCmd)
	reportsCmd.AddCommand(reportsTrialBalanceCmd)
	rootCmd.AddCommand(reportsCmd)

	cashflowSummaryCmd.Flags().String("from-date", "", "start date (YYYY-MM-DD)")
	cashflowSummaryCmd.Flags().String("to-date", "", "end date (YYYY-MM-DD)")
	cashflowSummaryCmd.MarkFlagRequired("from-date")
	cashflowSummaryCmd.MarkFlagRequired("to-date")

	cashflowCmd.AddCommand(cashflowSummaryCmd)
	rootCmd.AddCommand(cashflowCmd)
}
