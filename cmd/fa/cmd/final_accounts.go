package cmd

import (
	"github.com/spf13/cobra"
)

var finalAccountsFields = []string{
	"url",
	"period_ends_on",
	"period_starts_on",
	"filing_due_on",
	"filing_status",
	"filed_at",
	"filed_reference",
}

var finalAccountsCmd = &cobra.Command{
	Use:   "final-accounts",
	Short: "Final accounts reports",
}

var finalAccountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List final accounts reports",
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd, "/final_accounts_reports", "final_accounts_reports", finalAccountsFields, nil)
	},
}

var finalAccountsGetCmd = &cobra.Command{
	Use:   "get <period-ends-on>",
	Short: "Get a final accounts report by period end",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/final_accounts_reports/"+args[0], "final_accounts_report", finalAccountsFields, nil)
	},
}

var finalAccountsMarkFiledCmd = &cobra.Command{
	Use:   "mark-filed <period-ends-on>",
	Short: "Mark a final accounts report as filed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		markFinalAccounts(cmd, args[0], "mark_as_filed")
	},
}

var finalAccountsMarkUnfiledCmd = &cobra.Command{
	Use:   "mark-unfiled <period-ends-on>",
	Short: "Mark a final accounts report as unfiled",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		markFinalAccounts(cmd, args[0], "mark_as_unfiled")
	},
}

func markFinalAccounts(cmd *cobra.Command, periodEndsOn, action string) {
	app, err := newApp(cmd)
	exitOnError(err, "Failed to load configuration")
	defer app.Close()

	path := "/final_accounts_reports/" + periodEndsOn + "/" + action
	payload, err := app.client.Put(cmdContext(cmd), path, nil, nil)
	exitOnError(err, "API request failed")
	exitOnError(printJSON(payload), "Failed to render output")
}

func init() {
	finalAccountsCmd.AddCommand(finalAccountsListCmd)
	finalAccountsCmd.AddCommand(finalAccountsGetCmd)
	finalAccountsCmd.AddCommand(finalAccountsMarkFiledCmd)
	finalAccountsCmd.AddCommand(finalAccountsMarkUnfiledCmd)
	rootCmd.AddCommand(finalAccountsCmd)
}
