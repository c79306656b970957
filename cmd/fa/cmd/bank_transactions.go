package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var explanationFields = []string{
	"url",
	"bank_account",
	"bank_transaction",
	"category",
	"type",
	"dated_on",
	"description",
	"gross_value",
	"project",
	"rebill_type",
	"sales_tax_status",
	"sales_tax_rate",
	"is_deletable",
	"updated_at",
}

var bankTransactionsCmd = &cobra.Command{
	Use:   "bank-transactions",
	Short: "Bank transaction operations",
}

var bankTransactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bank transactions",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"bank_account", flagString(cmd, "bank-account"),
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
			"view", flagString(cmd, "view"),
			"updated_since", flagString(cmd, "updated-since"),
		)
		fields := []string{
			"url",
			"dated_on",
			"unexplained_amount",
			"description",
			"is_bank_account_transfer",
		}
		runList(cmd, "/bank_transactions", "bank_transactions", fields, params)
	},
}

var bankTransactionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single bank transaction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetJSON(cmd, "/bank_transactions/"+args[0], "bank_transaction")
	},
}

var bankTransactionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an unexplained bank transaction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/bank_transactions/"+args[0], "bank transaction", args[0])
	},
}

var explanationsCmd = &cobra.Command{
	Use:   "bank-transaction-explanations",
	Short: "Bank transaction explanation operations",
}

var explanationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bank transaction explanations (requires bank account)",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		params := listParams(
			"bank_account", flagString(cmd, "bank-account"),
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
			"updated_since", flagString(cmd, "updated-since"),
		)
		rows, err := app.client.FetchAll(cmdContext(cmd), "/bank_transaction_explanations", params, "bank_transaction_explanations", pageOpts())
		exitOnError(err, "API request failed")

		if flagBool(cmd, "for-approval") {
			rows = markedForReview(rows)
		}

		fields := []string{
			"url",
			"bank_account",
			"bank_transaction",
			"category",
			"type",
			"dated_on",
			"description",
			"gross_value",
			"project",
			"rebill_type",
			"sales_tax_status",
			"sales_tax_rate",
			"marked_for_review",
			"is_deletable",
			"updated_at",
		}
		exitOnError(renderRows(rows, fields), "Failed to render output")
	},
}

var explanationsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a bank transaction explanation by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/bank_transaction_explanations/"+args[0], "bank_transaction_explanation", explanationFields, nil)
	},
}

var explanationsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a bank transaction explanation from JSON body",
	Run: func(cmd *cobra.Command, args []string) {
		runCreate(cmd, "/bank_transaction_explanations", nil)
	},
}

var explanationsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a bank transaction explanation from JSON body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd, "/bank_transaction_explanations/"+args[0])
	},
}

var explanationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bank transaction explanation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/bank_transaction_explanations/"+args[0], "bank transaction explanation", args[0])
	},
}

var explanationsApproveCmd = &cobra.Command{
	Use:   "approve <id>...",
	Short: "Approve explanations by clearing marked_for_review",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body := map[string]any{
			"bank_transaction_explanation": map[string]any{"marked_for_review": false},
		}

		if flagBool(cmd, "dry-run") {
			for _, id := range args {
				preview := map[string]any{"id": id}
				for k, v := range body {
					preview[k] = v
				}
				exitOnError(printJSON(preview), "Failed to render output")
			}
			return
		}

		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		for _, id := range args {
			payload, err := app.client.Put(cmdContext(cmd), "/bank_transaction_explanations/"+id, nil, body)
			exitOnError(err, "API request failed")
			exitOnError(printJSON(payload), "Failed to render output")
		}
	},
}

// markedForReview keeps only the rows whose marked_for_review field
// reads as true.
func markedForReview(rows []map[string]any) []map[string]any {
	filtered := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		switch v := row["marked_for_review"].(type) {
		case bool:
			if v {
				filtered = append(filtered, row)
			}
		case string:
			if strings.EqualFold(v, "true") {
				filtered = append(filtered, row)
			}
		}
	}
	return filtered
}

func init() {
	bankTransactionsListCmd.Flags().String("bank-account", "", "bank account URL")
	bankTransactionsListCmd.Flags().String("from-date", "", "filter from date (YYYY-MM-DD)")
	bankTransactionsListCmd.Flags().String("to-date", "", "filter to date (YYYY-MM-DD)")
	bankTransactionsListCmd.Flags().String("view", "", "view filter (all, unexplained, uncategorised, explained)")
	bankTransactionsListCmd.Flags().String("updated-since", "", "filter by updated_since timestamp")
	bankTransactionsListCmd.MarkFlagRequired("bank-account")
	addDryRunFlag(bankTransactionsDeleteCmd)

	bankTransactionsCmd.AddCommand(bankTransactionsListCmd)
	bankTransactionsCmd.AddCommand(bankTransactionsGetCmd)
	bankTransactionsCmd.AddCommand(bankTransactionsDeleteCmd)
	rootCmd.AddCommand(bankTransactionsCmd)

	explanationsListCmd.Flags().String("bank-account", "", "bank account URL to scope explanations")
	explanationsListCmd.Flags().String("from-date", "", "filter from date (YYYY-MM-DD)")
	explanationsListCmd.Flags().String("to-date", "", "filter to date (YYYY-MM-DD)")
	explanationsListCmd.Flags().String("updated-since", "", "filter by updated_since timestamp")
	explanationsListCmd.Flags().Bool("for-approval", false, "only show explanations marked for approval (marked_for_review=true)")
	explanationsListCmd.MarkFlagRequired("bank-account")
	addBodyFlag(explanationsCreateCmd, `{"bank_transaction_explanation": {...}}`)
	addDryRunFlag(explanationsCreateCmd)
	addBodyFlag(explanationsUpdateCmd, `{"bank_transaction_explanation": {...}}`)
	addDryRunFlag(explanationsUpdateCmd)
	addDryRunFlag(explanationsDeleteCmd)
	addDryRunFlag(explanationsApproveCmd)

	explanationsCmd.AddCommand(explanationsListCmd)
	explanationsCmd.AddCommand(explanationsGetCmd)
	explanationsCmd.AddCommand(explanationsCreateCmd)
	explanationsCmd.AddCommand(explanationsUpdateCmd)
	explanationsCmd.AddCommand(explanationsDeleteCmd)
	explanationsCmd.AddCommand(explanationsApproveCmd)
	rootCmd.AddCommand(explanationsCmd)
}
