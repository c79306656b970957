package cmd

import (
	"github.com/spf13/cobra"
)

var ledgerTransactionFields = []string{
	"url",
	"dated_on",
	"description",
	"category",
	"category_name",
	"nominal_code",
	"debit_value",
	"source_item_url",
	"created_at",
	"updated_at",
	"foreign_currency_data",
}

var journalSetDetailFields = []string{
	"url",
	"dated_on",
	"description",
	"updated_at",
	"tag",
	"journal_entries",
	"bank_accounts",
	"stock_items",
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Accounting transactions",
}

var transactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounting transactions",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
			"nominal_code", flagString(cmd, "nominal-code"),
		)
		runList(cmd, "/accounting/transactions", "transactions", ledgerTransactionFields, params)
	},
}

var transactionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single accounting transaction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/accounting/transactions/"+args[0], "transaction", ledgerTransactionFields, nil)
	},
}

var journalSetsCmd = &cobra.Command{
	Use:   "journal-sets",
	Short: "Journal set operations",
}

var journalSetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal sets",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
			"updated_since", flagString(cmd, "updated-since"),
			"tag", flagString(cmd, "tag"),
		)
		fields := []string{"url", "dated_on", "description", "updated_at", "tag"}
		runList(cmd, "/journal_sets", "journal_sets", fields, params)
	},
}

var journalSetsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a journal set by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/journal_sets/"+args[0], "journal_set", journalSetDetailFields, nil)
	},
}

var journalSetsOpeningBalancesCmd = &cobra.Command{
	Use:   "opening-balances",
	Short: "Get the opening balances journal set",
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/journal_sets/opening_balances", "journal_set", journalSetDetailFields, nil)
	},
}

var journalSetsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a journal set from JSON body",
	Run: func(cmd *cobra.Command, args []string) {
		runCreate(cmd, "/journal_sets", nil)
	},
}

var journalSetsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a journal set from JSON body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd, "/journal_sets/"+args[0])
	},
}

var journalSetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/journal_sets/"+args[0], "journal set", args[0])
	},
}

func init() {
	transactionsListCmd.Flags().String("from-date", "", "filter from date (YYYY-MM-DD)")
	transactionsListCmd.Flags().String("to-date", "", "filter to date (YYYY-MM-DD)")
	transactionsListCmd.Flags().String("nominal-code", "", "filter by nominal code")

	transactionsCmd.AddCommand(transactionsListCmd)
	transactionsCmd.AddCommand(transactionsGetCmd)
	rootCmd.AddCommand(transactionsCmd)

	journalSetsListCmd.Flags().String("from-date", "", "filter from date (YYYY-MM-DD)")
	journalSetsListCmd.Flags().String("to-date", "", "filter to date (YYYY-MM-DD)")
	journalSetsListCmd.Flags().String("updated-since", "", "filter by updated_since timestamp")
	journalSetsListCmd.Flags().String("tag", "", "filter by tag")
	addBodyFlag(journalSetsCreateCmd, `{"journal_set": {...}}`)
	addDryRunFlag(journalSetsCreateCmd)
	addBodyFlag(journalSetsUpdateCmd, `{"journal_set": {...}}`)
	addDryRunFlag(journalSetsUpdateCmd)
	addDryRunFlag(journalSetsDeleteCmd)

	journalSetsCmd.AddCommand(journalSetsListCmd)
	journalSetsCmd.AddCommand(journalSetsGetCmd)
	journalSetsCmd.AddCommand(journalSetsOpeningBalancesCmd)
	journalSetsCmd.AddCommand(journalSetsCreateCmd)
	journalSetsCmd.AddCommand(journalSetsUpdateCmd)
	journalSetsCmd.AddCommand(journalSetsDeleteCmd)
	rootCmd.AddCommand(journalSetsCmd)
}
