package cmd

import (
	"github.com/spf13/cobra"
)

var bankFeedFields = []string{
	"url",
	"bank_account",
	"state",
	"feed_type",
	"bank_service_name",
	"sca_expires_at",
	"created_at",
	"updated_at",
}

var bankAccountsCmd = &cobra.Command{
	Use:   "bank-accounts",
	Short: "Bank account operations",
}

var bankAccountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bank accounts",
	Run: func(cmd *cobra.Command, args []string) {
		fields := []string{"url", "name", "type", "currency", "current_balance"}
		runList(cmd, "/bank_accounts", "bank_accounts", fields, nil)
	},
}

var bankFeedsCmd = &cobra.Command{
	Use:   "bank-feeds",
	Short: "Bank feed operations",
}

var bankFeedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bank feeds",
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd, "/bank_feeds", "bank_feeds", bankFeedFields, nil)
	},
}

var bankFeedsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a bank feed by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/bank_feeds/"+args[0], "bank_feed", bankFeedFields, nil)
	},
}

func init() {
	bankAccountsCmd.AddCommand(bankAccountsListCmd)
	rootCmd.AddCommand(bankAccountsCmd)

	bankFeedsCmd.AddCommand(bankFeedsListCmd)
	bankFeedsCmd.AddCommand(bankFeedsGetCmd)
	rootCmd.AddCommand(bankFeedsCmd)
}
