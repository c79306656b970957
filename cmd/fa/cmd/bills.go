package cmd

import (
	"github.com/spf13/cobra"
)

var billFields = []string{"url", "reference", "dated_on", "due_on", "total_value", "status"}

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Bill operations",
}

var billsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"view", flagString(cmd, "view"),
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
			"updated_since", flagString(cmd, "updated-since"),
		)
		if flagBool(cmd, "nested-bill-items") {
			params.Set("nested_bill_items", "true")
		}
		runList(cmd, "/bills", "bills", billFields, params)
	},
}

var billsListAllCmd = &cobra.Command{
	Use:   "list-all",
	Short: "List all bills",
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd, "/bills", "bills", billFields, nil)
	},
}

var billsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get bill by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetJSON(cmd, "/bills/"+args[0], "bill")
	},
}

var billsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a bill from JSON body",
	Run: func(cmd *cobra.Command, args []string) {
		runCreate(cmd, "/bills", nil)
	},
}

var billsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a bill from JSON body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd, "/bills/"+args[0])
	},
}

var billsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bill",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/bills/"+args[0], "bill", args[0])
	},
}

func init() {
	billsListCmd.Flags().String("view", "", "view filter (open, overdue, etc.)")
	billsListCmd.Flags().String("from-date", "", "filter from date (YYYY-MM-DD)")
	billsListCmd.Flags().String("to-date", "", "filter to date (YYYY-MM-DD)")
	billsListCmd.Flags().String("updated-since", "", "filter by updated_since timestamp")
	billsListCmd.Flags().Bool("nested-bill-items", false, "include nested bill items")
	addBodyFlag(billsCreateCmd, `{"bill": {...}}`)
	addDryRunFlag(billsCreateCmd)
	addBodyFlag(billsUpdateCmd, `{"bill": {...}}`)
	addDryRunFlag(billsUpdateCmd)
	addDryRunFlag(billsDeleteCmd)

	billsCmd.AddCommand(billsListCmd)
	billsCmd.AddCommand(billsListAllCmd)
	billsCmd.AddCommand(billsGetCmd)
	billsCmd.AddCommand(billsCreateCmd)
	billsCmd.AddCommand(billsUpdateCmd)
	billsCmd.AddCommand(billsDeleteCmd)
	rootCmd.AddCommand(billsCmd)
}
