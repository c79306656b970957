package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var invoiceFields = []string{
	"url",
	"reference",
	"contact",
	"status",
	"dated_on",
	"due_on",
	"total_value",
}

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Invoice operations",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	Run: func(cmd *cobra.Command, args []string) {
		sort := flagString(cmd, "sort")
		if sort != "" && sort != "created_at" && sort != "updated_at" {
			exitOnError(fmt.Errorf("invalid sort %q (expected created_at or updated_at)", sort), "Invalid flag")
		}

		params := listParams(
			"view", flagString(cmd, "view"),
			"updated_since", flagString(cmd, "updated-since"),
			"sort", sort,
		)
		if flagBool(cmd, "nested-invoice-items") {
			params.Set("nested_invoice_items", "true")
		}
		runList(cmd, "/invoices", "invoices", invoiceFields, params)
	},
}

var invoicesListAllCmd = &cobra.Command{
	Use:   "list-all",
	Short: "List all invoices",
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd, "/invoices", "invoices", invoiceFields, nil)
	},
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get invoice by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetJSON(cmd, "/invoices/"+args[0], "invoice")
	},
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice from JSON body",
	Run: func(cmd *cobra.Command, args []string) {
		runCreate(cmd, "/invoices", nil)
	},
}

var invoicesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an invoice from JSON body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd, "/invoices/"+args[0])
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/invoices/"+args[0], "invoice", args[0])
	},
}

func init() {
	invoicesListCmd.Flags().String("view", "", "view filter (e.g. open, overdue, draft)")
	invoicesListCmd.Flags().String("updated-since", "", "filter by updated_since timestamp")
	invoicesListCmd.Flags().String("sort", "", "sort order (created_at, updated_at)")
	invoicesListCmd.Flags().Bool("nested-invoice-items", false, "include nested invoice items")
	addBodyFlag(invoicesCreateCmd, `{"invoice": {...}}`)
	addDryRunFlag(invoicesCreateCmd)
	addBodyFlag(invoicesUpdateCmd, `{"invoice": {...}}`)
	addDryRunFlag(invoicesUpdateCmd)
	addDryRunFlag(invoicesDeleteCmd)

	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesListAllCmd)
	invoicesCmd.AddCommand(invoicesGetCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesUpdateCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	rootCmd.AddCommand(invoicesCmd)
}
