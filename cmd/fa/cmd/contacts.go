package cmd

import (
	"github.com/spf13/cobra"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Contact operations",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"view", flagString(cmd, "view"),
			"search", flagString(cmd, "search"),
			"updated_since", flagString(cmd, "updated-since"),
		)
		fields := []string{"url", "first_name", "last_name", "organisation_name", "email"}
		runList(cmd, "/contacts", "contacts", fields, params)
	},
}

var contactsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a contact by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fields := []string{
			"url",
			"first_name",
			"last_name",
			"organisation_name",
			"email",
			"phone_number",
			"mobile",
			"address1",
			"address2",
			"address3",
			"town",
			"region",
			"postcode",
			"country",
			"created_at",
			"updated_at",
		}
		runGetDoc(cmd, "/contacts/"+args[0], "contact", fields, nil)
	},
}

var contactsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a contact from JSON body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd, "/contacts/"+args[0])
	},
}

func init() {
	contactsListCmd.Flags().String("view", "", "view filter (active, inactive)")
	contactsListCmd.Flags().String("search", "", "search by name or email")
	contactsListCmd.Flags().String("updated-since", "", "filter by updated_since timestamp")

	addBodyFlag(contactsUpdateCmd, `{"contact": {...}}`)
	addDryRunFlag(contactsUpdateCmd)

	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsGetCmd)
	contactsCmd.AddCommand(contactsUpdateCmd)
	rootCmd.AddCommand(contactsCmd)
}
