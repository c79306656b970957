package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/freeagent"
)

var noteFields = []string{"url", "note", "parent_url", "author", "created_at", "updated_at"}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Note operations",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes for a contact or project",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		params := listParams(
			"contact", flagString(cmd, "contact"),
			"project", flagString(cmd, "project"),
		)
		payload, err := app.client.Get(cmdContext(cmd), "/notes", params)
		exitOnError(err, "API request failed")

		rows := freeagent.Collection(payload, "notes")
		exitOnError(renderRows(rows, noteFields), "Failed to render output")
	},
}

var notesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/notes/"+args[0], "note", noteFields, nil)
	},
}

var notesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note for a contact or project",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"contact", flagString(cmd, "contact"),
			"project", flagString(cmd, "project"),
		)

		if flagBool(cmd, "dry-run") {
			body, err := parseJSONBody(flagString(cmd, "body"))
			exitOnError(err, "Invalid request body")
			scope := map[string]any{}
			for key := range params {
				scope[key] = params.Get(key)
			}
			exitOnError(printJSON(map[string]any{"params": scope, "body": body}), "Failed to render output")
			return
		}

		runCreate(cmd, "/notes", params)
	},
}

var notesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd, "/notes/"+args[0])
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/notes/"+args[0], "note", args[0])
	},
}

func init() {
	notesListCmd.Flags().String("contact", "", "contact URL")
	notesListCmd.Flags().String("project", "", "project URL")
	notesListCmd.MarkFlagsMutuallyExclusive("contact", "project")
	notesListCmd.MarkFlagsOneRequired("contact", "project")

	notesCreateCmd.Flags().String("contact", "", "contact URL")
	notesCreateCmd.Flags().String("project", "", "project URL")
	notesCreateCmd.MarkFlagsMutuallyExclusive("contact", "project")
	notesCreateCmd.MarkFlagsOneRequired("contact", "project")
	addBodyFlag(notesCreateCmd, `{"note": {"note": "..."}}`)
	addDryRunFlag(notesCreateCmd)

	addBodyFlag(notesUpdateCmd, `{"note": {"note": "..."}}`)
	addDryRunFlag(notesUpdateCmd)
	addDryRunFlag(notesDeleteCmd)

	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesGetCmd)
	notesCmd.AddCommand(notesCreateCmd)
	notesCmd.AddCommand(notesUpdateCmd)
	notesCmd.AddCommand(notesDeleteCmd)
	rootCmd.AddCommand(notesCmd)
}
