package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/freeagent"
)

var userFields = []string{
	"url",
	"first_name",
	"last_name",
	"email",
	"role",
	"permission_level",
	"opening_mileage",
	"created_at",
	"updated_at",
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User operations",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams("view", flagString(cmd, "view"))
		runList(cmd, "/users", "users", userFields, params)
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a user by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, userPath(args[0]), "user", userFields, nil)
	},
}

var usersMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Get the current user profile",
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/users/me", "user", userFields, nil)
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/users/"+args[0], "user", args[0])
	},
}

var usersSetPermissionCmd = &cobra.Command{
	Use:   "set-permission <id>",
	Short: "Update a user's permission level",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		level := flagInt(cmd, "permission-level")
		if level < 0 || level > 8 {
			exitOnError(fmt.Errorf("permission level %d out of range 0-8", level), "Invalid permission level")
		}

		body := map[string]any{"user": map[string]any{"permission_level": level}}
		if flagBool(cmd, "dry-run") {
			exitOnError(printJSON(body), "Failed to render output")
			return
		}

		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		payload, err := app.client.Put(cmdContext(cmd), "/users/"+args[0], nil, body)
		exitOnError(err, "API request failed")
		exitOnError(printJSON(payload), "Failed to render output")
	},
}

var usersGetPermissionCmd = &cobra.Command{
	Use:   "get-permission <id>",
	Short: "Show a user's permission level",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		payload, err := app.client.Get(cmdContext(cmd), "/users/"+args[0], nil)
		exitOnError(err, "API request failed")

		user := freeagent.Document(payload, "user")
		exitOnError(printJSON(map[string]any{"permission_level": user["permission_level"]}), "Failed to render output")
	},
}

var usersSetHiddenCmd = &cobra.Command{
	Use:   "set-hidden <id>",
	Short: "Hide or unhide a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hidden := flagString(cmd, "hidden")
		if hidden != "true" && hidden != "false" {
			exitOnError(fmt.Errorf("invalid --hidden value %q (expected true or false)", hidden), "Invalid flag")
		}

		body := map[string]any{"user": map[string]any{"hidden": hidden == "true"}}
		if flagBool(cmd, "dry-run") {
			exitOnError(printJSON(body), "Failed to render output")
			return
		}

		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		payload, err := app.client.Put(cmdContext(cmd), "/users/"+args[0], nil, body)
		exitOnError(err, "API request failed")
		exitOnError(printJSON(payload), "Failed to render output")
	},
}

// userPath maps the literal ID "me" to the profile endpoint.
func userPath(id string) string {
	if id == "me" {
		return "/users/me"
	}
	return "/users/" + id
}

func init() {
	usersListCmd.Flags().String("view", "", "filter users by view (all, staff, active_staff, advisors, active_advisors)")
	addDryRunFlag(usersDeleteCmd)

	usersSetPermissionCmd.Flags().Int("permission-level", 0, "permission level 0-8 (see FreeAgent docs)")
	usersSetPermissionCmd.MarkFlagRequired("permission-level")
	addDryRunFlag(usersSetPermissionCmd)

	usersSetHiddenCmd.Flags().String("hidden", "", "set hidden flag (true|false)")
	usersSetHiddenCmd.MarkFlagRequired("hidden")
	addDryRunFlag(usersSetHiddenCmd)

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersMeCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersSetPermissionCmd)
	usersCmd.AddCommand(usersGetPermissionCmd)
	usersCmd.AddCommand(usersSetHiddenCmd)
	rootCmd.AddCommand(usersCmd)
}
