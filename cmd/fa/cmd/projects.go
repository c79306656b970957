package cmd

import (
	"github.com/spf13/cobra"
)

var projectFields = []string{
	"url",
	"name",
	"status",
	"contact",
	"currency",
	"budget_units",
	"budget",
	"normal_billing_rate",
	"started_on",
	"ended_on",
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Project operations",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"view", flagString(cmd, "view"),
			"updated_since", flagString(cmd, "updated-since"),
		)
		runList(cmd, "/projects", "projects", projectFields, params)
	},
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a project by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/projects/"+args[0], "project", projectFields, nil)
	},
}

func init() {
	projectsListCmd.Flags().String("view", "", "filter projects by status (active, completed, all)")
	projectsListCmd.Flags().String("updated-since", "", "filter by updated_since timestamp")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsGetCmd)
	rootCmd.AddCommand(projectsCmd)
}
