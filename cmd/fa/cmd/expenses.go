package cmd

import (
	"github.com/spf13/cobra"
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Expense operations",
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"view", flagString(cmd, "view"),
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
			"updated_since", flagString(cmd, "updated-since"),
			"project", flagString(cmd, "project"),
		)
		fields := []string{"url", "dated_on", "category", "description", "gross_value", "currency"}
		runList(cmd, "/expenses", "expenses", fields, params)
	},
}

var timeslipsCmd = &cobra.Command{
	Use:   "timeslips",
	Short: "Timeslip operations",
}

var timeslipsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List timeslips",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"user", flagString(cmd, "user"),
			"project", flagString(cmd, "project"),
			"task", flagString(cmd, "task"),
			"from_date", flagString(cmd, "from-date"),
			"to_date", flagString(cmd, "to-date"),
			"view", flagString(cmd, "view"),
		)
		fields := []string{
			"url",
			"user",
			"project",
			"task",
			"dated_on",
			"hours",
			"billable",
			"billed_on",
			"comment",
		}
		runList(cmd, "/timeslips", "timeslips", fields, params)
	},
}

var timeslipsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a timeslip",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/timeslips/"+args[0], "timeslip", args[0])
	},
}

func init() {
	expensesListCmd.Flags().String("view", "", "view filter (recent, recurring)")
	expensesListCmd.Flags().String("from-date", "", "filter from date (YYYY-MM-DD)")
	expensesListCmd.Flags().String("to-date", "", "filter to date (YYYY-MM-DD)")
	expensesListCmd.Flags().String("updated-since", "", "filter by updated_since timestamp")
	expensesListCmd.Flags().String("project", "", "project URL to filter by project")

	timeslipsListCmd.Flags().String("user", "", "filter by user URL")
	timeslipsListCmd.Flags().String("project", "", "filter by project URL")
	timeslipsListCmd.Flags().String("task", "", "filter by task URL")
	timeslipsListCmd.Flags().String("from-date", "", "filter from date (YYYY-MM-DD)")
	timeslipsListCmd.Flags().String("to-date", "", "filter to date (YYYY-MM-DD)")
	timeslipsListCmd.Flags().String("view", "", "filter by billing state (all, unbilled, billed)")
	addDryRunFlag(timeslipsDeleteCmd)

	expensesCmd.AddCommand(expensesListCmd)
	rootCmd.AddCommand(expensesCmd)

	timeslipsCmd.AddCommand(timeslipsListCmd)
	timeslipsCmd.AddCommand(timeslipsDeleteCmd)
	rootCmd.AddCommand(timeslipsCmd)
}
