package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/freeagent"
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll operations",
}

var payrollListPeriodsCmd = &cobra.Command{
	Use:   "list-periods",
	Short: "List payroll periods for a tax year",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		path := fmt.Sprintf("/payroll/%d", flagInt(cmd, "year"))
		payload, err := app.client.Get(cmdContext(cmd), path, nil)
		exitOnError(err, "API request failed")

		rows := freeagent.Collection(payload, "periods")
		fields := []string{"url", "period", "frequency", "dated_on", "status"}
		exitOnError(renderRows(rows, fields), "Failed to render output")
	},
}

var payrollListPayslipsCmd = &cobra.Command{
	Use:   "list-payslips",
	Short: "List payslips for a payroll period",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		path := fmt.Sprintf("/payroll/%d/%d", flagInt(cmd, "year"), flagInt(cmd, "period"))
		payload, err := app.client.Get(cmdContext(cmd), path, nil)
		exitOnError(err, "API request failed")

		period := freeagent.Document(payload, "period")
		rows := freeagent.Collection(period, "payslips")
		fields := []string{
			"user",
			"dated_on",
			"tax_code",
			"basic_pay",
			"tax_deducted",
			"employee_ni",
			"employer_ni",
			"net_pay",
		}
		exitOnError(renderRows(rows, fields), "Failed to render output")
	},
}

func init() {
	payrollListPeriodsCmd.Flags().Int("year", 0, "payroll tax year end (e.g. 2026)")
	payrollListPeriodsCmd.MarkFlagRequired("year")

	payrollListPayslipsCmd.Flags().Int("year", 0, "payroll tax year end (e.g. 2026)")
	payrollListPayslipsCmd.Flags().Int("period", 0, "payroll period number (0-11)")
	payrollListPayslipsCmd.MarkFlagRequired("year")
	payrollListPayslipsCmd.MarkFlagRequired("period")

	payrollCmd.AddCommand(payrollListPeriodsCmd)
	payrollCmd.AddCommand(payrollListPayslipsCmd)
	rootCmd.AddCommand(payrollCmd)
}
