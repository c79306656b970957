package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/freeagent"
	"github.com/ledgerline/freeagent-cli/pkg/output"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Company operations",
}

var companyInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show company information",
	Run: func(cmd *cobra.Command, args []string) {
		fields := []string{
			"url",
			"name",
			"subdomain",
			"type",
			"currency",
			"mileage_units",
			"company_start_date",
			"trading_start_date",
			"freeagent_start_date",
			"first_accounting_year_end",
			"sales_tax_registration_status",
			"sales_tax_registration_number",
			"business_type",
			"business_category",
		}
		runGetDoc(cmd, "/company", "company", fields, nil)
	},
}

var companyBusinessCategoriesCmd = &cobra.Command{
	Use:   "business-categories",
	Short: "List all business categories",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		payload, err := app.client.Get(cmdContext(cmd), "/company/business_categories", nil)
		exitOnError(err, "API request failed")

		// The endpoint returns bare category names rather than objects.
		names, _ := payload["business_categories"].([]any)
		rows := make([]map[string]any, 0, len(names))
		for _, name := range names {
			rows = append(rows, map[string]any{"business_category": name})
		}
		exitOnError(renderRows(rows, []string{"business_category"}), "Failed to render output")
	},
}

var companyTaxTimelineCmd = &cobra.Command{
	Use:   "tax-timeline",
	Short: "Show upcoming tax events",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		payload, err := app.client.Get(cmdContext(cmd), "/company/tax_timeline", nil)
		exitOnError(err, "API request failed")

		rows := freeagent.Collection(payload, "timeline_items")
		fields := []string{"description", "nature", "dated_on", "amount_due", "is_personal"}
		exitOnError(renderRows(rows, fields), "Failed to render output")
	},
}

var salesTaxCmd = &cobra.Command{
	Use:   "sales-tax",
	Short: "Sales tax operations",
}

var salesTaxMossRatesCmd = &cobra.Command{
	Use:   "moss-rates",
	Short: "List EC MOSS sales tax rates for a country/date",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		params := listParams(
			"country", flagString(cmd, "country"),
			"date", flagString(cmd, "date"),
		)
		payload, err := app.client.Get(cmdContext(cmd), "/ec_moss/sales_tax_rates", params)
		exitOnError(err, "API request failed")

		rates := freeagent.Collection(payload, "sales_tax_rates")

		format, err := output.ParseFormat(outputFormat)
		exitOnError(err, "Invalid output format")
		switch format {
		case output.FormatJSON:
			exitOnError(printJSON(rates), "Failed to render output")
		case output.FormatYAML:
			exitOnError(output.PrintYAML(cmd.OutOrStdout(), rates), "Failed to render output")
		default:
			exitOnError(renderRows(rates, []string{"percentage", "band"}), "Failed to render output")
		}
	},
}

func init() {
	companyCmd.AddCommand(companyInfoCmd)
	companyCmd.AddCommand(companyBusinessCategoriesCmd)
	companyCmd.AddCommand(companyTaxTimelineCmd)
	rootCmd.AddCommand(companyCmd)

	salesTaxMossRatesCmd.Flags().String("country", "", "EU country name (place_of_supply)")
	salesTaxMossRatesCmd.Flags().String("date", "", "transaction date (YYYY-MM-DD)")
	salesTaxMossRatesCmd.MarkFlagRequired("country")
	salesTaxMossRatesCmd.MarkFlagRequired("date")

	salesTaxCmd.AddCommand(salesTaxMossRatesCmd)
	rootCmd.AddCommand(salesTaxCmd)
}
