package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/output"
)

var capitalAssetFields = []string{
	"url",
	"description",
	"asset_type",
	"purchased_on",
	"disposed_on",
	"asset_life_years",
	"depreciation_profile",
	"capital_asset_history",
	"created_at",
	"updated_at",
}

var capitalAssetTypeFields = []string{"url", "name", "system_default", "created_at", "updated_at"}

var capitalAssetsCmd = &cobra.Command{
	Use:   "capital-assets",
	Short: "Capital asset operations",
}

var capitalAssetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List capital assets",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams("view", flagString(cmd, "view"))
		if flagBool(cmd, "include-history") {
			params.Set("include_history", "true")
		}
		runList(cmd, "/capital_assets", "capital_assets", capitalAssetFields, params)
	},
}

var capitalAssetsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a capital asset by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams()
		if flagBool(cmd, "include-history") {
			params.Set("include_history", "true")
		}
		runGetDoc(cmd, "/capital_assets/"+args[0], "capital_asset", capitalAssetFields, params)
	},
}

var capitalAssetsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a capital asset from JSON body",
	Run: func(cmd *cobra.Command, args []string) {
		runCreate(cmd, "/capital_assets", nil)
	},
}

var capitalAssetsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a capital asset from JSON body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd, "/capital_assets/"+args[0])
	},
}

var capitalAssetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a capital asset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/capital_assets/"+args[0], "capital asset", args[0])
	},
}

var capitalAssetTypesCmd = &cobra.Command{
	Use:   "capital-asset-types",
	Short: "Capital asset type operations",
}

var capitalAssetTypesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List capital asset types",
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd, "/capital_asset_types", "capital_asset_types", capitalAssetTypeFields, nil)
	},
}

var capitalAssetTypesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a capital asset type by ID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runGetDoc(cmd, "/capital_asset_types/"+args[0], "capital_asset_type", capitalAssetTypeFields, nil)
	},
}

var capitalAssetTypesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a capital asset type from JSON body",
	Run: func(cmd *cobra.Command, args []string) {
		runCreate(cmd, "/capital_asset_types", nil)
	},
}

var capitalAssetTypesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a capital asset type from JSON body",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runUpdate(cmd, "/capital_asset_types/"+args[0])
	},
}

var capitalAssetTypesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a capital asset type",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/capital_asset_types/"+args[0], "capital asset type", args[0])
	},
}

var depreciationProfilesCmd = &cobra.Command{
	Use:   "depreciation-profiles",
	Short: "Helpers for depreciation_profile payloads",
}

var depreciationProfilesMethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List valid depreciation methods and required parameters",
	Run: func(cmd *cobra.Command, args []string) {
		rows := []map[string]any{
			{
				"method":              "straight_line",
				"required_parameters": "asset_life_years",
				"optional_parameters": "frequency (monthly|annually)",
			},
			{
				"method":              "reducing_balance",
				"required_parameters": "annual_depreciation_percentage",
				"optional_parameters": "frequency (monthly|annually)",
			},
			{
				"method":              "no_depreciation",
				"required_parameters": "-",
				"optional_parameters": "frequency (monthly|annually)",
			},
		}
		fields := []string{"method", "required_parameters", "optional_parameters"}
		exitOnError(renderRows(rows, fields), "Failed to render output")
	},
}

var depreciationProfilesBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a depreciation_profile payload for capital assets",
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := buildDepreciationProfile(
			flagString(cmd, "method"),
			flagString(cmd, "frequency"),
			flagInt(cmd, "asset-life-years"),
			flagInt(cmd, "annual-depreciation-percentage"),
		)
		exitOnError(err, "Invalid depreciation profile")

		payload := map[string]any{
			"capital_asset": map[string]any{"depreciation_profile": profile},
		}

		format, err := output.ParseFormat(outputFormat)
		exitOnError(err, "Invalid output format")
		if format == output.FormatYAML {
			exitOnError(output.PrintYAML(cmd.OutOrStdout(), payload), "Failed to render output")
			return
		}
		exitOnError(printJSON(payload), "Failed to render output")
	},
}

// buildDepreciationProfile validates method-specific parameters and
// assembles the profile object. A zero years/percentage value means the
// flag was not given.
func buildDepreciationProfile(method, frequency string, assetLifeYears, annualPercentage int) (map[string]any, error) {
	profile := map[string]any{"method": method}
	if frequency != "" {
		if frequency != "monthly" && frequency != "annually" {
			return nil, fmt.Errorf("invalid frequency %q (expected monthly or annually)", frequency)
		}
		profile["frequency"] = frequency
	}

	switch method {
	case "straight_line":
		if assetLifeYears == 0 {
			return nil, errors.New("--asset-life-years is required for straight_line")
		}
		if assetLifeYears < 2 || assetLifeYears > 25 {
			return nil, errors.New("asset life years must be between 2 and 25")
		}
		profile["asset_life_years"] = assetLifeYears
	case "reducing_balance":
		if annualPercentage == 0 {
			return nil, errors.New("--annual-depreciation-percentage is required for reducing_balance")
		}
		if annualPercentage < 1 || annualPercentage > 99 {
			return nil, errors.New("annual depreciation percentage must be between 1 and 99")
		}
		profile["annual_depreciation_percentage"] = annualPercentage
	case "no_depreciation":
		if assetLifeYears != 0 {
			return nil, errors.New("--asset-life-years is not used for no_depreciation")
		}
		if annualPercentage != 0 {
			return nil, errors.New("--annual-depreciation-percentage is not used for no_depreciation")
		}
	default:
		return nil, fmt.Errorf("invalid method %q (expected straight_line, reducing_balance or no_depreciation)", method)
	}

	return profile, nil
}

func init() {
	capitalAssetsListCmd.Flags().String("view", "", "filter capital assets by view (all, disposed, disposable)")
	capitalAssetsListCmd.Flags().Bool("include-history", false, "include capital asset history events")
	capitalAssetsGetCmd.Flags().Bool("include-history", false, "include capital asset history events")
	addBodyFlag(capitalAssetsCreateCmd, `{"capital_asset": {...}}`)
	addDryRunFlag(capitalAssetsCreateCmd)
	addBodyFlag(capitalAssetsUpdateCmd, `{"capital_asset": {...}}`)
	addDryRunFlag(capitalAssetsUpdateCmd)
	addDryRunFlag(capitalAssetsDeleteCmd)

	capitalAssetsCmd.AddCommand(capitalAssetsListCmd)
	capitalAssetsCmd.AddCommand(capitalAssetsGetCmd)
	capitalAssetsCmd.AddCommand(capitalAssetsCreateCmd)
	capitalAssetsCmd.AddCommand(capitalAssetsUpdateCmd)
	capitalAssetsCmd.AddCommand(capitalAssetsDeleteCmd)
	rootCmd.AddCommand(capitalAssetsCmd)

	addBodyFlag(capitalAssetTypesCreateCmd, `{"capital_asset_type": {...}}`)
	addDryRunFlag(capitalAssetTypesCreateCmd)
	addBodyFlag(capitalAssetTypesUpdateCmd, `{"capital_asset_type": {...}}`)
	addDryRunFlag(capitalAssetTypesUpdateCmd)
	addDryRunFlag(capitalAssetTypesDeleteCmd)

	capitalAssetTypesCmd.AddCommand(capitalAssetTypesListCmd)
	capitalAssetTypesCmd.AddCommand(capitalAssetTypesGetCmd)
	capitalAssetTypesCmd.AddCommand(capitalAssetTypesCreateCmd)
	capitalAssetTypesCmd.AddCommand(capitalAssetTypesUpdateCmd)
	capitalAssetTypesCmd.AddCommand(capitalAssetTypesDeleteCmd)
	rootCmd.AddCommand(capitalAssetTypesCmd)

	depreciationProfilesBuildCmd.Flags().String("method", "", "depreciation method (straight_line, reducing_balance, no_depreciation)")
	depreciationProfilesBuildCmd.Flags().String("frequency", "", "posting frequency (monthly, annually)")
	depreciationProfilesBuildCmd.Flags().Int("asset-life-years", 0, "asset life in years (required for straight_line)")
	depreciationProfilesBuildCmd.Flags().Int("annual-depreciation-percentage", 0, "annual depreciation percentage 1-99 (required for reducing_balance)")
	depreciationProfilesBuildCmd.MarkFlagRequired("method")

	depreciationProfilesCmd.AddCommand(depreciationProfilesMethodsCmd)
	depreciationProfilesCmd.AddCommand(depreciationProfilesBuildCmd)
	rootCmd.AddCommand(depreciationProfilesCmd)
}
