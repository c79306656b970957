package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/ledgerline/freeagent-cli/pkg/freeagent"
)

// Flag accessors. Registration in init() guarantees the flags exist, so
// lookup errors are ignored.

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func flagInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}

// runList fetches every page of a collection and renders it in the
// selected output format.
func runList(cmd *cobra.Command, path, collectionKey string, fields []string, params url.Values) {
	app, err := newApp(cmd)
	exitOnError(err, "Failed to load configuration")
	defer app.Close()

	rows, err := app.client.FetchAll(cmdContext(cmd), path, params, collectionKey, pageOpts())
	exitOnError(err, "API request failed")
	exitOnError(renderRows(rows, fields), "Failed to render output")
}

// runGetDoc fetches a single wrapped document and renders it as a
// one-row projection.
func runGetDoc(cmd *cobra.Command, path, documentKey string, fields []string, params url.Values) {
	app, err := newApp(cmd)
	exitOnError(err, "Failed to load configuration")
	defer app.Close()

	payload, err := app.client.Get(cmdContext(cmd), path, params)
	exitOnError(err, "API request failed")
	doc := freeagent.Document(payload, documentKey)
	exitOnError(renderRows([]map[string]any{doc}, fields), "Failed to render output")
}

// runGetJSON fetches a single wrapped document and prints it as
// indented JSON regardless of the output format flag.
func runGetJSON(cmd *cobra.Command, path, documentKey string) {
	app, err := newApp(cmd)
	exitOnError(err, "Failed to load configuration")
	defer app.Close()

	payload, err := app.client.Get(cmdContext(cmd), path, nil)
	exitOnError(err, "API request failed")
	exitOnError(printJSON(freeagent.Document(payload, documentKey)), "Failed to render output")
}

// runCreate posts a JSON body, honoring --dry-run.
func runCreate(cmd *cobra.Command, path string, params url.Values) {
	body, err := parseJSONBody(flagString(cmd, "body"))
	exitOnError(err, "Invalid request body")

	if flagBool(cmd, "dry-run") {
		exitOnError(printJSON(body), "Failed to render output")
		return
	}

	app, err := newApp(cmd)
	exitOnError(err, "Failed to load configuration")
	defer app.Close()

	payload, err := app.client.Post(cmdContext(cmd), path, params, body)
	exitOnError(err, "API request failed")
	exitOnError(printJSON(payload), "Failed to render output")
}

// runUpdate puts a JSON body, honoring --dry-run.
func runUpdate(cmd *cobra.Command, path string) {
	body, err := parseJSONBody(flagString(cmd, "body"))
	exitOnError(err, "Invalid request body")

	if flagBool(cmd, "dry-run") {
		exitOnError(printJSON(body), "Failed to render output")
		return
	}

	app, err := newApp(cmd)
	exitOnError(err, "Failed to load configuration")
	defer app.Close()

	payload, err := app.client.Put(cmdContext(cmd), path, nil, body)
	exitOnError(err, "API request failed")
	exitOnError(printJSON(payload), "Failed to render output")
}

// runDelete deletes a resource, honoring --dry-run.
func runDelete(cmd *cobra.Command, path, label, id string) {
	if flagBool(cmd, "dry-run") {
		fmt.Printf("[dry-run] Would delete %s %s\n", label, id)
		return
	}

	app, err := newApp(cmd)
	exitOnError(err, "Failed to load configuration")
	defer app.Close()

	exitOnError(app.client.Delete(cmdContext(cmd), path), "API request failed")
	fmt.Printf("Deleted %s %s\n", label, id)
}

func addBodyFlag(cmd *cobra.Command, example string) {
	cmd.Flags().String("body", "", "JSON payload: "+example)
	cmd.MarkFlagRequired("body")
}

func addDryRunFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "preview the request without calling the API")
}
