package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var attachmentsCmd = &cobra.Command{
	Use:   "attachments",
	Short: "Attachment operations",
}

var attachmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List attachments",
	Run: func(cmd *cobra.Command, args []string) {
		params := listParams(
			"attachable_type", flagString(cmd, "attachable-type"),
			"attachable_id", flagString(cmd, "attachable-id"),
		)
		fields := []string{
			"url",
			"file_name",
			"content_type",
			"file_size",
			"description",
			"expires_at",
			"content_src",
		}
		runList(cmd, "/attachments", "attachments", fields, params)
	},
}

var attachmentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get an attachment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fields := []string{
			"url",
			"file_name",
			"content_type",
			"file_size",
			"description",
			"expires_at",
			"content_src",
			"content_src_medium",
			"content_src_small",
		}
		runGetDoc(cmd, "/attachments/"+args[0], "attachment", fields, nil)
	},
}

var attachmentsUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a new attachment",
	Run: func(cmd *cobra.Command, args []string) {
		filePath := flagString(cmd, "file")
		if _, err := os.Stat(filePath); err != nil {
			exitOnError(fmt.Errorf("file not found: %s", filePath), "Upload failed")
		}

		contentType := flagString(cmd, "content-type")
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(filePath))
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		fileName := flagString(cmd, "file-name")
		if fileName == "" {
			fileName = filepath.Base(filePath)
		}

		form := map[string]string{}
		for flag, field := range map[string]string{
			"description":     "description",
			"attachable-type": "attachable_type",
			"attachable-id":   "attachable_id",
		} {
			if v := flagString(cmd, flag); v != "" {
				form[field] = v
			}
		}
		form["content_type"] = contentType
		form["file_name"] = fileName

		if flagBool(cmd, "dry-run") {
			preview := map[string]any{"file": filePath, "form": form}
			exitOnError(printJSON(preview), "Failed to render output")
			return
		}

		app, err := newApp(cmd)
		exitOnError(err, "Failed to load configuration")
		defer app.Close()

		file, err := os.Open(filePath)
		exitOnError(err, "Upload failed")
		defer file.Close()

		payload, err := app.client.Upload(cmdContext(cmd), "/attachments", form, fileName, file, contentType)
		exitOnError(err, "API request failed")
		exitOnError(printJSON(payload), "Failed to render output")
	},
}

var attachmentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an attachment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDelete(cmd, "/attachments/"+args[0], "attachment", args[0])
	},
}

func init() {
	attachmentsListCmd.Flags().String("attachable-type", "", "filter by attachable type (e.g. Expense, BankTransactionExplanation)")
	attachmentsListCmd.Flags().String("attachable-id", "", "filter by attachable ID (resource ID)")

	attachmentsUploadCmd.Flags().String("file", "", "path to file")
	attachmentsUploadCmd.Flags().String("description", "", "optional description")
	attachmentsUploadCmd.Flags().String("attachable-type", "", "attach to type (e.g. Expense, BankTransactionExplanation)")
	attachmentsUploadCmd.Flags().String("attachable-id", "", "attach to resource ID")
	attachmentsUploadCmd.Flags().String("content-type", "", "override MIME type (default guessed from filename)")
	attachmentsUploadCmd.Flags().String("file-name", "", "override file name sent to FreeAgent (default: source file name)")
	attachmentsUploadCmd.MarkFlagRequired("file")
	addDryRunFlag(attachmentsUploadCmd)
	addDryRunFlag(attachmentsDeleteCmd)

	attachmentsCmd.AddCommand(attachmentsListCmd)
	attachmentsCmd.AddCommand(attachmentsGetCmd)
	attachmentsCmd.AddCommand(attachmentsUploadCmd)
	attachmentsCmd.AddCommand(attachmentsDeleteCmd)
	rootCmd.AddCommand(attachmentsCmd)
}
