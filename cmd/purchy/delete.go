package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmadhuranga/purchy/internal/api"
	"github.com/kmadhuranga/purchy/internal/cli"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a purchy record",
		Long: `Delete the record identified by its account and record timestamp, then
re-fetch and display the account's remaining purchies.`,
		RunE: runDelete,
	}

	cmd.Flags().String("account", "", "account ID of the record (required)")
	cmd.Flags().String("ts", "", "purchy timestamp of the record (required)")
	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	accountID := mustString(cmd, "account")
	purchyTS := mustString(cmd, "ts")

	skipConfirm, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}
	if !skipConfirm {
		confirmed, promptErr := promptYesNo(bufio.NewReader(os.Stdin), "Delete this purchy?")
		if promptErr != nil {
			return promptErr
		}
		if !confirmed {
			fmt.Println(cli.FormatInfo("Delete canceled.")) //nolint:forbidigo // User-facing output
			return nil
		}
	}

	// Identity keys are validated before any request is made.
	if err := client.DeletePurchy(ctx, accountID, purchyTS); err != nil {
		return wrapMutationError(err, "delete")
	}

	fmt.Println(cli.FormatSuccess("Purchy deleted.")) //nolint:forbidigo // User-facing output
	fmt.Println()                                     //nolint:forbidigo // User-facing output

	return refetchAndRender(ctx, client, api.ListFilter{AccountID: accountID})
}
