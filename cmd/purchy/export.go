package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmadhuranga/purchy/internal/api"
	"github.com/kmadhuranga/purchy/internal/cli"
	"github.com/kmadhuranga/purchy/internal/config"
	"github.com/kmadhuranga/purchy/internal/export"
	"github.com/kmadhuranga/purchy/internal/summary"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered purchies to a CSV file",
		Long: `Fetch the purchies matching the filters and write them to a CSV file
named Purchies_<Account>_<date>.csv in the output directory.`,
		RunE: runExport,
	}

	cmd.Flags().String("account", api.AllAccounts, "account ID to filter by (default: all accounts)")
	cmd.Flags().String("from", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "inclusive end date (YYYY-MM-DD)")
	cmd.Flags().String("output", ".", "directory to write the CSV file into")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	filter := api.ListFilter{
		AccountID: mustString(cmd, "account"),
		From:      mustString(cmd, "from"),
		To:        mustString(cmd, "to"),
	}

	list, err := client.ListPurchies(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to fetch purchies: %w", err)
	}
	report := summary.Build(list)

	label := api.AllAccounts
	if !filter.IsAll() {
		accounts, accErr := client.ListAccounts(ctx)
		if accErr != nil {
			return fmt.Errorf("failed to list accounts: %w", accErr)
		}
		label = resolveAccountLabel(filter.AccountID, accounts)
	}

	outputDir := config.ExpandPath(mustString(cmd, "output"))

	path, err := export.WriteFile(outputDir, report.Rows, label, time.Now())
	if err != nil {
		if errors.Is(err, export.ErrEmptyExport) {
			fmt.Println(cli.FormatWarning("No rows to export.")) //nolint:forbidigo // User-facing output
			return nil
		}
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d purchies to %s", len(report.Rows), path))) //nolint:forbidigo // User-facing output
	return nil
}
