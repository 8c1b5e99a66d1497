package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmadhuranga/purchy/internal/api"
	"github.com/kmadhuranga/purchy/internal/cli"
	"github.com/kmadhuranga/purchy/internal/edit"
	"github.com/kmadhuranga/purchy/internal/tui"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a purchy record",
		Long: `Edit the record identified by its account and record timestamp.

Without --set flags an interactive form opens, seeded with the record's
current values. Only the fields that actually changed are submitted; saving
with nothing changed is refused. A changed account moves the record to the
new account while the original identity pair still locates it.`,
		RunE: runEdit,
	}

	cmd.Flags().String("account", "", "account ID of the record (required)")
	cmd.Flags().String("ts", "", "purchy timestamp of the record (required)")
	cmd.Flags().StringArray("set", nil, "non-interactive edit as field=value (purchy_date, weight, purchy_id, account_id)")

	return cmd
}

func runEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	accountID := mustString(cmd, "account")
	purchyTS := mustString(cmd, "ts")

	// There is no single-record fetch; locate the record in its account's
	// list.
	list, err := client.ListPurchies(ctx, api.ListFilter{AccountID: accountID})
	if err != nil {
		return fmt.Errorf("failed to fetch purchies: %w", err)
	}
	record, err := findPurchy(list.Items, accountID, purchyTS)
	if err != nil {
		return err
	}

	session := edit.Open(*record)

	sets, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return err
	}

	if len(sets) > 0 {
		if err := applySetFlags(session, sets); err != nil {
			return err
		}
	} else {
		accounts, accErr := client.ListAccounts(ctx)
		if accErr != nil {
			return fmt.Errorf("failed to list accounts: %w", accErr)
		}

		fields, submitted, formErr := tui.RunEditForm(session.Live(), accounts)
		if formErr != nil {
			return formErr
		}
		if !submitted {
			session.Cancel()
			fmt.Println(cli.FormatInfo("Edit canceled.")) //nolint:forbidigo // User-facing output
			return nil
		}
		if err := session.SetFields(fields); err != nil {
			return err
		}
	}

	return saveAndRefresh(ctx, client, session, accountID)
}

// applySetFlags feeds field=value pairs into the edit session.
func applySetFlags(session *edit.Session, sets []string) error {
	for _, set := range sets {
		name, value, found := strings.Cut(set, "=")
		if !found {
			return fmt.Errorf("invalid --set %q, expected field=value", set)
		}
		if err := session.SetField(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

func saveAndRefresh(ctx context.Context, client *api.Client, session *edit.Session, accountID string) error {
	if err := session.Save(ctx, client); err != nil {
		if errors.Is(err, edit.ErrNoChanges) {
			fmt.Println(cli.FormatWarning("Please change at least one value before saving.")) //nolint:forbidigo // User-facing output
			return nil
		}
		return wrapMutationError(err, "update")
	}

	fmt.Println(cli.FormatSuccess("Purchy updated.")) //nolint:forbidigo // User-facing output
	fmt.Println()                                     //nolint:forbidigo // User-facing output

	return refetchAndRender(ctx, client, api.ListFilter{AccountID: accountID})
}
