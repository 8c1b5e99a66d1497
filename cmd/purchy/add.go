package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmadhuranga/purchy/internal/api"
	"github.com/kmadhuranga/purchy/internal/cli"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new purchy",
		Long: `Record a sugarcane delivery against an account. The account's display
name is captured onto the record at creation time; the server assigns the
record timestamp that forms its identity.`,
		RunE: runAdd,
	}

	cmd.Flags().String("account", "", "account ID the delivery belongs to (required)")
	cmd.Flags().String("date", "", "delivery date YYYY-MM-DD (required)")
	cmd.Flags().Float64("weight", 0, "delivered weight (required)")
	cmd.Flags().String("number", "", "optional purchy reference number")
	cmd.Flags().Float64("rate", 0, "optional unit price")
	cmd.Flags().String("note", "", "optional note")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	accountID := mustString(cmd, "account")
	weight, err := cmd.Flags().GetFloat64("weight")
	if err != nil {
		return err
	}

	req := api.CreatePurchyRequest{
		AccountID: accountID,
		Date:      mustString(cmd, "date"),
		Weight:    weight,
		PurchyID:  mustString(cmd, "number"),
		Note:      mustString(cmd, "note"),
	}
	if cmd.Flags().Changed("rate") {
		rate, rateErr := cmd.Flags().GetFloat64("rate")
		if rateErr != nil {
			return rateErr
		}
		req.Rate = &rate
	}
	if err := req.Validate(); err != nil {
		return err
	}

	// Capture the denormalized account name onto the record.
	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	account, err := findAccount(accountID, accounts)
	if err != nil {
		return err
	}
	req.AccountName = account.AccountName

	if _, err := client.CreatePurchy(ctx, req); err != nil {
		return fmt.Errorf("failed to create purchy: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Purchy recorded for %s on %s", account.AccountName, req.Date))) //nolint:forbidigo // User-facing output
	return nil
}
