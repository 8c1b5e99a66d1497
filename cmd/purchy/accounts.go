package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kmadhuranga/purchy/internal/cli"
	"github.com/kmadhuranga/purchy/internal/common"
	"github.com/kmadhuranga/purchy/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage ledger accounts",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())

	return cmd
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			accounts, err := client.ListAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			if len(accounts) == 0 {
				fmt.Println(cli.FormatInfo("No accounts yet. Use 'purchy accounts add' to create one.")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle("Accounts")) //nolint:forbidigo // User-facing output

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() {
				if flushErr := w.Flush(); flushErr != nil {
					common.LogError(flushErr, "failed to flush table writer", nil)
				}
			}()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Description"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("─", 12),
				strings.Repeat("─", 20),
				strings.Repeat("─", 30))

			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.AccountID, a.AccountName, placeholder(a.Description))
			}
			return nil
		},
	}
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new account",
		RunE:  runAccountsAdd,
	}

	cmd.Flags().String("name", "", "display name for the account (prompted if omitted)")
	cmd.Flags().String("description", "", "optional free-text description")

	return cmd
}

func runAccountsAdd(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	name := strings.TrimSpace(mustString(cmd, "name"))
	if name == "" {
		name, err = promptString(bufio.NewReader(os.Stdin), "Account name")
		if err != nil {
			return err
		}
	}

	account := model.Account{
		AccountName: name,
		Description: mustString(cmd, "description"),
	}
	if err := account.Validate(); err != nil {
		return err
	}

	created, err := client.CreateAccount(cmd.Context(), account)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if created != nil && created.AccountID != "" {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Account created: %s (%s)", created.AccountName, created.AccountID))) //nolint:forbidigo // User-facing output
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Account created: %s", account.AccountName))) //nolint:forbidigo // User-facing output
	}
	return nil
}
