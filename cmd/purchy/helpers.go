package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/kmadhuranga/purchy/internal/api"
	"github.com/kmadhuranga/purchy/internal/cli"
	"github.com/kmadhuranga/purchy/internal/common"
	"github.com/kmadhuranga/purchy/internal/model"
)

// newClient builds the service client from the configured base URL.
func newClient() (*api.Client, error) {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		return nil, common.NewUserError(
			"API base URL is not configured (set api.base_url, PURCHY_API_BASE_URL, or --api-url)",
			common.ErrMissingConfig)
	}

	return api.NewClient(baseURL)
}

// resolveAccountLabel maps an account selector to its display name for
// filenames and messages: ALL stays ALL, a known ID becomes the account
// name, an unknown ID passes through as-is.
func resolveAccountLabel(accountID string, accounts []model.Account) string {
	if accountID == "" || accountID == api.AllAccounts {
		return api.AllAccounts
	}
	for _, a := range accounts {
		if a.AccountID == accountID {
			return a.AccountName
		}
	}
	return accountID
}

// findAccount looks up an account by ID.
func findAccount(accountID string, accounts []model.Account) (*model.Account, error) {
	for i := range accounts {
		if accounts[i].AccountID == accountID {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("account %q: %w", accountID, common.ErrNotFound)
}

// findPurchy locates a record by its identity pair within a fetched list.
func findPurchy(items []model.Purchy, accountID, purchyTS string) (*model.Purchy, error) {
	for i := range items {
		if items[i].AccountID == accountID && items[i].PurchyTS == purchyTS {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("purchy (%s, %s): %w", accountID, purchyTS, common.ErrNotFound)
}

// wrapMutationError shapes a failed mutation for the user. A 404 from the
// service means the identity pair no longer matches any record, usually
// because the record was edited or deleted elsewhere.
func wrapMutationError(err error, action string) error {
	if api.IsStatus(err, http.StatusNotFound) {
		return common.NewUserError(
			fmt.Sprintf("failed to %s purchy: no record matches that account and timestamp", action), err)
	}
	return fmt.Errorf("failed to %s purchy: %w", action, err)
}

// refetchAndRender re-fetches the filtered list after a mutation and
// renders it, so the visible table is always consistent with the last
// completed fetch.
func refetchAndRender(ctx context.Context, client *api.Client, filter api.ListFilter) error {
	list, err := client.ListPurchies(ctx, filter)
	if err != nil {
		return err
	}
	renderReport(os.Stdout, list)
	return nil
}

func promptString(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", cli.FormatPrompt(prompt)) //nolint:forbidigo // User-facing output

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(input), nil
}

func promptYesNo(reader *bufio.Reader, prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", cli.FormatPrompt(prompt)) //nolint:forbidigo // User-facing output

	input, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	response := strings.ToLower(strings.TrimSpace(input))
	return response == "y" || response == "yes", nil
}
