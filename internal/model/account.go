// Package model defines the core data types shared across the application.
package model

import "fmt"

// Account represents a named ledger bucket (a farm or factory) that purchies
// are recorded under. Identity is server-assigned and immutable.
type Account struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	Description string `json:"description,omitempty"`
}

// Validate checks the fields required before an account can be created.
func (a *Account) Validate() error {
	if a.AccountName == "" {
		return fmt.Errorf("account name is required")
	}
	return nil
}
