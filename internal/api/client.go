package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kmadhuranga/purchy/internal/common"
	"github.com/kmadhuranga/purchy/internal/model"
)

// Client exposes the typed operations of the purchy service.
type Client struct {
	transport *Transport
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) (*Client, error) {
	transport, err := NewTransport(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{transport: transport}, nil
}

// PurchyList is the response shape of the list operation. TotalWeight and
// TotalAmount are server aggregates and are trusted verbatim; when the
// server omits them they stay zero.
type PurchyList struct {
	Items       []model.Purchy `json:"items"`
	TotalWeight float64        `json:"total_weight"`
	TotalAmount float64        `json:"total_amount"`
	Count       int            `json:"count"`
}

// CreatePurchyRequest is the body of the create operation. AccountName is
// the denormalized display copy captured at creation time.
type CreatePurchyRequest struct {
	AccountID   string   `json:"account_id"`
	AccountName string   `json:"account_name"`
	Date        string   `json:"date"`
	Weight      float64  `json:"weight"`
	PurchyID    string   `json:"purchy_id,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// Validate checks the minimal required fields before submission.
func (r *CreatePurchyRequest) Validate() error {
	if r.AccountID == "" {
		return common.NewValidationError("account_id", "an account must be selected")
	}
	if r.Date == "" {
		return common.NewValidationError("date", "a delivery date is required")
	}
	if r.Weight <= 0 {
		return common.NewValidationError("weight", "a weight is required")
	}
	return nil
}

// ListAccounts fetches all accounts. A malformed response shape is coerced
// to an empty list rather than failing the caller.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	raw, err := c.transport.Do(ctx, http.MethodGet, "/accounts", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var accounts []model.Account
	if raw == nil || json.Unmarshal(raw, &accounts) != nil {
		return []model.Account{}, nil
	}
	return accounts, nil
}

// CreateAccount creates a new account. The result may be nil when the server
// responds with no content.
func (c *Client) CreateAccount(ctx context.Context, account model.Account) (*model.Account, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.transport.Do(ctx, http.MethodPost, "/accounts", nil, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var created model.Account
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to parse created account: %w", err)
	}
	return &created, nil
}

// CreatePurchy records a new delivery. The result may be nil when the server
// responds with no content.
func (c *Client) CreatePurchy(ctx context.Context, req CreatePurchyRequest) (*model.Purchy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.transport.Do(ctx, http.MethodPost, "/purchies", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchy: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var created model.Purchy
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to parse created purchy: %w", err)
	}
	return &created, nil
}

// ListPurchies fetches the purchies matching the filter. The items sequence
// is defensive: a missing or malformed items field yields an empty slice,
// never an error or a panic.
func (c *Client) ListPurchies(ctx context.Context, filter ListFilter) (*PurchyList, error) {
	raw, err := c.transport.Do(ctx, http.MethodGet, "/purchies", filter.Values(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchies: %w", err)
	}

	list := &PurchyList{Items: []model.Purchy{}}
	if raw == nil {
		return list, nil
	}

	var envelope struct {
		Items       json.RawMessage `json:"items"`
		TotalWeight float64         `json:"total_weight"`
		TotalAmount float64         `json:"total_amount"`
		Count       int             `json:"count"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		common.LogDebug("list response had unexpected shape, treating as empty", common.Fields{"error": err})
		return list, nil
	}

	list.TotalWeight = envelope.TotalWeight
	list.TotalAmount = envelope.TotalAmount
	list.Count = envelope.Count

	if len(envelope.Items) > 0 {
		var items []model.Purchy
		if err := json.Unmarshal(envelope.Items, &items); err != nil {
			common.LogDebug("items field was not an array, treating as empty", common.Fields{"error": err})
		} else {
			list.Items = items
		}
	}

	return list, nil
}

// DeletePurchy deletes the record identified by (accountID, purchyTS). Both
// keys are required; a missing key fails before any request is made.
func (c *Client) DeletePurchy(ctx context.Context, accountID, purchyTS string) error {
	if accountID == "" {
		return common.NewValidationError("account_id", "required to identify the purchy")
	}
	if purchyTS == "" {
		return common.NewValidationError("purchy_ts", "required to identify the purchy")
	}

	query := url.Values{}
	query.Set("account_id", accountID)
	query.Set("purchy_ts", purchyTS)

	if _, err := c.transport.Do(ctx, http.MethodDelete, "/purchies", query, nil); err != nil {
		return fmt.Errorf("failed to delete purchy: %w", err)
	}
	return nil
}

// UpdatePurchy applies the changed fields to the record identified by
// (accountID, purchyTS). The lookup key is always the record's original
// account; a change of account travels inside changes as new_account_id.
func (c *Client) UpdatePurchy(ctx context.Context, accountID, purchyTS string, changes map[string]string) (*model.Purchy, error) {
	if accountID == "" {
		return nil, common.NewValidationError("account_id", "required to identify the purchy")
	}
	if purchyTS == "" {
		return nil, common.NewValidationError("purchy_ts", "required to identify the purchy")
	}
	if len(changes) == 0 {
		return nil, common.NewValidationError("changes", "at least one field must change")
	}

	payload := make(map[string]any, len(changes)+2)
	for field, value := range changes {
		payload[field] = value
	}
	payload["account_id"] = accountID
	payload["purchy_ts"] = purchyTS

	raw, err := c.transport.Do(ctx, http.MethodPut, "/purchies", nil, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to update purchy: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	// The server wraps the updated record in an item field; accept a bare
	// record too.
	var updated struct {
		Item *model.Purchy `json:"item"`
	}
	if err := json.Unmarshal(raw, &updated); err == nil && updated.Item != nil {
		return updated.Item, nil
	}

	var record model.Purchy
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to parse updated purchy: %w", err)
	}
	if record.PurchyTS == "" {
		return nil, nil
	}
	return &record, nil
}
