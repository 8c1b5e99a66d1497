package api

import "net/url"

// AllAccounts is the sentinel selector matching every account.
const AllAccounts = "ALL"

// ListFilter selects the purchies to fetch: a specific account or ALL, with
// optional inclusive date bounds. Absent bounds mean unbounded.
type ListFilter struct {
	AccountID string
	From      string
	To        string
}

// Canonical returns the filter with AccountID defaulted to ALL when empty.
func (f ListFilter) Canonical() ListFilter {
	if f.AccountID == "" {
		f.AccountID = AllAccounts
	}
	return f
}

// Values encodes the canonical filter as list-query parameters. Date bounds
// are included only when set.
func (f ListFilter) Values() url.Values {
	f = f.Canonical()

	params := url.Values{}
	params.Set("account_id", f.AccountID)
	if f.From != "" {
		params.Set("from", f.From)
	}
	if f.To != "" {
		params.Set("to", f.To)
	}
	return params
}

// IsAll reports whether the filter matches every account.
func (f ListFilter) IsAll() bool {
	return f.Canonical().AccountID == AllAccounts
}
