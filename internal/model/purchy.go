package model

import (
	"strconv"
	"time"
)

// Purchy represents a single recorded sugarcane delivery transaction.
//
// The pair (AccountID, PurchyTS) is the only stable identity once the record
// is persisted; PurchyTS is assigned by the server at creation time and is
// distinct from PurchyDate, the user-entered delivery date.
type Purchy struct {
	AccountID   string   `json:"account_id"`
	AccountName string   `json:"account_name,omitempty"`
	PurchyTS    string   `json:"purchy_ts"`
	PurchyDate  string   `json:"purchy_date,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	PurchyID    string   `json:"purchy_id,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// DateValue interprets PurchyDate as a calendar date. Records with a missing
// or unparsable date get the zero time, which orders them before every valid
// date.
func (p *Purchy) DateValue() time.Time {
	if p.PurchyDate == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", p.PurchyDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DerivedAmount returns the monetary amount for display and export: the
// server-provided amount when present (authoritative, never recomputed),
// otherwise weight*rate when both are present. The second return value is
// false when the amount is unknown.
func (p *Purchy) DerivedAmount() (float64, bool) {
	if p.Amount != nil {
		return *p.Amount, true
	}
	if p.Weight != nil && p.Rate != nil {
		return *p.Weight * *p.Rate, true
	}
	return 0, false
}

// DisplayAccount returns the denormalized account name, falling back to the
// raw account ID when the name was never captured.
func (p *Purchy) DisplayAccount() string {
	if p.AccountName != "" {
		return p.AccountName
	}
	return p.AccountID
}

// FormatNumber renders a float the way users type it: no exponent, no
// trailing zeros. Used wherever numeric fields are compared or displayed as
// strings.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
