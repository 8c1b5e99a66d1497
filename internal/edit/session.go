// Package edit implements the edit-session state machine for a single
// purchy record: a snapshot of the editable fields taken when editing
// begins, the live values as the user changes them, and a save that submits
// only the difference.
package edit

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmadhuranga/purchy/internal/model"
)

// Session errors.
var (
	// ErrNoChanges indicates a save attempted with an empty diff. No
	// request is made in that case.
	ErrNoChanges = errors.New("no changes to save")
	// ErrNotOpen indicates an operation on a session that is not open.
	ErrNotOpen = errors.New("edit session is not open")
)

// Fields holds the editable values of a purchy record as the strings the
// user sees and types. Numeric fields are kept in string form so that 5 and
// "5" never read as a change.
type Fields struct {
	PurchyDate string
	Weight     string
	PurchyID   string
	AccountID  string
}

// fieldsFrom captures the editable values of a record.
func fieldsFrom(p model.Purchy) Fields {
	f := Fields{
		PurchyDate: p.PurchyDate,
		PurchyID:   p.PurchyID,
		AccountID:  p.AccountID,
	}
	if p.Weight != nil {
		f.Weight = model.FormatNumber(*p.Weight)
	}
	return f
}

// Updater submits a field diff against the record identified by
// (accountID, purchyTS).
type Updater interface {
	UpdatePurchy(ctx context.Context, accountID, purchyTS string, changes map[string]string) (*model.Purchy, error)
}

// Session is the state machine Closed -> Open(snapshot, live) -> Closed.
// It exists only for the duration of one edit and is owned by the caller
// that opened it.
type Session struct {
	accountID string
	purchyTS  string
	snapshot  Fields
	live      Fields
	open      bool
}

// Open starts an edit session for the record, seeding both snapshot and
// live with its current editable values. The record's (account_id,
// purchy_ts) pair is retained as the update lookup key regardless of later
// edits to the account field.
func Open(p model.Purchy) *Session {
	fields := fieldsFrom(p)
	return &Session{
		accountID: p.AccountID,
		purchyTS:  p.PurchyTS,
		snapshot:  fields,
		live:      fields,
		open:      true,
	}
}

// IsOpen reports whether the session is open.
func (s *Session) IsOpen() bool {
	return s.open
}

// Live returns the current edit values.
func (s *Session) Live() Fields {
	return s.live
}

// SetFields replaces all live values at once. The snapshot is untouched.
func (s *Session) SetFields(f Fields) error {
	if !s.open {
		return ErrNotOpen
	}
	s.live = f
	return nil
}

// SetField updates one live value by its wire name.
func (s *Session) SetField(name, value string) error {
	if !s.open {
		return ErrNotOpen
	}

	switch name {
	case "purchy_date":
		s.live.PurchyDate = value
	case "weight":
		s.live.Weight = value
	case "purchy_id":
		s.live.PurchyID = value
	case "account_id":
		s.live.AccountID = value
	default:
		return fmt.Errorf("unknown editable field %q", name)
	}
	return nil
}

// Diff returns the changed subset of live relative to the snapshot, keyed
// by wire field name. A changed account is emitted as new_account_id: the
// lookup account identifying the existing record is always the original
// one, so the target account travels under a different name.
func (s *Session) Diff() map[string]string {
	changes := make(map[string]string)
	if s.live.PurchyDate != s.snapshot.PurchyDate {
		changes["purchy_date"] = s.live.PurchyDate
	}
	if s.live.Weight != s.snapshot.Weight {
		changes["weight"] = s.live.Weight
	}
	if s.live.PurchyID != s.snapshot.PurchyID {
		changes["purchy_id"] = s.live.PurchyID
	}
	if s.live.AccountID != s.snapshot.AccountID {
		changes["new_account_id"] = s.live.AccountID
	}
	return changes
}

// Save submits the diff through the updater. An empty diff fails with
// ErrNoChanges without calling the updater. On failure the session stays
// open with the live values intact, so user edits survive a failed save.
// On success the session closes and the caller should refetch the list.
func (s *Session) Save(ctx context.Context, updater Updater) error {
	if !s.open {
		return ErrNotOpen
	}

	changes := s.Diff()
	if len(changes) == 0 {
		return ErrNoChanges
	}

	if _, err := updater.UpdatePurchy(ctx, s.accountID, s.purchyTS, changes); err != nil {
		return err
	}

	s.close()
	return nil
}

// Cancel closes the session unconditionally, discarding snapshot and live.
func (s *Session) Cancel() {
	s.close()
}

func (s *Session) close() {
	s.open = false
	s.snapshot = Fields{}
	s.live = Fields{}
}
