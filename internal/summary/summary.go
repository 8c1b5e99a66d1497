// Package summary assembles the filtered purchy view: a defensively
// normalized, date-ordered row set plus the server's aggregate totals.
package summary

import (
	"sort"

	"github.com/kmadhuranga/purchy/internal/api"
	"github.com/kmadhuranga/purchy/internal/model"
)

// Report is the renderable result of a list fetch.
type Report struct {
	Rows        []model.Purchy
	TotalWeight float64
	TotalAmount float64
	Count       int
}

// Build turns a list response into a report. Totals come from the server
// verbatim and are never recomputed from the rows; the server's rounding of
// its own filter window is authoritative.
func Build(list *api.PurchyList) Report {
	if list == nil {
		return Report{Rows: []model.Purchy{}}
	}

	return Report{
		Rows:        Normalize(list.Items),
		TotalWeight: list.TotalWeight,
		TotalAmount: list.TotalAmount,
		Count:       list.Count,
	}
}

// Normalize returns the rows sorted ascending by delivery date. The sort is
// stable, so records sharing a date keep their input order, and records with
// a missing or unparsable date order before every dated record. Field values
// pass through untouched; a nil input yields an empty slice.
func Normalize(items []model.Purchy) []model.Purchy {
	rows := make([]model.Purchy, len(items))
	copy(rows, items)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DateValue().Before(rows[j].DateValue())
	})

	return rows
}
