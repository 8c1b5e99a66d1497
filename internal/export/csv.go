// Package export serializes a purchy row set into the CSV artifact users
// download: fixed header, per-row amount derivation, and quoted cells.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/kmadhuranga/purchy/internal/model"
)

// ErrEmptyExport indicates an export attempted with zero rows. No file is
// produced.
var ErrEmptyExport = errors.New("no rows to export")

// header is the fixed column order of every export.
var header = []string{"Date", "Purchy Number", "Account", "Weight", "Rate", "Amount", "Purchy TS"}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	unsafeRe     = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// Render serializes the rows into a CSV document. The Amount column is
// re-derived per row: the record's amount when present, else weight*rate
// when both are present, else empty.
func Render(rows []model.Purchy) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyExport
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderLine(header))

	for i := range rows {
		p := &rows[i]

		amount := ""
		if v, ok := p.DerivedAmount(); ok {
			amount = model.FormatNumber(v)
		}

		lines = append(lines, renderLine([]string{
			p.PurchyDate,
			p.PurchyID,
			p.DisplayAccount(),
			numberCell(p.Weight),
			numberCell(p.Rate),
			amount,
			p.PurchyTS,
		}))
	}

	return []byte(strings.Join(lines, "\n")), nil
}

func renderLine(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = escapeCell(cell)
	}
	return strings.Join(escaped, ",")
}

// escapeCell wraps a cell in double quotes when it contains a comma, quote,
// or newline; internal quotes are doubled. Anything else passes verbatim.
func escapeCell(s string) string {
	if strings.Contains(s, `"`) {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	if strings.ContainsAny(s, ",\n\r") {
		return `"` + s + `"`
	}
	return s
}

func numberCell(v *float64) string {
	if v == nil {
		return ""
	}
	return model.FormatNumber(*v)
}

// SanitizeLabel normalizes an account label for use in a filename:
// whitespace collapses to underscores and any character outside
// [A-Za-z0-9_-] is stripped.
func SanitizeLabel(label string) string {
	label = whitespaceRe.ReplaceAllString(strings.TrimSpace(label), "_")
	return unsafeRe.ReplaceAllString(label, "")
}

// Filename builds the export artifact name for the given account label and
// export time. The date is taken in UTC so the name does not depend on the
// local timezone.
func Filename(accountLabel string, now time.Time) string {
	return fmt.Sprintf("Purchies_%s_%s.csv", SanitizeLabel(accountLabel), now.UTC().Format("2006-01-02"))
}

// WriteFile renders the rows and writes the artifact into dir, returning
// the full path written.
func WriteFile(dir string, rows []model.Purchy, accountLabel string, now time.Time) (string, error) {
	content, err := Render(rows)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(accountLabel, now))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
