package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kmadhuranga/purchy/internal/api"
	"github.com/kmadhuranga/purchy/internal/cli"
	"github.com/kmadhuranga/purchy/internal/common"
	"github.com/kmadhuranga/purchy/internal/model"
	"github.com/kmadhuranga/purchy/internal/summary"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the purchy summary for an account and date range",
		Long: `Fetch the purchies matching the filters and display them as a table
sorted by delivery date, together with the total weight and amount.

Rows show the record's amount when the server provides one, otherwise
weight multiplied by rate when both are present.`,
		RunE: runList,
	}

	cmd.Flags().String("account", api.AllAccounts, "account ID to filter by (default: all accounts)")
	cmd.Flags().String("from", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "inclusive end date (YYYY-MM-DD)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newClient()
	if err != nil {
		return err
	}

	filter := api.ListFilter{
		AccountID: mustString(cmd, "account"),
		From:      mustString(cmd, "from"),
		To:        mustString(cmd, "to"),
	}

	list, err := client.ListPurchies(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to fetch purchies: %w", err)
	}

	renderReport(os.Stdout, list)
	return nil
}

// renderReport prints the totals panel and the purchy table for a fetched
// list.
func renderReport(out io.Writer, list *api.PurchyList) {
	report := summary.Build(list)

	if len(report.Rows) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No purchies found for the selected filters."))
		return
	}

	fmt.Fprintln(out, cli.FormatTitle("Purchy Summary"))
	fmt.Fprintln(out, cli.TotalsBoxStyle.Render(fmt.Sprintf("Purchies: %d    Total Weight: %s    Total Amount: %s",
		report.Count,
		model.FormatNumber(report.TotalWeight),
		model.FormatNumber(report.TotalAmount))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			common.LogError(flushErr, "failed to flush table writer", nil)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Date"),
		cli.TableHeaderStyle.Render("Purchy Number"),
		cli.TableHeaderStyle.Render("Account"),
		cli.TableHeaderStyle.Render("Weight"),
		cli.TableHeaderStyle.Render("Rate"),
		cli.TableHeaderStyle.Render("Amount"),
		cli.TableHeaderStyle.Render("Purchy TS"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 10),
		strings.Repeat("─", 13),
		strings.Repeat("─", 16),
		strings.Repeat("─", 8),
		strings.Repeat("─", 6),
		strings.Repeat("─", 8),
		strings.Repeat("─", 20))

	for i := range report.Rows {
		p := &report.Rows[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			placeholder(p.PurchyDate),
			placeholder(p.PurchyID),
			placeholder(p.DisplayAccount()),
			numberOrDash(p.Weight),
			numberOrDash(p.Rate),
			amountCell(p),
			p.PurchyTS)
	}
}

// placeholder renders missing display values as a dash.
func placeholder(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func numberOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return model.FormatNumber(*v)
}

// amountCell applies the display fallback: server amount, else weight*rate,
// else a placeholder.
func amountCell(p *model.Purchy) string {
	if v, ok := p.DerivedAmount(); ok {
		return model.FormatNumber(v)
	}
	return "-"
}

// mustString reads a declared string flag.
func mustString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		common.LogError(err, "missing flag", common.Fields{"flag": name})
		return ""
	}
	return value
}
