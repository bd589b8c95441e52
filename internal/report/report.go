// Package report renders a projection for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"cashflow/internal/core"
)

// Run describes the projection being printed.
type Run struct {
	Rules           int
	StartingBalance decimal.Decimal
	Window          core.Window
}

// Money formats an amount with thousands separators and two decimals,
// rounding half away from zero. The digits come from the decimal itself,
// so large amounts print exactly.
func Money(d decimal.Decimal) string {
	d = d.Round(2)
	abs := d.Abs()
	_, frac, _ := strings.Cut(abs.StringFixed(2), ".")
	out := humanize.BigComma(abs.BigInt()) + "." + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

func entryDate(t time.Time) string {
	if core.IsMidnight(t) {
		return t.Format(core.DateLayout)
	}
	return t.Format(time.DateTime)
}

// Header prints the run parameters.
func Header(w io.Writer, run Run) error {
	_, err := fmt.Fprintf(w,
		"Rules             : %d\nStarting balance  : %s\nDays in the future: %d\nDate interval     : From %s to %s\n",
		run.Rules,
		Money(run.StartingBalance),
		run.Window.Days,
		run.Window.Start.Format(core.DateLayout),
		run.Window.End.Format(core.DateLayout),
	)
	return err
}

// Table prints one line per ledger entry.
func Table(w io.Writer, ledger *core.Ledger) error {
	if ledger.Len() == 0 {
		_, err := fmt.Fprintln(w, "\nNo transactions in the window.")
		return err
	}
	if _, err := fmt.Fprintln(w, "\nDate-sorted transactions:"); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDate\tItem\tType\tAmount\tBalance\t")
	for _, e := range ledger.Entries() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			e.Position,
			entryDate(e.Date),
			e.Item,
			e.ItemType,
			Money(e.Amount),
			Money(e.Balance),
		)
	}
	return tw.Flush()
}

// Summary prints the balance statistics.
func Summary(w io.Writer, ledger *core.Ledger) error {
	stats := ledger.Stats()
	_, err := fmt.Fprintf(w,
		"\nTransactions    : %d\nStarting balance: %s\nMin balance     : %s\nMax balance     : %s\nAverage balance : %s\nClosing balance : %s (%s)\n",
		stats.Count,
		Money(ledger.StartingBalance()),
		Money(stats.Min),
		Money(stats.Max),
		Money(stats.Mean),
		Money(ledger.ClosingBalance()),
		change(ledger),
	)
	return err
}

func change(ledger *core.Ledger) string {
	diff := ledger.ClosingBalance().Sub(ledger.StartingBalance())
	if diff.IsNegative() {
		return Money(diff)
	}
	return "+" + Money(diff)
}

// Write prints header, table and summary.
func Write(w io.Writer, run Run, ledger *core.Ledger) error {
	if err := Header(w, run); err != nil {
		return err
	}
	if err := Table(w, ledger); err != nil {
		return err
	}
	return Summary(w, ledger)
}
