package ledger

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"fjacquet/qfx-ledger/internal/dateutils"
)

// formatUnits renders a unit count at the scale the institution reported it
// with. Cash amounts are fixed at two decimals, but unit counts are not, and
// decimal.String would drop significant trailing zeros ("10.000" -> "10").
func formatUnits(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Render serializes entries to beancount-style plain text. The builder
// guarantees field content and ordering; this is the textual boundary for
// downstream ledger tooling.
func Render(w io.Writer, entries []Entry) error {
	for i, entry := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		var err error
		switch e := entry.(type) {
		case *TransactionEntry:
			err = renderTransaction(w, e)
		case *BalanceEntry:
			_, err = fmt.Fprintf(w, "%s balance %s  %s %s\n",
				dateutils.ToISODate(e.Date), e.Account, e.Amount.StringFixed(2), e.Currency)
		default:
			err = fmt.Errorf("unknown entry type %T", entry)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func renderTransaction(w io.Writer, entry *TransactionEntry) error {
	if _, err := fmt.Fprintf(w, "%s * %q\n", dateutils.ToISODate(entry.Date), entry.Narration); err != nil {
		return err
	}
	for _, posting := range entry.Postings {
		amount := posting.Amount.StringFixed(2)
		if posting.Cost != nil {
			amount = formatUnits(posting.Amount)
		}
		line := fmt.Sprintf("  %s  %s %s", posting.Account, amount, posting.Currency)
		if posting.Cost != nil {
			line += fmt.Sprintf(" {%s %s}", posting.Cost.UnitPrice.StringFixed(2), posting.Cost.Currency)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, meta := range posting.Metadata {
			if _, err := fmt.Fprintf(w, "    %s: %q\n", meta.Key, meta.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
