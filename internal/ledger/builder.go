package ledger

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/qfx-ledger/internal/dateutils"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// NarrationSeparator joins the non-empty narration parts of a transaction.
const NarrationSeparator = " | "

// BuildEntries converts a matched statement into ledger entries posted
// against the given account. Each transaction becomes a single-leg entry;
// the offsetting leg is left for the human to categorize. If the statement
// carries a ledger balance, exactly one balance assertion is emitted, dated
// the day after the as-of date: the institution reports the balance at the
// start of the as-of day, so asserting against that same day would be
// off-by-one relative to transactions posted during it.
//
// Entries come out sorted by (date, original sequence) ascending.
func BuildEntries(statement models.AccountStatement, account string) ([]Entry, error) {
	var entries []Entry

	switch s := statement.(type) {
	case *models.Statement:
		for _, transaction := range s.Transactions {
			entries = append(entries, buildTransactionEntry(transaction, account))
		}
		if s.LedgerBalance != nil {
			entries = append(entries, &BalanceEntry{
				Date:     dateutils.NextDay(s.LedgerBalance.AsOf),
				Account:  account,
				Amount:   s.LedgerBalance.Amount,
				Currency: s.Currency,
			})
		}
	case *models.InvestStatement:
		for _, transaction := range s.Transactions {
			entries = append(entries, buildInvestEntry(transaction, account, s.Currency))
		}
	default:
		return nil, fmt.Errorf("unknown statement type %T", statement)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryDate().Before(entries[j].EntryDate())
	})

	log.Debug("Built ledger entries",
		logging.Field{Key: logging.FieldAccount, Value: account},
		logging.Field{Key: logging.FieldEntries, Value: len(entries)})
	return entries, nil
}

func buildTransactionEntry(transaction models.Transaction, account string) *TransactionEntry {
	return &TransactionEntry{
		Date:      dateutils.DayOf(transaction.DatePosted),
		Narration: joinNarration(transaction.Memo, transaction.Name, transaction.TrnType),
		Postings: []Posting{{
			Account:  account,
			Amount:   transaction.Amount,
			Currency: transaction.Currency,
		}},
	}
}

// buildInvestEntry posts priced transactions (buys, sells, reinvestments)
// against a synthetic sub-account keyed by ticker, with the unit price as
// cost basis and the raw cash amount as metadata. Unpriced transactions
// (income, transfers, misc) post flat against the account.
func buildInvestEntry(transaction models.InvestTransaction, account, currency string) *TransactionEntry {
	entry := &TransactionEntry{
		Date:      dateutils.DayOf(transaction.DatePosted),
		Narration: joinNarration(transaction.Memo, transaction.Ticker),
	}

	kindMeta := MetaPair{Key: "kind", Value: string(transaction.Kind)}

	if transaction.Units != nil && transaction.UnitPrice != nil {
		entry.Postings = []Posting{{
			Account:  account + ":" + transaction.Ticker,
			Amount:   *transaction.Units,
			Currency: transaction.Ticker,
			Cost: &Cost{
				UnitPrice: *transaction.UnitPrice,
				Currency:  currency,
			},
			Metadata: []MetaPair{
				kindMeta,
				{Key: "amount", Value: transaction.Amount.StringFixed(2) + " " + currency},
			},
		}}
		return entry
	}

	entry.Postings = []Posting{{
		Account:  account,
		Amount:   transaction.Amount,
		Currency: currency,
		Metadata: []MetaPair{kindMeta},
	}}
	return entry
}

// joinNarration joins the non-empty parts with the narration separator.
func joinNarration(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, NarrationSeparator)
}
