// Package ledger converts normalized statements into double-entry ledger
// entries: one fully-specified posting leg per transaction, plus an
// end-of-statement balance assertion. Entry production is deterministic, so
// re-running an extraction on unchanged input yields byte-identical output.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cost is the unit cost basis attached to an investment lot posting.
type Cost struct {
	UnitPrice decimal.Decimal
	Currency  string
}

// Posting is one account/amount leg of a transaction entry.
type Posting struct {
	Account  string
	Amount   decimal.Decimal
	Currency string

	// Cost carries the unit cost basis for investment lots; nil otherwise.
	Cost *Cost

	// Metadata holds side information for the human reconciling the entry,
	// rendered as key/value lines under the posting.
	Metadata []MetaPair
}

// MetaPair is one metadata key/value line. A slice keeps rendering order
// deterministic, unlike a map.
type MetaPair struct {
	Key   string
	Value string
}

// Entry is a single ledger entry: either a transaction entry or a balance
// assertion.
type Entry interface {
	// EntryDate is the primary ordering key of the entry.
	EntryDate() time.Time
}

// TransactionEntry is a dated transaction with one or more posting legs.
type TransactionEntry struct {
	Date      time.Time
	Narration string
	Postings  []Posting
}

// EntryDate implements Entry.
func (e *TransactionEntry) EntryDate() time.Time { return e.Date }

// BalanceEntry asserts an account's balance at the start of its date.
type BalanceEntry struct {
	Date     time.Time
	Account  string
	Amount   decimal.Decimal
	Currency string
}

// EntryDate implements Entry.
func (e *BalanceEntry) EntryDate() time.Time { return e.Date }
