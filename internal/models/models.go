// Package models holds the normalized statement model produced by the OFX
// import pipeline. All values are built fresh per document, are immutable
// after construction and carry no state across extraction runs.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized bank or credit-card transaction.
//
// Amount keeps the institution sign convention (debits negative, credits
// positive); it is never renormalized by this layer.
type Transaction struct {
	// FitID is the financial institution transaction id, unique within a
	// statement. Downstream importers rely on it for idempotent re-import.
	FitID      string          `csv:"fit_id"`
	DatePosted time.Time       `csv:"date_posted"`
	Memo       string          `csv:"memo"`
	Name       string          `csv:"name"`
	TrnType    string          `csv:"trn_type"`
	Amount     decimal.Decimal `csv:"amount"`
	Currency   string          `csv:"currency"`
}

// Balance is a ledger balance reported by the institution, interpreted as
// the balance at the start of the as-of day.
type Balance struct {
	Amount decimal.Decimal
	AsOf   time.Time
}

// Statement is one account's transactions for one export, sorted ascending
// by posting date.
type Statement struct {
	AcctID       string
	Currency     string
	Transactions []Transaction

	// LedgerBalance is the end-of-statement balance, when the institution
	// reported one.
	LedgerBalance *Balance
}

// AccountID returns the institution account identifier.
func (s *Statement) AccountID() string { return s.AcctID }

// StatementCurrency returns the default currency of the statement.
func (s *Statement) StatementCurrency() string { return s.Currency }

// AccountStatement is the common surface of bank/credit-card and investment
// statements. The set of implementations is closed: *Statement and
// *InvestStatement.
type AccountStatement interface {
	AccountID() string
	StatementCurrency() string
}

// StatementList is the complete set of statements found in one document.
type StatementList struct {
	Statements []AccountStatement
}

// FindByAcctIDSuffix returns the first statement whose account identifier
// ends with the given suffix. Institutions truncate and mask identifiers
// inconsistently, so matching is on the trailing characters only.
//
// A missing match is a normal negative result, not an error: callers use it
// to mean "this file is not mine".
func (l *StatementList) FindByAcctIDSuffix(suffix string) (AccountStatement, bool) {
	for _, statement := range l.Statements {
		if strings.HasSuffix(statement.AccountID(), suffix) {
			return statement, true
		}
	}
	return nil, false
}
