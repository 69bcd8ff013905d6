package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Security describes one entry of an investment document's security list.
// Securities are owned by the document-scoped resolver table and referenced
// by transactions through their identifier.
type Security struct {
	Ticker    string
	SecID     string
	Name      string
	Type      string
	UnitPrice decimal.Decimal
	AsOf      time.Time
}

// InvestKind is the closed set of normalized investment transaction kinds.
// The string values follow the OFX INCOMETYPE vocabulary.
type InvestKind string

const (
	InvestBuy      InvestKind = "BUY"
	InvestDividend InvestKind = "DIV"
	InvestInterest InvestKind = "INT"
	InvestMisc     InvestKind = "MISC"
	InvestSell     InvestKind = "SELL"
	InvestTransfer InvestKind = "TRANS"
)

// KindFromIncomeType maps an institution-provided INCOMETYPE value to an
// InvestKind. Unknown values map to InvestMisc.
func KindFromIncomeType(incomeType string) InvestKind {
	switch incomeType {
	case "DIV":
		return InvestDividend
	case "INTEREST", "INT":
		return InvestInterest
	case "MISC":
		return InvestMisc
	default:
		return InvestMisc
	}
}

// InvestTransaction is one normalized investment transaction.
//
// Ticker is always resolved against the enclosing document's security list;
// an unresolved reference fails the whole extraction rather than producing
// a degraded value.
type InvestTransaction struct {
	Transaction

	Ticker string
	Kind   InvestKind

	// Units and UnitPrice are absent for non-priced transfers.
	Units     *decimal.Decimal
	UnitPrice *decimal.Decimal
}

// InvestStatement is one brokerage account's transactions for one export.
type InvestStatement struct {
	AcctID   string
	Currency string
	AsOf     time.Time
	Broker   string

	// Securities is the document-scoped resolver table, shared read-only
	// between all statements of the document.
	Securities map[string]Security

	Transactions []InvestTransaction
}

// AccountID returns the institution account identifier.
func (s *InvestStatement) AccountID() string { return s.AcctID }

// StatementCurrency returns the default currency of the statement.
func (s *InvestStatement) StatementCurrency() string { return s.Currency }
