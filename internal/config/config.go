// Package config provides Viper-based configuration for the importer: the
// accounts to import transactions for, the loans to amortize and the
// logging setup.
package config

import (
	"fmt"
	"time"

	"fjacquet/qfx-ledger/internal/amortize"
)

// PDFArchiveConfig enables PDF statement archival for an account. The
// organization name printed inside the PDF usually differs from the short
// OFX org tag, so it is configured separately.
type PDFArchiveConfig struct {
	Org string `mapstructure:"org" yaml:"org"`
}

// AccountConfig describes one account to import transactions for.
//
// Sample account YAML:
//
//	ledger_account: Assets:US:Amex:Checking
//	org: Amex
//	acctid_suffix: "1111"
//	pdf_archive:
//	  org: American Express
type AccountConfig struct {
	LedgerAccount string            `mapstructure:"ledger_account" yaml:"ledger_account"`
	Org           string            `mapstructure:"org" yaml:"org"`
	AcctIDSuffix  string            `mapstructure:"acctid_suffix" yaml:"acctid_suffix"`
	PDFArchive    *PDFArchiveConfig `mapstructure:"pdf_archive" yaml:"pdf_archive,omitempty"`
}

// LoanConfig describes a fixed-rate loan for the amortize command.
type LoanConfig struct {
	InterestRate   float64 `mapstructure:"interest_rate" yaml:"interest_rate"`
	Years          int     `mapstructure:"years" yaml:"years"`
	Principal      float64 `mapstructure:"principal" yaml:"principal"`
	MonthlyPayment float64 `mapstructure:"monthly_payment" yaml:"monthly_payment"`
	StartDate      string  `mapstructure:"start_date" yaml:"start_date"`
	Currency       string  `mapstructure:"currency" yaml:"currency"`

	AccountBank            string `mapstructure:"account_bank" yaml:"account_bank"`
	AccountLiability       string `mapstructure:"account_liability" yaml:"account_liability"`
	AccountInterestExpense string `mapstructure:"account_interest_expense" yaml:"account_interest_expense"`
	AccountEscrow          string `mapstructure:"account_escrow" yaml:"account_escrow"`
}

// LoanDetail converts the config entry into the amortization input.
func (l LoanConfig) LoanDetail() (amortize.LoanDetail, error) {
	startDate, err := time.Parse("2006-01-02", l.StartDate)
	if err != nil {
		return amortize.LoanDetail{}, fmt.Errorf("invalid loan start_date '%s': %w", l.StartDate, err)
	}
	return amortize.LoanDetail{
		InterestRate:           l.InterestRate,
		Years:                  l.Years,
		Principal:              l.Principal,
		MonthlyPayment:         l.MonthlyPayment,
		StartDate:              startDate,
		Currency:               l.Currency,
		AccountBank:            l.AccountBank,
		AccountLiability:       l.AccountLiability,
		AccountInterestExpense: l.AccountInterestExpense,
		AccountEscrow:          l.AccountEscrow,
	}, nil
}

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	// Downloads is the directory scanned by the identify command.
	Downloads string `mapstructure:"downloads" yaml:"downloads"`

	Accounts []AccountConfig       `mapstructure:"accounts" yaml:"accounts"`
	Loans    map[string]LoanConfig `mapstructure:"loans" yaml:"loans,omitempty"`
}
