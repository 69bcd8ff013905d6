// Package amortize computes loan amortization schedules and renders them as
// ledger entries. The schedule is the standard closed-form split of a fixed
// payment into principal and interest per period.
package amortize

import (
	"fmt"
	"math"
	"time"

	"fjacquet/qfx-ledger/internal/ledger"
	"fjacquet/qfx-ledger/internal/logging"

	"github.com/shopspring/decimal"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// LoanDetail describes a fixed-rate loan and the ledger accounts its
// payments post against.
type LoanDetail struct {
	// InterestRate is the annual rate, e.g. 0.05 for 5%.
	InterestRate float64
	// Years is the loan term.
	Years int
	// PaymentsPerYear defaults to 12 when zero.
	PaymentsPerYear int
	// Principal is the initial loan amount.
	Principal float64
	// MonthlyPayment is the full payment including escrow. Positive values
	// are normalized to negative (money leaving the bank account).
	MonthlyPayment float64
	// StartDate is the date of the first payment period.
	StartDate time.Time
	Currency  string

	AccountBank            string
	AccountLiability       string
	AccountInterestExpense string
	AccountEscrow          string
}

// Period is one row of the amortization schedule. Monetary values are
// rounded to two places.
type Period struct {
	Index     int
	Date      time.Time
	Payment   decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Balance   decimal.Decimal
}

func (l LoanDetail) paymentsPerYear() int {
	if l.PaymentsPerYear <= 0 {
		return 12
	}
	return l.PaymentsPerYear
}

func (l LoanDetail) currency() string {
	if l.Currency == "" {
		return "USD"
	}
	return l.Currency
}

// Validate checks the loan parameters.
func (l LoanDetail) Validate() error {
	if l.Principal <= 0 {
		return fmt.Errorf("loan principal must be positive, got %f", l.Principal)
	}
	if l.Years <= 0 {
		return fmt.Errorf("loan term must be positive, got %d years", l.Years)
	}
	if l.InterestRate <= 0 {
		return fmt.Errorf("interest rate must be positive, got %f", l.InterestRate)
	}
	if l.MonthlyPayment == 0 {
		return fmt.Errorf("monthly payment must be set")
	}
	if l.StartDate.IsZero() {
		return fmt.Errorf("start date must be set")
	}
	return nil
}

// Schedule computes the full amortization table. Periods are dated on the
// first of each month, starting from the loan's start month.
func Schedule(loan LoanDetail) ([]Period, error) {
	if err := loan.Validate(); err != nil {
		return nil, err
	}

	periods := loan.Years * loan.paymentsPerYear()
	rate := loan.InterestRate / float64(loan.paymentsPerYear())

	// Fixed payment for the principal/interest split, before escrow.
	payment := loan.Principal * rate / (1 - math.Pow(1+rate, float64(-periods)))

	schedule := make([]Period, 0, periods)
	date := monthStart(loan.StartDate)
	balance := loan.Principal

	for i := 1; i <= periods; i++ {
		interest := balance * rate
		principal := payment - interest
		if principal > balance {
			principal = balance
		}
		balance -= principal

		schedule = append(schedule, Period{
			Index:     i,
			Date:      date,
			Payment:   round2(-payment),
			Principal: round2(principal),
			Interest:  round2(interest),
			Balance:   round2(balance),
		})
		date = date.AddDate(0, 1, 0)
	}

	log.Debug("Computed amortization schedule",
		logging.Field{Key: logging.FieldCount, Value: len(schedule)})
	return schedule, nil
}

// Entries renders the schedule as ledger entries: the full payment leaves
// the bank account, principal reduces the liability, interest is expensed
// and the remainder goes to escrow.
func Entries(loan LoanDetail) ([]ledger.Entry, error) {
	schedule, err := Schedule(loan)
	if err != nil {
		return nil, err
	}

	monthlyPayment := round2(-math.Abs(loan.MonthlyPayment))
	currency := loan.currency()

	entries := make([]ledger.Entry, 0, len(schedule))
	for _, period := range schedule {
		principal := period.Principal.Abs()
		interest := period.Interest.Abs()
		escrow := monthlyPayment.Neg().Sub(principal).Sub(interest)

		entries = append(entries, &ledger.TransactionEntry{
			Date:      period.Date,
			Narration: "Mortgage payment",
			Postings: []ledger.Posting{
				{Account: loan.AccountBank, Amount: monthlyPayment, Currency: currency},
				{Account: loan.AccountLiability, Amount: principal, Currency: currency},
				{Account: loan.AccountInterestExpense, Amount: interest, Currency: currency},
				{Account: loan.AccountEscrow, Amount: escrow, Currency: currency},
			},
		})
	}
	return entries, nil
}

func round2(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(2)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
