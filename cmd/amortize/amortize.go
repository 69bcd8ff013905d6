// Package amortize handles the loan amortization command
package amortize

import (
	"fjacquet/qfx-ledger/cmd/common"
	"fjacquet/qfx-ledger/cmd/root"
	"fjacquet/qfx-ledger/internal/amortize"
	"fjacquet/qfx-ledger/internal/ledger"
	"fjacquet/qfx-ledger/internal/logging"

	"github.com/spf13/cobra"
)

// LoanName selects which configured loan to amortize.
var LoanName string

// Cmd represents the amortize command
var Cmd = &cobra.Command{
	Use:   "amortize",
	Short: "Generate ledger entries for a configured loan's amortization schedule",
	Long: `Amortize computes the amortization schedule of a fixed-rate loan from
the configuration and writes one ledger entry per payment period, splitting
each payment into principal, interest and escrow.`,
	Run: amortizeFunc,
}

func amortizeFunc(cmd *cobra.Command, args []string) {
	if LoanName == "" {
		root.Log.Fatal("No loan given, use --loan")
	}
	loanConfig, ok := root.Cfg.Loans[LoanName]
	if !ok {
		root.Log.Fatal("Loan not found in configuration: " + LoanName)
	}

	loan, err := loanConfig.LoanDetail()
	if err != nil {
		root.Log.WithError(err).Fatal("Invalid loan configuration")
	}

	root.Log.Info("Amortizing loan",
		logging.Field{Key: logging.FieldLoan, Value: LoanName})
	entries, err := amortize.Entries(loan)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to compute amortization schedule")
	}

	w, closeOutput, err := common.OpenOutput(root.SharedFlags.Output)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to open output file")
	}
	defer closeOutput()

	if err := ledger.Render(w, entries); err != nil {
		root.Log.WithError(err).Fatal("Failed to render ledger entries")
	}
	root.Log.Info("Amortization completed successfully!",
		logging.Field{Key: logging.FieldEntries, Value: len(entries)})
}

func init() {
	Cmd.Flags().StringVarP(&LoanName, "loan", "l", "", "Name of the loan from the configuration")
}
