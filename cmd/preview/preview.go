// Package preview handles the statement preview command
package preview

import (
	"fjacquet/qfx-ledger/cmd/common"
	"fjacquet/qfx-ledger/cmd/root"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"
	"fjacquet/qfx-ledger/internal/qfxparser"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

// Cmd represents the preview command
var Cmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the transactions of a statement file as CSV",
	Long: `Preview parses an OFX/QFX statement file and writes its normalized
transactions as CSV, without matching accounts or building ledger entries.`,
	Run: previewFunc,
}

func previewFunc(cmd *cobra.Command, args []string) {
	common.RequireInput(root.SharedFlags.Input, root.Log)
	common.ValidateInput(qfxparser.NewAdapter(root.Log), root.SharedFlags.Input, root.SharedFlags.Validate, root.Log)
	root.Log.Info("Previewing statement file",
		logging.Field{Key: logging.FieldFile, Value: root.SharedFlags.Input})

	list, err := qfxparser.ParseFile(root.SharedFlags.Input)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to parse statement file")
	}

	rows := previewRows(list)
	if len(rows) == 0 {
		root.Log.Warn("No transactions found in statement file")
	}

	w, closeOutput, err := common.OpenOutput(root.SharedFlags.Output)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to open output file")
	}
	defer closeOutput()

	if err := gocsv.Marshal(&rows, w); err != nil {
		root.Log.WithError(err).Fatal("Failed to write CSV")
	}
	root.Log.Info("Preview completed successfully!",
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
}

// previewRows flattens all statements of a document into one transaction
// list. Investment transactions contribute their cash view.
func previewRows(list *models.StatementList) []models.Transaction {
	var rows []models.Transaction
	for _, statement := range list.Statements {
		switch s := statement.(type) {
		case *models.Statement:
			rows = append(rows, s.Transactions...)
		case *models.InvestStatement:
			for _, t := range s.Transactions {
				rows = append(rows, t.Transaction)
			}
		}
	}
	return rows
}
