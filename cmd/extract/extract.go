// Package extract handles the ledger extraction command
package extract

import (
	"fjacquet/qfx-ledger/cmd/common"
	"fjacquet/qfx-ledger/cmd/root"
	"fjacquet/qfx-ledger/internal/importer"
	"fjacquet/qfx-ledger/internal/ledger"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/qfxparser"

	"github.com/spf13/cobra"
)

// LedgerAccount is the explicit target account for ad-hoc extraction. When
// empty, the configured accounts are tried instead.
var LedgerAccount string

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract ledger entries from an OFX/QFX statement file",
	Long: `Extract parses an OFX/QFX statement file, matches it against an account
and writes plain-text ledger entries.

With --suffix and --account the statement is matched explicitly. Without
them, every account from the configuration is tried and the first one whose
identifier suffix appears in the file wins.`,
	Run: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) {
	common.RequireInput(root.SharedFlags.Input, root.Log)
	common.ValidateInput(qfxparser.NewAdapter(root.Log), root.SharedFlags.Input, root.SharedFlags.Validate, root.Log)
	root.Log.Info("Extracting ledger entries",
		logging.Field{Key: logging.FieldFile, Value: root.SharedFlags.Input})

	entries, err := extractEntries(root.SharedFlags.Input)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to extract ledger entries")
	}
	if entries == nil {
		root.Log.Fatal("No configured account matches the statement file")
	}

	w, closeOutput, err := common.OpenOutput(root.SharedFlags.Output)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to open output file")
	}
	defer closeOutput()

	if err := ledger.Render(w, entries); err != nil {
		root.Log.WithError(err).Fatal("Failed to render ledger entries")
	}
	root.Log.Info("Extraction completed successfully!",
		logging.Field{Key: logging.FieldEntries, Value: len(entries)})
}

func extractEntries(inputFile string) ([]ledger.Entry, error) {
	if root.SharedFlags.Suffix != "" {
		if LedgerAccount == "" {
			root.Log.Fatal("--suffix requires --account")
		}
		statement, ok, err := qfxparser.LoadStatement(inputFile, root.SharedFlags.Suffix)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return ledger.BuildEntries(statement, LedgerAccount)
	}

	for _, account := range root.Cfg.Accounts {
		imp := importer.NewQFXImporter(account.Org, account.AcctIDSuffix, account.LedgerAccount)
		if !imp.Identify(inputFile) {
			continue
		}
		return imp.Extract(inputFile)
	}
	return nil, nil
}

func init() {
	Cmd.Flags().StringVarP(&LedgerAccount, "account", "a", "", "Ledger account to post transactions against")
}
