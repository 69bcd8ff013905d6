// Package identify handles the download-folder identification command
package identify

import (
	"fmt"
	"path/filepath"

	"fjacquet/qfx-ledger/cmd/common"
	"fjacquet/qfx-ledger/cmd/root"
	"fjacquet/qfx-ledger/internal/fileutils"
	"fjacquet/qfx-ledger/internal/importer"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/pdfarchive"

	"github.com/spf13/cobra"
)

// Cmd represents the identify command
var Cmd = &cobra.Command{
	Use:   "identify",
	Short: "Identify downloaded statement files against configured accounts",
	Long: `Identify scans the downloads directory for OFX/QFX exports and PDF
statements, matches each file against the configured accounts and prints
which account claims it and under what name it would be archived.`,
	Run: identifyFunc,
}

// matcher is the shared surface of OFX importers and PDF archivers.
type matcher interface {
	Account() string
	Identify(filePath string) bool
	ArchiveFilename(filePath string) string
}

func identifyFunc(cmd *cobra.Command, args []string) {
	downloads := root.Cfg.Downloads
	if !fileutils.DirectoryExists(downloads) {
		root.Log.Fatal("Downloads directory does not exist: " + downloads)
	}

	files, err := fileutils.ListFilesWithExtensions(downloads, ".ofx", ".qfx", ".qbo", ".pdf")
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to scan downloads directory")
	}
	root.Log.Info("Scanning downloads directory",
		logging.Field{Key: logging.FieldFile, Value: downloads},
		logging.Field{Key: logging.FieldCount, Value: len(files)})

	matchers := buildMatchers()

	w, closeOutput, err := common.OpenOutput(root.SharedFlags.Output)
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to open output file")
	}
	defer closeOutput()

	matched := 0
	for _, file := range files {
		for _, m := range matchers {
			if !m.Identify(file) {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", filepath.Base(file), m.Account(), m.ArchiveFilename(file))
			matched++
			break
		}
	}
	root.Log.Info("Identification completed",
		logging.Field{Key: logging.FieldCount, Value: matched})
}

func buildMatchers() []matcher {
	var matchers []matcher
	for _, account := range root.Cfg.Accounts {
		matchers = append(matchers, importer.NewQFXImporter(account.Org, account.AcctIDSuffix, account.LedgerAccount))
		if account.PDFArchive != nil {
			matchers = append(matchers, pdfarchive.NewArchiver(account.PDFArchive.Org, account.AcctIDSuffix, account.LedgerAccount))
		}
	}
	return matchers
}
