// Package importer matches statement files against configured accounts and
// extracts ledger entries from the ones that belong to them. An importer
// owns deciding whether a file is "its own"; the parsing core only answers
// suffix-match queries.
package importer

import (
	"path/filepath"
	"strings"
	"time"

	"fjacquet/qfx-ledger/internal/fileutils"
	"fjacquet/qfx-ledger/internal/ledger"
	"fjacquet/qfx-ledger/internal/logging"
	"fjacquet/qfx-ledger/internal/models"
	"fjacquet/qfx-ledger/internal/qfxparser"
)

// Extensions recognized as OFX-family statement exports.
var qfxExtensions = map[string]bool{
	".ofx": true,
	".qfx": true,
	".qbo": true,
}

// QFXImporter imports OFX/QFX statement files for one configured account.
type QFXImporter struct {
	Org           string
	AcctIDSuffix  string
	LedgerAccount string

	log       logging.Logger
	statement models.AccountStatement
}

// NewQFXImporter creates an importer for one configured account.
func NewQFXImporter(org, acctIDSuffix, ledgerAccount string) *QFXImporter {
	log := logging.GetLogger().WithFields(
		logging.Field{Key: logging.FieldOrg, Value: org},
		logging.Field{Key: logging.FieldSuffix, Value: acctIDSuffix},
		logging.Field{Key: logging.FieldAccount, Value: ledgerAccount},
	)
	log.Debug("Initialized QFX importer")
	return &QFXImporter{
		Org:           org,
		AcctIDSuffix:  acctIDSuffix,
		LedgerAccount: ledgerAccount,
		log:           log,
	}
}

// Account returns the ledger account transactions are posted against.
func (i *QFXImporter) Account() string {
	return i.LedgerAccount
}

// Identify reports whether the file is an OFX export containing this
// importer's account. A successful match caches the parsed statement for the
// following Extract call.
func (i *QFXImporter) Identify(filePath string) bool {
	if !qfxExtensions[strings.ToLower(filepath.Ext(filePath))] {
		return false
	}

	content, err := fileutils.ReadFile(filePath)
	if err != nil {
		i.log.WithError(err).Warn("Failed to read statement file",
			logging.Field{Key: logging.FieldFile, Value: filePath})
		return false
	}
	if !qfxparser.ContentHasAcctIDSuffix(string(content), i.AcctIDSuffix) {
		return false
	}

	statement, ok, err := qfxparser.LoadStatement(filePath, i.AcctIDSuffix)
	if err != nil {
		i.log.WithError(err).Warn("Failed to parse statement file",
			logging.Field{Key: logging.FieldFile, Value: filePath})
		return false
	}
	if !ok {
		return false
	}

	i.statement = statement
	i.log.Info("Identified QFX file",
		logging.Field{Key: logging.FieldFile, Value: filepath.Base(filePath)})
	return true
}

// Extract returns the ledger entries for the matched statement. When the
// file does not contain this importer's account, Extract returns no entries
// and no error: the file simply is not ours.
func (i *QFXImporter) Extract(filePath string) ([]ledger.Entry, error) {
	statement := i.statement
	if statement == nil {
		loaded, ok, err := qfxparser.LoadStatement(filePath, i.AcctIDSuffix)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		statement = loaded
	}
	return ledger.BuildEntries(statement, i.LedgerAccount)
}

// Date returns the date of the last transaction of the matched statement.
func (i *QFXImporter) Date() (time.Time, bool) {
	switch s := i.statement.(type) {
	case *models.Statement:
		if len(s.Transactions) > 0 {
			return s.Transactions[len(s.Transactions)-1].DatePosted, true
		}
	case *models.InvestStatement:
		if len(s.Transactions) > 0 {
			return s.Transactions[len(s.Transactions)-1].DatePosted, true
		}
	}
	return time.Time{}, false
}

// ArchiveFilename returns the archival filename for the given file.
func (i *QFXImporter) ArchiveFilename(filePath string) string {
	return i.Org + "_" + i.AcctIDSuffix + filepath.Ext(filePath)
}
