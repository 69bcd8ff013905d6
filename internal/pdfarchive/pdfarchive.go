// Package pdfarchive matches PDF statements against configured accounts so
// they can be archived next to the extracted ledger entries. No transactions
// are extracted from PDFs; matching is a plain text search for the
// institution name and the account identifier suffix.
package pdfarchive

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"fjacquet/qfx-ledger/internal/logging"

	gocache "github.com/patrickmn/go-cache"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// textCache holds extracted PDF text for the lifetime of the process. A run
// typically probes the same file once per configured account, and text
// extraction is by far the slowest step.
var textCache = gocache.New(gocache.NoExpiration, gocache.NoExpiration)

// Archiver matches PDF statement files for one configured account.
type Archiver struct {
	Org           string
	AcctIDSuffix  string
	LedgerAccount string

	extractor PDFExtractor
	log       logging.Logger
}

// NewArchiver creates an Archiver using the pdftotext-backed extractor.
func NewArchiver(org, acctIDSuffix, ledgerAccount string) *Archiver {
	return NewArchiverWithExtractor(org, acctIDSuffix, ledgerAccount, NewRealPDFExtractor())
}

// NewArchiverWithExtractor creates an Archiver with a custom text extractor.
func NewArchiverWithExtractor(org, acctIDSuffix, ledgerAccount string, extractor PDFExtractor) *Archiver {
	return &Archiver{
		Org:           org,
		AcctIDSuffix:  acctIDSuffix,
		LedgerAccount: ledgerAccount,
		extractor:     extractor,
		log: log.WithFields(
			logging.Field{Key: logging.FieldOrg, Value: org},
			logging.Field{Key: logging.FieldSuffix, Value: acctIDSuffix},
		),
	}
}

// Account returns the ledger account the archived file belongs to.
func (a *Archiver) Account() string {
	return a.LedgerAccount
}

// Identify reports whether the PDF contains both the organization name and
// the account identifier suffix as standalone words.
func (a *Archiver) Identify(filePath string) bool {
	if strings.ToLower(filepath.Ext(filePath)) != ".pdf" {
		return false
	}

	content, err := a.extractText(filePath)
	if err != nil {
		a.log.WithError(err).Warn("Failed to extract PDF text",
			logging.Field{Key: logging.FieldFile, Value: filePath})
		return false
	}

	if containsWord(content, a.AcctIDSuffix) && containsWord(content, a.Org) {
		a.log.Info("Identified PDF statement",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(filePath)})
		return true
	}
	return false
}

// ArchiveFilename returns the archival filename for the given file.
func (a *Archiver) ArchiveFilename(filePath string) string {
	return a.Org + "_" + a.AcctIDSuffix + "-statement" + filepath.Ext(filePath)
}

func (a *Archiver) extractText(filePath string) (string, error) {
	if cached, ok := textCache.Get(filePath); ok {
		return cached.(string), nil
	}
	content, err := a.extractor.ExtractText(filePath)
	if err != nil {
		return "", err
	}
	textCache.Set(filePath, content, gocache.NoExpiration)
	return content, nil
}

// containsWord reports whether needle appears in content delimited by
// whitespace, so that suffix "1234" does not match "12345".
func containsWord(content, needle string) bool {
	if needle == "" {
		return false
	}
	pattern := fmt.Sprintf(`(^|\s)(%s)(\s|$)`, regexp.QuoteMeta(needle))
	matched, err := regexp.MatchString(pattern, content)
	if err != nil {
		return false
	}
	return matched
}
