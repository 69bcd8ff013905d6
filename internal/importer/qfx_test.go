package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/qfx-ledger/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementFixture = `OFXHEADER:100
DATA:OFXSGML
VERSION:102

<OFX>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<ACCTID>9876541111
</BANKACCTFROM>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240105120000
<TRNAMT>1000.00
<FITID>2024010501
<NAME>PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240107
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestQFXImporterIdentify(t *testing.T) {
	path := writeFixture(t, "export.qfx", statementFixture)

	t.Run("matching account", func(t *testing.T) {
		imp := NewQFXImporter("Bank", "1111", "Assets:US:Bank:Checking")
		assert.True(t, imp.Identify(path))
	})

	t.Run("wrong suffix", func(t *testing.T) {
		imp := NewQFXImporter("Bank", "2222", "Assets:US:Bank:Checking")
		assert.False(t, imp.Identify(path))
	})

	t.Run("suffix longer than account id", func(t *testing.T) {
		imp := NewQFXImporter("Bank", "09876541111", "Assets:US:Bank:Checking")
		assert.False(t, imp.Identify(path))
	})

	t.Run("wrong extension", func(t *testing.T) {
		pdfPath := writeFixture(t, "export.pdf", statementFixture)
		imp := NewQFXImporter("Bank", "1111", "Assets:US:Bank:Checking")
		assert.False(t, imp.Identify(pdfPath))
	})

	t.Run("unreadable file", func(t *testing.T) {
		imp := NewQFXImporter("Bank", "1111", "Assets:US:Bank:Checking")
		assert.False(t, imp.Identify(filepath.Join(t.TempDir(), "missing.qfx")))
	})
}

func TestQFXImporterExtract(t *testing.T) {
	path := writeFixture(t, "export.qfx", statementFixture)

	imp := NewQFXImporter("Bank", "1111", "Assets:US:Bank:Checking")
	entries, err := imp.Extract(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	trn, ok := entries[0].(*ledger.TransactionEntry)
	require.True(t, ok)
	assert.Equal(t, "Assets:US:Bank:Checking", trn.Postings[0].Account)

	balance, ok := entries[1].(*ledger.BalanceEntry)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), balance.Date)
}

func TestQFXImporterExtractNoMatch(t *testing.T) {
	path := writeFixture(t, "export.qfx", statementFixture)

	// A file that is not ours yields no entries and no error.
	imp := NewQFXImporter("Bank", "2222", "Assets:US:Bank:Checking")
	entries, err := imp.Extract(path)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestQFXImporterExtractUsesIdentifyCache(t *testing.T) {
	path := writeFixture(t, "export.qfx", statementFixture)

	imp := NewQFXImporter("Bank", "1111", "Assets:US:Bank:Checking")
	require.True(t, imp.Identify(path))

	// Deleting the file proves Extract reuses the statement cached by
	// Identify instead of re-reading it.
	require.NoError(t, os.Remove(path))
	entries, err := imp.Extract(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestQFXImporterDate(t *testing.T) {
	path := writeFixture(t, "export.qfx", statementFixture)

	imp := NewQFXImporter("Bank", "1111", "Assets:US:Bank:Checking")

	_, ok := imp.Date()
	assert.False(t, ok)

	require.True(t, imp.Identify(path))
	date, ok := imp.Date()
	require.True(t, ok)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, time.January, date.Month())
	assert.Equal(t, 5, date.Day())
}

func TestQFXImporterAccountAndArchiveFilename(t *testing.T) {
	imp := NewQFXImporter("Amex", "1111", "Assets:US:Amex:Checking")
	assert.Equal(t, "Assets:US:Amex:Checking", imp.Account())
	assert.Equal(t, "Amex_1111.qfx", imp.ArchiveFilename("/downloads/export (3).qfx"))
}
