package qfxparser

import (
	"testing"
	"time"

	"fjacquet/qfx-ledger/internal/models"
	"fjacquet/qfx-ledger/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// investSample exercises every supported variant against a two-security
// document. The buy and the reinvest deliberately reference the same fund so
// the dispatch, not the security, distinguishes them.
const investSample = `OFXHEADER:100
DATA:OFXSGML
VERSION:102

<OFX>
<INVSTMTMSGSRSV1>
<INVSTMTTRNRS>
<INVSTMTRS>
<DTASOF>20240131
<CURDEF>USD
<INVACCTFROM>
<BROKERID>broker.example.com
<ACCTID>55443322
</INVACCTFROM>
<INVTRANLIST>
<DTSTART>20240101
<DTEND>20240131
<INCOME>
<INVTRAN>
<FITID>inv-001
<DTSETTLE>20240110
<MEMO>DIVIDEND PAYMENT
</INVTRAN>
<SECID>
<UNIQUEID>316345305
</SECID>
<INCOMETYPE>DIV
<TOTAL>25.40
</INCOME>
<REINVEST>
<INVTRAN>
<FITID>inv-002
<DTSETTLE>20240110
<MEMO>DIVIDEND REINVESTMENT
</INVTRAN>
<SECID>
<UNIQUEID>316345305
</SECID>
<INCOMETYPE>DIV
<UNITS>0.512
<UNITPRICE>49.61
<TOTAL>-25.40
</REINVEST>
<BUYMF>
<INVBUY>
<INVTRAN>
<FITID>inv-003
<DTSETTLE>20240115
<MEMO>CONTRIBUTION
</INVTRAN>
<SECID>
<UNIQUEID>316345305
</SECID>
<UNITS>10.000
<UNITPRICE>50.00
<TOTAL>-500.00
</INVBUY>
</BUYMF>
<SELLMF>
<INVTRAN>
<FITID>inv-004
<DTSETTLE>20240120
<MEMO>REDEMPTION
</INVTRAN>
<SECID>
<UNIQUEID>922908363
</SECID>
<UNITS>-2.000
<UNITPRICE>240.10
<TOTAL>480.20
</SELLMF>
<TRANSFER>
<INVTRAN>
<FITID>inv-005
<DTSETTLE>20240125
<MEMO>TRANSFER IN KIND
</INVTRAN>
<SECID>
<UNIQUEID>922908363
</SECID>
<UNITS>5.000
</TRANSFER>
</INVTRANLIST>
</INVSTMTRS>
</INVSTMTTRNRS>
</INVSTMTMSGSRSV1>
<SECLISTMSGSRSV1>
<SECLIST>
<MFINFO>
<SECINFO>
<SECID>
<UNIQUEID>316345305
<UNIQUEIDTYPE>CUSIP
</SECID>
<SECNAME>EXAMPLE GROWTH FUND
<TICKER>EXGRX
<UNITPRICE>49.61
<DTASOF>20240131
</SECINFO>
<MFTYPE>OPENEND
</MFINFO>
<STOCKINFO>
<SECINFO>
<SECID>
<UNIQUEID>922908363
<UNIQUEIDTYPE>CUSIP
</SECID>
<SECNAME>EXAMPLE INDEX ETF
<TICKER>EXIDX
<UNITPRICE>240.10
<DTASOF>20240131
</SECINFO>
<STOCKTYPE>COMMON
</STOCKINFO>
</SECLIST>
</SECLISTMSGSRSV1>
</OFX>
`

func parseInvestSample(t *testing.T) *models.InvestStatement {
	t.Helper()
	list, err := Parse([]byte(investSample), "invest.qfx")
	require.NoError(t, err)
	require.Len(t, list.Statements, 1)
	statement, ok := list.Statements[0].(*models.InvestStatement)
	require.True(t, ok)
	return statement
}

func TestParseInvestStatement(t *testing.T) {
	statement := parseInvestSample(t)

	assert.Equal(t, "55443322", statement.AcctID)
	assert.Equal(t, "USD", statement.Currency)
	assert.Equal(t, "broker.example.com", statement.Broker)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), statement.AsOf)
	require.Len(t, statement.Transactions, 5)
}

func TestSecurityTable(t *testing.T) {
	statement := parseInvestSample(t)

	require.Len(t, statement.Securities, 2)
	fund := statement.Securities["316345305"]
	assert.Equal(t, "EXGRX", fund.Ticker)
	assert.Equal(t, "EXAMPLE GROWTH FUND", fund.Name)
	assert.Equal(t, "OPENEND", fund.Type)
	assert.True(t, fund.UnitPrice.Equal(decimal.RequireFromString("49.61")))

	etf := statement.Securities["922908363"]
	assert.Equal(t, "EXIDX", etf.Ticker)
	assert.Equal(t, "COMMON", etf.Type)
}

func TestInvestVariantDispatch(t *testing.T) {
	statement := parseInvestSample(t)

	byFitID := make(map[string]models.InvestTransaction)
	for _, trn := range statement.Transactions {
		byFitID[trn.FitID] = trn
	}

	income := byFitID["inv-001"]
	assert.Equal(t, models.InvestDividend, income.Kind)
	assert.Equal(t, "EXGRX", income.Ticker)
	assert.True(t, income.Amount.Equal(decimal.RequireFromString("25.40")))
	assert.Nil(t, income.Units)
	assert.Nil(t, income.UnitPrice)

	reinvest := byFitID["inv-002"]
	assert.Equal(t, models.InvestDividend, reinvest.Kind)
	assert.Equal(t, "EXGRX", reinvest.Ticker)
	require.NotNil(t, reinvest.Units)
	assert.True(t, reinvest.Units.Equal(decimal.RequireFromString("0.512")))
	require.NotNil(t, reinvest.UnitPrice)
	assert.True(t, reinvest.UnitPrice.Equal(decimal.RequireFromString("49.61")))

	buy := byFitID["inv-003"]
	assert.Equal(t, models.InvestBuy, buy.Kind)
	assert.Equal(t, "EXGRX", buy.Ticker)
	assert.True(t, buy.Amount.Equal(decimal.RequireFromString("-500.00")))
	require.NotNil(t, buy.Units)
	assert.True(t, buy.Units.Equal(decimal.RequireFromString("10.000")))

	sell := byFitID["inv-004"]
	assert.Equal(t, models.InvestSell, sell.Kind)
	assert.Equal(t, "EXIDX", sell.Ticker)
	assert.True(t, sell.Amount.Equal(decimal.RequireFromString("480.20")))

	transfer := byFitID["inv-005"]
	assert.Equal(t, models.InvestTransfer, transfer.Kind)
	assert.True(t, transfer.Amount.IsZero())
	require.NotNil(t, transfer.Units)
	assert.Nil(t, transfer.UnitPrice)
}

func TestInvestTransactionsSortedByDate(t *testing.T) {
	statement := parseInvestSample(t)
	for i := 1; i < len(statement.Transactions); i++ {
		assert.False(t, statement.Transactions[i].DatePosted.Before(statement.Transactions[i-1].DatePosted))
	}
}

func TestUnknownVariantIsFatal(t *testing.T) {
	content := `<OFX>
<INVSTMTMSGSRSV1>
<INVSTMTTRNRS>
<INVSTMTRS>
<DTASOF>20240131
<CURDEF>USD
<INVACCTFROM>
<ACCTID>55443322
</INVACCTFROM>
<INVTRANLIST>
<SPLIT>
<INVTRAN>
<FITID>inv-009
<DTSETTLE>20240110
</INVTRAN>
</SPLIT>
</INVTRANLIST>
</INVSTMTRS>
</INVSTMTTRNRS>
</INVSTMTMSGSRSV1>
</OFX>
`
	_, err := Parse([]byte(content), "split.qfx")
	var variantErr *parsererror.UnsupportedTransactionVariantError
	require.ErrorAs(t, err, &variantErr)
	assert.Equal(t, "SPLIT", variantErr.Variant)
}

func TestUnresolvedSecurityIsFatal(t *testing.T) {
	content := `<OFX>
<INVSTMTMSGSRSV1>
<INVSTMTTRNRS>
<INVSTMTRS>
<DTASOF>20240131
<CURDEF>USD
<INVACCTFROM>
<ACCTID>55443322
</INVACCTFROM>
<INVTRANLIST>
<INCOME>
<INVTRAN>
<FITID>inv-001
<DTSETTLE>20240110
</INVTRAN>
<SECID>
<UNIQUEID>999999999
</SECID>
<INCOMETYPE>DIV
<TOTAL>1.00
</INCOME>
</INVTRANLIST>
</INVSTMTRS>
</INVSTMTTRNRS>
</INVSTMTMSGSRSV1>
</OFX>
`
	_, err := Parse([]byte(content), "orphan.qfx")
	var securityErr *parsererror.UnresolvedSecurityError
	require.ErrorAs(t, err, &securityErr)
	assert.Equal(t, "999999999", securityErr.SecurityID)
}

func TestSecurityEntryWithoutTickerIsFatal(t *testing.T) {
	content := `<OFX>
<INVSTMTMSGSRSV1>
<INVSTMTTRNRS>
<INVSTMTRS>
<DTASOF>20240131
<CURDEF>USD
<INVACCTFROM>
<ACCTID>55443322
</INVACCTFROM>
<INVTRANLIST>
</INVTRANLIST>
</INVSTMTRS>
</INVSTMTTRNRS>
</INVSTMTMSGSRSV1>
<SECLISTMSGSRSV1>
<SECLIST>
<MFINFO>
<SECINFO>
<SECID>
<UNIQUEID>316345305
</SECID>
<SECNAME>NO TICKER FUND
</SECINFO>
<MFTYPE>OPENEND
</MFINFO>
</SECLIST>
</SECLISTMSGSRSV1>
</OFX>
`
	_, err := Parse([]byte(content), "noticker.qfx")
	var parseErr *parsererror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "TICKER", parseErr.Field)
}
